package params

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qdm12/allowlist-updater/internal/models"
)

type configType struct {
	GCP         gcpType `json:"gcp"`
	AWS         awsType `json:"aws"`
	IPCacheFile string  `json:"ip_cache_file"`
}

type gcpType struct {
	ProjectID       string   `json:"project_id"`
	CredentialsFile string   `json:"credentials_file"`
	FirewallRules   []string `json:"firewall_rules"`
	SQLInstances    []string `json:"sql_instances"`
}

type awsType struct {
	Region              string          `json:"region"`
	Profile             string          `json:"profile"`
	SecurityGroupsSSH   []groupType    `json:"security_groups_ssh"`
	SecurityGroupsMySQL []groupType    `json:"security_groups_mysql"`
	PortsSSH            []portRuleType `json:"ports_ssh"`
	PortsMySQL          []portRuleType `json:"ports_mysql"`
}

type groupType struct {
	GroupID     string `json:"group_id"`
	Description string `json:"description"`
}

type portRuleType struct {
	Protocol    string `json:"protocol"`
	Port        *int   `json:"port"`
	Description string `json:"description"`
}

// JSONTargets reads the JSON configuration file at the given path
// and returns the validated targets to keep in sync.
func (r *Reader) JSONTargets(filePath string) (targets models.Targets, err error) {
	b, err := r.readFile(filePath)
	if err != nil {
		return targets, fmt.Errorf("reading configuration file: %w", err)
	}

	var config configType
	err = json.Unmarshal(b, &config)
	if err != nil {
		return targets, fmt.Errorf("decoding JSON configuration: %w", err)
	}

	targets, err = r.toTargets(config)
	if err != nil {
		return models.Targets{}, fmt.Errorf("configuration file %s: %w", filePath, err)
	}

	return targets, nil
}

func (r *Reader) toTargets(config configType) (targets models.Targets, err error) {
	targets.CacheFile = strings.TrimSpace(config.IPCacheFile)
	if targets.CacheFile == "" {
		return targets, ErrCacheFileNotSet
	}

	targets.GCP = models.GCPTargets{
		ProjectID:       strings.TrimSpace(config.GCP.ProjectID),
		CredentialsFile: strings.TrimSpace(config.GCP.CredentialsFile),
		FirewallRules:   r.cleanNames("gcp firewall_rules", config.GCP.FirewallRules),
		SQLInstances:    r.cleanNames("gcp sql_instances", config.GCP.SQLInstances),
	}
	if !targets.GCP.Empty() && targets.GCP.ProjectID == "" {
		return targets, ErrProjectIDNotSet
	}

	targets.AWS = models.AWSTargets{
		Region:  strings.TrimSpace(config.AWS.Region),
		Profile: strings.TrimSpace(config.AWS.Profile),
	}

	targets.AWS.SSH, err = toSecurityGroupTargets(
		config.AWS.SecurityGroupsSSH, config.AWS.PortsSSH)
	if err != nil {
		return targets, fmt.Errorf("aws ssh security groups: %w", err)
	}

	targets.AWS.Database, err = toSecurityGroupTargets(
		config.AWS.SecurityGroupsMySQL, config.AWS.PortsMySQL)
	if err != nil {
		return targets, fmt.Errorf("aws mysql security groups: %w", err)
	}

	if !targets.AWS.Empty() && targets.AWS.Region == "" {
		return targets, ErrRegionNotSet
	}

	return targets, nil
}

// cleanNames trims names, and drops empty and duplicate names
// with a warning.
func (r *Reader) cleanNames(field string, names []string) (cleaned []string) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			r.logger.Warn("ignoring empty name in " + field)
			continue
		}
		if _, ok := seen[name]; ok {
			r.logger.Warn("ignoring duplicate name " + name + " in " + field)
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned
}

func toSecurityGroupTargets(groups []groupType, ports []portRuleType) (
	targets models.SecurityGroupTargets, err error) {
	if len(groups) == 0 {
		return targets, nil
	}

	targets.Groups = make([]models.SecurityGroup, len(groups))
	for i, group := range groups {
		targets.Groups[i], err = toSecurityGroup(group)
		if err != nil {
			return targets, fmt.Errorf("group %d of %d: %w", i+1, len(groups), err)
		}
	}

	if len(ports) == 0 {
		return targets, ErrNoPortRule
	}

	targets.Ports = make([]models.PortRule, len(ports))
	for i, port := range ports {
		targets.Ports[i], err = toPortRule(port)
		if err != nil {
			return targets, fmt.Errorf("port rule %d of %d: %w", i+1, len(ports), err)
		}
	}

	return targets, nil
}
