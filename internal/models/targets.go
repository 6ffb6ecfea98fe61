package models

// Targets holds every allowlist to keep in sync with the public IP address.
// It is built once at startup and never modified afterwards.
type Targets struct {
	GCP       GCPTargets
	AWS       AWSTargets
	CacheFile string
}

type GCPTargets struct {
	ProjectID string
	// CredentialsFile is optional. Application default
	// credentials are used if it is empty or does not exist.
	CredentialsFile string
	FirewallRules   []string
	SQLInstances    []string
}

func (g GCPTargets) Empty() bool {
	return len(g.FirewallRules) == 0 && len(g.SQLInstances) == 0
}

type AWSTargets struct {
	Region  string
	Profile string
	SSH     SecurityGroupTargets
	// Database is the set of security groups protecting databases,
	// named "mysql" in the configuration file.
	Database SecurityGroupTargets
}

func (a AWSTargets) Empty() bool {
	return len(a.SSH.Groups) == 0 && len(a.Database.Groups) == 0
}

// SecurityGroupTargets pairs security groups with the ports
// to open to the public IP address on each of them.
type SecurityGroupTargets struct {
	Groups []SecurityGroup
	Ports  []PortRule
}

type SecurityGroup struct {
	ID          string
	Description string
}

type PortRule struct {
	Protocol    string
	Port        uint16
	Description string
}
