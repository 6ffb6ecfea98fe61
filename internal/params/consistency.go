package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qdm12/allowlist-updater/internal/models"
)

var (
	ErrCacheFileNotSet = errors.New("ip_cache_file is not set")
	ErrProjectIDNotSet = errors.New("gcp project_id is not set")
	ErrRegionNotSet    = errors.New("aws region is not set")
	ErrGroupIDNotSet   = errors.New("group_id is not set")
	ErrNoPortRule      = errors.New("no port rule specified")
	ErrProtocolNotSet  = errors.New("protocol is not set")
	ErrPortNotSet      = errors.New("port is not set")
	ErrPortOutOfRange  = errors.New("port is out of range")
)

func toSecurityGroup(group groupType) (securityGroup models.SecurityGroup, err error) {
	securityGroup = models.SecurityGroup{
		ID:          strings.TrimSpace(group.GroupID),
		Description: strings.TrimSpace(group.Description),
	}
	if securityGroup.ID == "" {
		return securityGroup, ErrGroupIDNotSet
	}
	return securityGroup, nil
}

func toPortRule(port portRuleType) (rule models.PortRule, err error) {
	rule.Protocol = strings.ToLower(strings.TrimSpace(port.Protocol))
	rule.Description = strings.TrimSpace(port.Description)

	switch {
	case rule.Protocol == "":
		return rule, ErrProtocolNotSet
	case port.Port == nil:
		return rule, ErrPortNotSet
	case *port.Port < 0 || *port.Port > 65535:
		return rule, fmt.Errorf("%w: %d must be between 0 and 65535",
			ErrPortOutOfRange, *port.Port)
	}

	rule.Port = uint16(*port.Port)
	return rule, nil
}
