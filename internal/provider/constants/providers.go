package constants

import "github.com/qdm12/allowlist-updater/internal/models"

// All provider adapter instances, in their update order.
const (
	GCPFirewall    models.Provider = "gcp firewall"
	CloudSQL       models.Provider = "gcp cloud sql"
	SSHGroups      models.Provider = "aws ssh security groups"
	DatabaseGroups models.Provider = "aws database security groups"
)
