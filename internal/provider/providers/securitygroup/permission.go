package securitygroup

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/qdm12/allowlist-updater/internal/allowlist"
	"github.com/qdm12/allowlist-updater/internal/models"
)

// makePermission returns the ingress permission for the port rule and
// the host prefix of the IP address. The description is optional.
func makePermission(port models.PortRule, ip netip.Addr,
	description string) (permission types.IpPermission) {
	permission = types.IpPermission{
		IpProtocol: aws.String(port.Protocol),
		FromPort:   aws.Int32(int32(port.Port)),
		ToPort:     aws.Int32(int32(port.Port)),
	}

	var descriptionPtr *string
	if description != "" {
		descriptionPtr = aws.String(description)
	}

	cidr := allowlist.HostPrefix(ip).String()
	if ip.Unmap().Is4() {
		permission.IpRanges = []types.IpRange{{
			CidrIp:      aws.String(cidr),
			Description: descriptionPtr,
		}}
	} else {
		permission.Ipv6Ranges = []types.Ipv6Range{{
			CidrIpv6:    aws.String(cidr),
			Description: descriptionPtr,
		}}
	}
	return permission
}

// ruleDescription joins the port rule and security group descriptions
// as "<port description> - <group description>".
func ruleDescription(port models.PortRule, group models.SecurityGroup) string {
	parts := make([]string, 0, 2) //nolint:gomnd
	for _, part := range []string{port.Description, group.Description} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " - ")
}

func portString(port models.PortRule) string {
	return fmt.Sprintf("%s/%d", port.Protocol, port.Port)
}
