package securitygroup

import (
	"net/netip"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/stretchr/testify/assert"
)

func Test_makePermission(t *testing.T) {
	t.Parallel()

	port := models.PortRule{Protocol: "tcp", Port: 22}

	testCases := map[string]struct {
		ip          netip.Addr
		description string
		permission  types.IpPermission
	}{
		"ipv4 without description": {
			ip: netip.MustParseAddr("203.0.113.7"),
			permission: types.IpPermission{
				IpProtocol: aws.String("tcp"),
				FromPort:   aws.Int32(22),
				ToPort:     aws.Int32(22),
				IpRanges: []types.IpRange{{
					CidrIp: aws.String("203.0.113.7/32"),
				}},
			},
		},
		"ipv6 with description": {
			ip:          netip.MustParseAddr("2001:db8::7"),
			description: "SSH - Bastion",
			permission: types.IpPermission{
				IpProtocol: aws.String("tcp"),
				FromPort:   aws.Int32(22),
				ToPort:     aws.Int32(22),
				Ipv6Ranges: []types.Ipv6Range{{
					CidrIpv6:    aws.String("2001:db8::7/128"),
					Description: aws.String("SSH - Bastion"),
				}},
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			permission := makePermission(port, testCase.ip, testCase.description)

			assert.Equal(t, testCase.permission, permission)
		})
	}
}

func Test_ruleDescription(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		port        models.PortRule
		group       models.SecurityGroup
		description string
	}{
		"both descriptions": {
			port:        models.PortRule{Description: "SSH"},
			group:       models.SecurityGroup{Description: "Bastion"},
			description: "SSH - Bastion",
		},
		"group description only": {
			group:       models.SecurityGroup{Description: "Bastion"},
			description: "Bastion",
		},
		"no description": {},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			description := ruleDescription(testCase.port, testCase.group)

			assert.Equal(t, testCase.description, description)
		})
	}
}
