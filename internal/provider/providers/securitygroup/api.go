package securitygroup

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
)

// EC2API implements API using the EC2 client.
type EC2API struct {
	client *ec2.Client
}

// NewAPI loads the AWS configuration for the region and optional
// shared configuration profile, and checks credentials can be retrieved.
func NewAPI(ctx context.Context, region, profile string) (*EC2API, error) {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		options = append(options, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	_, err = cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", providererrors.ErrCredentialsUnavailable, err)
	}

	return &EC2API{
		client: ec2.NewFromConfig(cfg),
	}, nil
}

func (a *EC2API) AuthorizeIngress(ctx context.Context, groupID string,
	permission types.IpPermission) (err error) {
	input := &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: []types.IpPermission{permission},
	}
	_, err = a.client.AuthorizeSecurityGroupIngress(ctx, input)
	if err != nil {
		return utils.WrapEC2Error(err)
	}
	return nil
}

func (a *EC2API) RevokeIngress(ctx context.Context, groupID string,
	permission types.IpPermission) (err error) {
	input := &ec2.RevokeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: []types.IpPermission{permission},
	}
	_, err = a.client.RevokeSecurityGroupIngress(ctx, input)
	if err != nil {
		return utils.WrapEC2Error(err)
	}
	return nil
}
