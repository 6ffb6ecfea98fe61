package securitygroup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . API,Logger

// API is the subset of the EC2 API used to reconcile
// security group ingress rules.
type API interface {
	AuthorizeIngress(ctx context.Context, groupID string, permission types.IpPermission) (err error)
	RevokeIngress(ctx context.Context, groupID string, permission types.IpPermission) (err error)
}

type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}
