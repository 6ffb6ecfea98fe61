package gcpfirewall

import (
	"context"

	"google.golang.org/api/compute/v1"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . API,Logger

// API is the subset of the Compute Engine API used to
// reconcile firewall rules.
type API interface {
	GetFirewall(ctx context.Context, project, name string) (firewall *compute.Firewall, err error)
	UpdateFirewall(ctx context.Context, project, name string, firewall *compute.Firewall) (err error)
}

type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}
