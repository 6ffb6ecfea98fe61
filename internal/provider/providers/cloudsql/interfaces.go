package cloudsql

import (
	"context"

	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . API,Logger

// API is the subset of the Cloud SQL Admin API used to
// reconcile authorized networks.
type API interface {
	GetInstance(ctx context.Context, project, instance string) (
		databaseInstance *sqladmin.DatabaseInstance, err error)
	PatchInstance(ctx context.Context, project, instance string,
		patch *sqladmin.DatabaseInstance) (err error)
}

type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}
