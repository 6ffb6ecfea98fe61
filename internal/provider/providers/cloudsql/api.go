package cloudsql

import (
	"context"
	"fmt"
	"strings"

	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
	"google.golang.org/api/option"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

// SQLAdminAPI implements API using the Cloud SQL Admin client.
type SQLAdminAPI struct {
	service *sqladmin.Service
}

func NewAPI(ctx context.Context, options ...option.ClientOption) (*SQLAdminAPI, error) {
	service, err := sqladmin.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("creating sqladmin service: %w", err)
	}
	return &SQLAdminAPI{
		service: service,
	}, nil
}

func (a *SQLAdminAPI) GetInstance(ctx context.Context, project, instance string) (
	databaseInstance *sqladmin.DatabaseInstance, err error) {
	databaseInstance, err = a.service.Instances.Get(project, instance).Context(ctx).Do()
	if err != nil {
		return nil, utils.WrapGoogleAPIError(err)
	}
	return databaseInstance, nil
}

// PatchInstance sends the patch and returns once the patch operation
// is accepted. The instance settings are applied asynchronously.
func (a *SQLAdminAPI) PatchInstance(ctx context.Context, project, instance string,
	patch *sqladmin.DatabaseInstance) (err error) {
	operation, err := a.service.Instances.Patch(project, instance, patch).Context(ctx).Do()
	if err != nil {
		return utils.WrapGoogleAPIError(err)
	}
	return operationError(operation)
}

func operationError(operation *sqladmin.Operation) error {
	if operation.Error == nil || len(operation.Error.Errors) == 0 {
		return nil
	}

	messages := make([]string, len(operation.Error.Errors))
	for i, operationError := range operation.Error.Errors {
		messages[i] = operationError.Code + ": " + operationError.Message
	}
	return fmt.Errorf("%w: %s", providererrors.ErrOperationFailed, strings.Join(messages, "; "))
}
