package gcpfirewall

import (
	"context"
	"fmt"
	"strings"

	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// ComputeAPI implements API using the Compute Engine client.
type ComputeAPI struct {
	service *compute.Service
}

func NewAPI(ctx context.Context, options ...option.ClientOption) (*ComputeAPI, error) {
	service, err := compute.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("creating compute service: %w", err)
	}
	return &ComputeAPI{
		service: service,
	}, nil
}

func (a *ComputeAPI) GetFirewall(ctx context.Context, project, name string) (
	firewall *compute.Firewall, err error) {
	firewall, err = a.service.Firewalls.Get(project, name).Context(ctx).Do()
	if err != nil {
		return nil, utils.WrapGoogleAPIError(err)
	}
	return firewall, nil
}

// UpdateFirewall replaces the firewall rule and waits for the
// resulting global operation to complete.
func (a *ComputeAPI) UpdateFirewall(ctx context.Context, project, name string,
	firewall *compute.Firewall) (err error) {
	operation, err := a.service.Firewalls.Update(project, name, firewall).Context(ctx).Do()
	if err != nil {
		return utils.WrapGoogleAPIError(err)
	}

	const statusDone = "DONE"
	for operation.Status != statusDone {
		// Wait returns when the operation is done or after about two minutes.
		operation, err = a.service.GlobalOperations.Wait(project, operation.Name).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("waiting for operation: %w", utils.WrapGoogleAPIError(err))
		}
	}

	return operationError(operation)
}

func operationError(operation *compute.Operation) error {
	if operation.Error == nil || len(operation.Error.Errors) == 0 {
		return nil
	}

	messages := make([]string, len(operation.Error.Errors))
	for i, operationError := range operation.Error.Errors {
		messages[i] = operationError.Code + ": " + operationError.Message
	}
	return fmt.Errorf("%w: %s", providererrors.ErrOperationFailed, strings.Join(messages, "; "))
}
