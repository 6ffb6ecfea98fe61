package gcpfirewall

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/qdm12/allowlist-updater/internal/provider/constants"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/providers/gcpfirewall/mock_gcpfirewall"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/compute/v1"
)

func Test_Provider_Update(t *testing.T) {
	t.Parallel()

	const project = "my-project"
	oldIP := netip.MustParseAddr("198.51.100.1")
	newIP := netip.MustParseAddr("203.0.113.7")
	errDummy := errors.New("dummy")

	t.Run("old entry replaced", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		api := mock_gcpfirewall.NewMockAPI(ctrl)
		api.EXPECT().GetFirewall(ctx, project, "allow-ssh").
			Return(&compute.Firewall{
				Name:         "allow-ssh",
				SourceRanges: []string{"10.0.0.0/8", "198.51.100.1/32"},
			}, nil)
		api.EXPECT().UpdateFirewall(ctx, project, "allow-ssh", &compute.Firewall{
			Name:         "allow-ssh",
			SourceRanges: []string{"10.0.0.0/8", "203.0.113.7/32"},
		}).Return(nil)

		logger := mock_gcpfirewall.NewMockLogger(ctrl)
		logger.EXPECT().Debug("firewall rule allow-ssh source ranges: " +
			"[10.0.0.0/8 198.51.100.1/32] -> [10.0.0.0/8 203.0.113.7/32]")
		logger.EXPECT().Info("firewall rule allow-ssh updated")

		provider := New(project, []string{"allow-ssh"}, api, logger)
		results := provider.Update(ctx, oldIP, newIP)

		expected := []models.Result{{
			Provider: constants.GCPFirewall,
			Target:   "allow-ssh",
			Status:   models.UPDATED,
		}}
		assert.Equal(t, expected, results)
	})

	t.Run("already up to date", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		api := mock_gcpfirewall.NewMockAPI(ctrl)
		api.EXPECT().GetFirewall(ctx, project, "allow-ssh").
			Return(&compute.Firewall{
				SourceRanges: []string{"203.0.113.7/32"},
			}, nil)

		logger := mock_gcpfirewall.NewMockLogger(ctrl)
		logger.EXPECT().Info("firewall rule allow-ssh is already up to date")

		provider := New(project, []string{"allow-ssh"}, api, logger)
		results := provider.Update(ctx, netip.Addr{}, newIP)

		expected := []models.Result{{
			Provider: constants.GCPFirewall,
			Target:   "allow-ssh",
			Status:   models.UPTODATE,
		}}
		assert.Equal(t, expected, results)
	})

	t.Run("rule not found does not stop other rules", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		errNotFound := fmt.Errorf("%w: googleapi: Error 404", providererrors.ErrNotFound)

		api := mock_gcpfirewall.NewMockAPI(ctrl)
		logger := mock_gcpfirewall.NewMockLogger(ctrl)
		gomock.InOrder(
			api.EXPECT().GetFirewall(ctx, project, "missing").
				Return(nil, errNotFound),
			logger.EXPECT().Warn("firewall rule missing not found"),
			api.EXPECT().GetFirewall(ctx, project, "allow-ssh").
				Return(&compute.Firewall{}, nil),
			logger.EXPECT().Debug("firewall rule allow-ssh source ranges: [] -> [203.0.113.7/32]"),
			api.EXPECT().UpdateFirewall(ctx, project, "allow-ssh", &compute.Firewall{
				SourceRanges: []string{"203.0.113.7/32"},
			}).Return(nil),
			logger.EXPECT().Info("firewall rule allow-ssh updated"),
		)

		provider := New(project, []string{"missing", "allow-ssh"}, api, logger)
		results := provider.Update(ctx, oldIP, newIP)

		expected := []models.Result{
			{
				Provider: constants.GCPFirewall,
				Target:   "missing",
				Status:   models.NOTFOUND,
				Err:      errNotFound,
			},
			{
				Provider: constants.GCPFirewall,
				Target:   "allow-ssh",
				Status:   models.UPDATED,
			},
		}
		assert.Equal(t, expected, results)
	})

	t.Run("update failure", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		api := mock_gcpfirewall.NewMockAPI(ctrl)
		api.EXPECT().GetFirewall(ctx, project, "allow-ssh").
			Return(&compute.Firewall{SourceRanges: []string{"198.51.100.1"}}, nil)
		api.EXPECT().UpdateFirewall(ctx, project, "allow-ssh", &compute.Firewall{
			SourceRanges: []string{"203.0.113.7/32"},
		}).Return(errDummy)

		logger := mock_gcpfirewall.NewMockLogger(ctrl)
		logger.EXPECT().Debug(gomock.Any())
		logger.EXPECT().Error("firewall rule allow-ssh: updating firewall rule: dummy")

		provider := New(project, []string{"allow-ssh"}, api, logger)
		results := provider.Update(ctx, oldIP, newIP)

		assert.Len(t, results, 1)
		assert.Equal(t, models.FAIL, results[0].Status)
		assert.ErrorIs(t, results[0].Err, errDummy)
	})
}

func Test_operationError(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		operation *compute.Operation
		err       error
	}{
		"no error": {
			operation: &compute.Operation{Status: "DONE"},
		},
		"empty error": {
			operation: &compute.Operation{Error: &compute.OperationError{}},
		},
		"errors": {
			operation: &compute.Operation{
				Error: &compute.OperationError{
					Errors: []*compute.OperationErrorErrors{
						{Code: "RESOURCE_NOT_READY", Message: "not ready"},
						{Code: "QUOTA_EXCEEDED", Message: "quota"},
					},
				},
			},
			err: errors.New("operation failed: RESOURCE_NOT_READY: not ready; QUOTA_EXCEEDED: quota"),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := operationError(testCase.operation)

			if testCase.err != nil {
				assert.ErrorIs(t, err, providererrors.ErrOperationFailed)
				assert.EqualError(t, err, testCase.err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
