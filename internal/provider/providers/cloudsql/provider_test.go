package cloudsql

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/qdm12/allowlist-updater/internal/provider/constants"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/providers/cloudsql/mock_cloudsql"
	"github.com/stretchr/testify/assert"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

func Test_Provider_Update(t *testing.T) {
	t.Parallel()

	const project = "my-project"
	oldIP := netip.MustParseAddr("198.51.100.1")
	newIP := netip.MustParseAddr("203.0.113.7")
	timeNow := func() time.Time {
		return time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	}

	t.Run("old networks replaced", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		other := &sqladmin.AclEntry{Name: "vpn", Value: "192.0.2.0/24"}
		api := mock_cloudsql.NewMockAPI(ctrl)
		api.EXPECT().GetInstance(ctx, project, "main-db").
			Return(&sqladmin.DatabaseInstance{
				Name: "main-db",
				Settings: &sqladmin.Settings{
					SettingsVersion: 42,
					Tier:            "db-f1-micro",
					IpConfiguration: &sqladmin.IpConfiguration{
						Ipv4Enabled: true,
						AuthorizedNetworks: []*sqladmin.AclEntry{
							{Name: "office-ip-old", Value: "198.51.100.1"},
							other,
							{Name: "office-ip-older", Value: "198.51.100.1/32"},
						},
					},
				},
			}, nil)
		api.EXPECT().PatchInstance(ctx, project, "main-db", &sqladmin.DatabaseInstance{
			Settings: &sqladmin.Settings{
				SettingsVersion: 42,
				IpConfiguration: &sqladmin.IpConfiguration{
					Ipv4Enabled: true,
					AuthorizedNetworks: []*sqladmin.AclEntry{
						other,
						{
							Kind:  "sql#aclEntry",
							Name:  "office-ip-20240305-0907",
							Value: "203.0.113.7",
						},
					},
				},
			},
		}).Return(nil)

		logger := mock_cloudsql.NewMockLogger(ctrl)
		logger.EXPECT().Info("Cloud SQL instance main-db updated")

		provider := New(project, []string{"main-db"}, api, logger, timeNow)
		results := provider.Update(ctx, oldIP, newIP)

		expected := []models.Result{{
			Provider: constants.CloudSQL,
			Target:   "main-db",
			Status:   models.UPDATED,
		}}
		assert.Equal(t, expected, results)
	})

	t.Run("new address already authorized", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		api := mock_cloudsql.NewMockAPI(ctrl)
		api.EXPECT().GetInstance(ctx, project, "main-db").
			Return(&sqladmin.DatabaseInstance{
				Settings: &sqladmin.Settings{
					IpConfiguration: &sqladmin.IpConfiguration{
						AuthorizedNetworks: []*sqladmin.AclEntry{
							{Name: "manual", Value: "203.0.113.7/32"},
						},
					},
				},
			}, nil)

		logger := mock_cloudsql.NewMockLogger(ctrl)
		logger.EXPECT().Info("Cloud SQL instance main-db is already up to date")

		provider := New(project, []string{"main-db"}, api, logger, timeNow)
		results := provider.Update(ctx, netip.Addr{}, newIP)

		assert.Equal(t, []models.Result{{
			Provider: constants.CloudSQL,
			Target:   "main-db",
			Status:   models.UPTODATE,
		}}, results)
	})

	t.Run("instance not found does not stop other instances", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		ctx := context.Background()

		errNotFound := fmt.Errorf("%w: googleapi: Error 404", providererrors.ErrNotFound)
		errDummy := errors.New("dummy")

		api := mock_cloudsql.NewMockAPI(ctrl)
		logger := mock_cloudsql.NewMockLogger(ctrl)
		gomock.InOrder(
			api.EXPECT().GetInstance(ctx, project, "missing").Return(nil, errNotFound),
			logger.EXPECT().Warn("Cloud SQL instance missing not found"),
			api.EXPECT().GetInstance(ctx, project, "broken").Return(nil, errDummy),
			logger.EXPECT().Error("Cloud SQL instance broken: getting instance: dummy"),
			api.EXPECT().GetInstance(ctx, project, "main-db").
				Return(&sqladmin.DatabaseInstance{}, nil),
			api.EXPECT().PatchInstance(ctx, project, "main-db", &sqladmin.DatabaseInstance{
				Settings: &sqladmin.Settings{
					IpConfiguration: &sqladmin.IpConfiguration{
						AuthorizedNetworks: []*sqladmin.AclEntry{{
							Kind:  "sql#aclEntry",
							Name:  "office-ip-20240305-0907",
							Value: "203.0.113.7",
						}},
					},
				},
			}).Return(nil),
			logger.EXPECT().Info("Cloud SQL instance main-db updated"),
		)

		provider := New(project, []string{"missing", "broken", "main-db"}, api, logger, timeNow)
		results := provider.Update(ctx, oldIP, newIP)

		statuses := make([]models.Status, len(results))
		for i, result := range results {
			statuses[i] = result.Status
		}
		assert.Equal(t, []models.Status{models.NOTFOUND, models.FAIL, models.UPDATED}, statuses)
		assert.ErrorIs(t, results[0].Err, providererrors.ErrNotFound)
		assert.ErrorIs(t, results[1].Err, errDummy)
	})
}

func Test_entryName(t *testing.T) {
	t.Parallel()

	name := entryName(time.Date(2023, time.December, 31, 23, 59, 30, 0, time.UTC))

	assert.Equal(t, "office-ip-20231231-2359", name)
}
