package cloudsql

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/qdm12/allowlist-updater/internal/allowlist"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/qdm12/allowlist-updater/internal/provider/constants"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
	sqladmin "google.golang.org/api/sqladmin/v1beta4"
)

// Provider keeps the authorized networks of Cloud SQL
// instances in sync with the public IP address.
type Provider struct {
	project   string
	instances []string
	api       API
	logger    Logger
	timeNow   func() time.Time
}

func New(project string, instances []string, api API, logger Logger,
	timeNow func() time.Time) *Provider {
	return &Provider{
		project:   project,
		instances: instances,
		api:       api,
		logger:    logger,
		timeNow:   timeNow,
	}
}

func (p *Provider) String() string {
	return string(constants.CloudSQL)
}

func (p *Provider) Update(ctx context.Context, oldIP, newIP netip.Addr) (
	results []models.Result) {
	results = make([]models.Result, len(p.instances))
	for i, instance := range p.instances {
		status, err := p.updateInstance(ctx, instance, oldIP, newIP)
		results[i] = models.Result{
			Provider: constants.CloudSQL,
			Target:   instance,
			Status:   status,
			Err:      err,
		}
		utils.LogResult(p.logger, "Cloud SQL instance", results[i])
	}
	return results
}

func (p *Provider) updateInstance(ctx context.Context, instance string,
	oldIP, newIP netip.Addr) (status models.Status, err error) {
	databaseInstance, err := p.api.GetInstance(ctx, p.project, instance)
	if err != nil {
		if errors.Is(err, providererrors.ErrNotFound) {
			return models.NOTFOUND, err
		}
		return models.FAIL, fmt.Errorf("getting instance: %w", err)
	}

	settings := databaseInstance.Settings
	if settings == nil {
		settings = &sqladmin.Settings{}
	}
	var ipConfiguration sqladmin.IpConfiguration
	if settings.IpConfiguration != nil {
		ipConfiguration = *settings.IpConfiguration
	}

	networks, changed := p.updateNetworks(ipConfiguration.AuthorizedNetworks, oldIP, newIP)
	if !changed {
		return models.UPTODATE, nil
	}
	ipConfiguration.AuthorizedNetworks = networks

	patch := &sqladmin.DatabaseInstance{
		Settings: &sqladmin.Settings{
			IpConfiguration: &ipConfiguration,
			SettingsVersion: settings.SettingsVersion,
		},
	}

	err = p.api.PatchInstance(ctx, p.project, instance, patch)
	if err != nil {
		if errors.Is(err, providererrors.ErrNotFound) {
			return models.NOTFOUND, err
		}
		return models.FAIL, fmt.Errorf("patching instance: %w", err)
	}
	return models.UPDATED, nil
}

func (p *Provider) updateNetworks(networks []*sqladmin.AclEntry,
	oldIP, newIP netip.Addr) (updated []*sqladmin.AclEntry, changed bool) {
	removeOld := oldIP.IsValid() && oldIP.Unmap() != newIP.Unmap()
	updated = make([]*sqladmin.AclEntry, 0, len(networks)+1)
	newFound := false
	for _, network := range networks {
		switch {
		case removeOld && allowlist.Matches(network.Value, oldIP):
			changed = true
			continue
		case allowlist.Matches(network.Value, newIP):
			newFound = true
		}
		updated = append(updated, network)
	}

	if !newFound {
		updated = append(updated, &sqladmin.AclEntry{
			Kind:  "sql#aclEntry",
			Name:  entryName(p.timeNow()),
			Value: newIP.Unmap().String(),
		})
		changed = true
	}
	return updated, changed
}

func entryName(t time.Time) string {
	return "office-ip-" + t.Format("20060102-1504")
}
