package gcpfirewall

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/allowlist-updater/internal/allowlist"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/qdm12/allowlist-updater/internal/provider/constants"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
)

// Provider keeps the source ranges of VPC firewall rules
// in sync with the public IP address.
type Provider struct {
	project string
	rules   []string
	api     API
	logger  Logger
}

func New(project string, rules []string, api API, logger Logger) *Provider {
	return &Provider{
		project: project,
		rules:   rules,
		api:     api,
		logger:  logger,
	}
}

func (p *Provider) String() string {
	return string(constants.GCPFirewall)
}

func (p *Provider) Update(ctx context.Context, oldIP, newIP netip.Addr) (
	results []models.Result) {
	results = make([]models.Result, len(p.rules))
	for i, rule := range p.rules {
		status, err := p.updateRule(ctx, rule, oldIP, newIP)
		results[i] = models.Result{
			Provider: constants.GCPFirewall,
			Target:   rule,
			Status:   status,
			Err:      err,
		}
		utils.LogResult(p.logger, "firewall rule", results[i])
	}
	return results
}

func (p *Provider) updateRule(ctx context.Context, rule string,
	oldIP, newIP netip.Addr) (status models.Status, err error) {
	firewall, err := p.api.GetFirewall(ctx, p.project, rule)
	if err != nil {
		if errors.Is(err, providererrors.ErrNotFound) {
			return models.NOTFOUND, err
		}
		return models.FAIL, fmt.Errorf("getting firewall rule: %w", err)
	}

	sourceRanges, changed := allowlist.Update(firewall.SourceRanges, oldIP, newIP)
	if !changed {
		return models.UPTODATE, nil
	}

	p.logger.Debug(fmt.Sprintf("firewall rule %s source ranges: %v -> %v",
		rule, firewall.SourceRanges, sourceRanges))
	firewall.SourceRanges = sourceRanges

	err = p.api.UpdateFirewall(ctx, p.project, rule, firewall)
	if err != nil {
		if errors.Is(err, providererrors.ErrNotFound) {
			return models.NOTFOUND, err
		}
		return models.FAIL, fmt.Errorf("updating firewall rule: %w", err)
	}
	return models.UPDATED, nil
}
