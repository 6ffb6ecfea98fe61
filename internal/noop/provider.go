package noop

import (
	"context"
	"net/netip"

	"github.com/qdm12/allowlist-updater/internal/models"
)

type Warner interface {
	Warn(message string)
}

// Provider stands in for a provider adapter whose client
// could not be created, and skips all its targets.
type Provider struct {
	name    models.Provider
	targets []string
	reason  error
	logger  Warner
}

func New(name models.Provider, targets []string, reason error, logger Warner) *Provider {
	return &Provider{
		name:    name,
		targets: targets,
		reason:  reason,
		logger:  logger,
	}
}

func (p *Provider) String() string {
	return string(p.name) + " (no-op)"
}

func (p *Provider) Update(_ context.Context, _, _ netip.Addr) (results []models.Result) {
	p.logger.Warn("skipping " + string(p.name) + ": " + p.reason.Error())
	results = make([]models.Result, len(p.targets))
	for i, target := range p.targets {
		results[i] = models.Result{
			Provider: p.name,
			Target:   target,
			Status:   models.SKIPPED,
			Err:      p.reason,
		}
	}
	return results
}
