package securitygroup

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/allowlist-updater/internal/models"
	providererrors "github.com/qdm12/allowlist-updater/internal/provider/errors"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
)

// Provider keeps the ingress rules of a list of EC2 security
// groups in sync with the public IP address, for a list of ports.
type Provider struct {
	name    models.Provider
	targets models.SecurityGroupTargets
	api     API
	logger  Logger
}

func New(name models.Provider, targets models.SecurityGroupTargets,
	api API, logger Logger) *Provider {
	return &Provider{
		name:    name,
		targets: targets,
		api:     api,
		logger:  logger,
	}
}

func (p *Provider) String() string {
	return string(p.name)
}

func (p *Provider) Update(ctx context.Context, oldIP, newIP netip.Addr) (
	results []models.Result) {
	results = make([]models.Result, len(p.targets.Groups))
	for i, group := range p.targets.Groups {
		status, err := p.updateGroup(ctx, group, oldIP, newIP)
		results[i] = models.Result{
			Provider: p.name,
			Target:   group.ID,
			Status:   status,
			Err:      err,
		}
		utils.LogResult(p.logger, "security group", results[i])
	}
	return results
}

func (p *Provider) updateGroup(ctx context.Context, group models.SecurityGroup,
	oldIP, newIP netip.Addr) (status models.Status, err error) {
	changed := false

	if oldIP.IsValid() && oldIP.Unmap() != newIP.Unmap() {
		for _, port := range p.targets.Ports {
			permission := makePermission(port, oldIP, "")
			err = p.api.RevokeIngress(ctx, group.ID, permission)
			switch {
			case err == nil:
				changed = true
				p.logger.Info(fmt.Sprintf("removed %s on %s from security group %s",
					oldIP, portString(port), group.ID))
			case errors.Is(err, providererrors.ErrNotFound):
				return models.NOTFOUND, err
			case errors.Is(err, providererrors.ErrPermissionNotFound):
				p.logger.Debug(fmt.Sprintf("security group %s has no rule for %s on %s",
					group.ID, oldIP, portString(port)))
			default:
				p.logger.Warn(fmt.Sprintf("cannot remove %s on %s from security group %s: %s",
					oldIP, portString(port), group.ID, err))
			}
		}
	}

	for _, port := range p.targets.Ports {
		permission := makePermission(port, newIP, ruleDescription(port, group))
		err = p.api.AuthorizeIngress(ctx, group.ID, permission)
		switch {
		case err == nil:
			changed = true
		case errors.Is(err, providererrors.ErrPermissionDuplicate):
			p.logger.Info(fmt.Sprintf("security group %s already allows %s on %s",
				group.ID, newIP, portString(port)))
		case errors.Is(err, providererrors.ErrNotFound):
			return models.NOTFOUND, err
		default:
			return models.FAIL, fmt.Errorf("authorizing %s: %w", portString(port), err)
		}
	}

	if !changed {
		return models.UPTODATE, nil
	}
	return models.UPDATED, nil
}
