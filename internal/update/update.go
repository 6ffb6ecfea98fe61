package update

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/allowlist-updater/internal/persistence"
)

// Updater runs the reconciliation cycle: it compares the public IP
// address with the cached one and, on change, propagates the new address
// to every provider in order before advancing the cache.
type Updater struct {
	ipGetter  PublicIPFetcher
	cache     Cache
	providers []Provider
	notifier  ShoutrrrClient
	logger    Logger
}

func New(ipGetter PublicIPFetcher, cache Cache, providers []Provider,
	notifier ShoutrrrClient, logger Logger) *Updater {
	return &Updater{
		ipGetter:  ipGetter,
		cache:     cache,
		providers: providers,
		notifier:  notifier,
		logger:    logger,
	}
}

var ErrPublicIPUnavailable = errors.New("public IP address unavailable")

func (u *Updater) Run(ctx context.Context) (summary Summary, err error) {
	newIP, err := u.ipGetter.IP(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrPublicIPUnavailable, err)
	}
	newIP = newIP.Unmap()
	summary.NewIP = newIP
	u.logger.Info("Public IP address is " + newIP.String())

	oldIP, err := u.cache.Read()
	switch {
	case errors.Is(err, persistence.ErrCacheMalformed):
		u.logger.Warn(err.Error() + ", ignoring it")
		oldIP = netip.Addr{}
	case err != nil:
		return summary, fmt.Errorf("reading cached IP address: %w", err)
	}
	summary.OldIP = oldIP

	if oldIP == newIP {
		u.logger.Info(summary.String() + ", nothing to update")
		return summary, nil
	}

	summary.Changed = true
	u.logger.Info(fmt.Sprintf("Public IP address changed from %s to %s",
		ipString(oldIP), newIP))

	for _, provider := range u.providers {
		u.logger.Debug("updating " + provider.String())
		results := provider.Update(ctx, oldIP, newIP)
		summary.Results = append(summary.Results, results...)
	}

	// An interrupted run leaves the cache untouched
	// so the next run reconciles every target again.
	if err = ctx.Err(); err != nil {
		err = fmt.Errorf("not writing cached IP address: %w", err)
	} else if err = u.cache.Write(newIP); err != nil {
		err = fmt.Errorf("writing cached IP address: %w", err)
	}

	u.notifier.Notify(summary.String())

	return summary, err
}
