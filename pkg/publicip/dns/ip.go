package dns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

var (
	ErrIPNotFoundForVersion = errors.New("IP addresses found but not for IP version")
	ErrAllProvidersFailed   = errors.New("all DNS providers failed")
)

// IP returns the public IP address obtained from the first provider
// succeeding, trying each provider in order with its own timeout.
func (f *Fetcher) IP(ctx context.Context) (publicIP netip.Addr, err error) {
	errs := make([]error, 0, len(f.endpoints))
	for _, endpoint := range f.endpoints {
		publicIP, err = f.ip(ctx, endpoint)
		if err == nil {
			return publicIP, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", endpoint.provider, err))

		if ctx.Err() != nil {
			break
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

func (f *Fetcher) ip(ctx context.Context, endpoint endpoint) (
	publicIP netip.Addr, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	publicIPs, err := fetch(ctx, endpoint.client, f.network, endpoint.data)
	if err != nil {
		return netip.Addr{}, err
	}

	for _, ip := range publicIPs {
		switch {
		case f.version == ipversion.IP4 && ip.Is4(),
			f.version == ipversion.IP6 && ip.Is6(),
			f.version == ipversion.IP4or6:
			return ip, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %s", ErrIPNotFoundForVersion, f.version)
}
