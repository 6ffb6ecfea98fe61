package publicip

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/allowlist-updater/pkg/publicip/dns"
	"github.com/qdm12/allowlist-updater/pkg/publicip/http"
)

type ipFetcher interface {
	String() string
	IP(ctx context.Context) (ip netip.Addr, err error)
}

// Fetcher obtains the public IP address using its sub-fetchers
// in a fixed order, falling through to the next one on failure.
type Fetcher struct {
	settings settings
	fetchers []ipFetcher
}

var ErrNoFetchTypeSpecified = errors.New("at least one fetcher type must be specified")

func NewFetcher(httpSettings HTTPSettings, dnsSettings DNSSettings) (
	f *Fetcher, err error) {
	settings := settings{
		http: httpSettings,
		dns:  dnsSettings,
	}

	fetcher := &Fetcher{
		settings: settings,
	}

	if settings.http.Enabled {
		subFetcher, err := http.New(settings.http.Client, settings.http.Options...)
		if err != nil {
			return nil, fmt.Errorf("creating HTTP fetcher: %w", err)
		}
		fetcher.fetchers = append(fetcher.fetchers, subFetcher)
	}

	if settings.dns.Enabled {
		subFetcher, err := dns.New(settings.dns.Options...)
		if err != nil {
			return nil, fmt.Errorf("creating DNS fetcher: %w", err)
		}
		fetcher.fetchers = append(fetcher.fetchers, subFetcher)
	}

	if len(fetcher.fetchers) == 0 {
		return nil, ErrNoFetchTypeSpecified
	}

	return fetcher, nil
}

var ErrAllFetchersFailed = errors.New("all public IP fetchers failed")

func (f *Fetcher) IP(ctx context.Context) (ip netip.Addr, err error) {
	errs := make([]error, 0, len(f.fetchers))
	for _, fetcher := range f.fetchers {
		ip, err = fetcher.IP(ctx)
		if err == nil {
			return ip, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", fetcher, err))

		if ctx.Err() != nil {
			break
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %w", ErrAllFetchersFailed, errors.Join(errs...))
}
