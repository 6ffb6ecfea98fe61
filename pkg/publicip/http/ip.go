package http

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
)

var ErrAllProvidersFailed = errors.New("all HTTP providers failed")

// IP returns the public IP address obtained from the first provider
// succeeding, trying each provider in order with its own timeout.
func (f *Fetcher) IP(ctx context.Context) (publicIP netip.Addr, err error) {
	errs := make([]error, 0, len(f.urls))
	for _, url := range f.urls {
		publicIP, err = f.ip(ctx, url)
		if err == nil {
			return publicIP, nil
		}
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

func (f *Fetcher) ip(ctx context.Context, url string) (
	publicIP netip.Addr, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return fetch(ctx, f.client, url, f.version)
}
