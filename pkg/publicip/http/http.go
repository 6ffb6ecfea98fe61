package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

// Fetcher obtains the public IP address from HTTP echo services,
// trying each of them in their priority order.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	version ipversion.IPVersion
	urls    []string
}

func New(client *http.Client, options ...Option) (f *Fetcher, err error) {
	settings := newDefaultSettings()
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(settings.providers))
	for i, provider := range settings.providers {
		url, ok := provider.url(settings.version)
		if !ok {
			return nil, fmt.Errorf("%w: %q for version %s",
				ErrProviderIPVersion, provider, settings.version)
		}
		urls[i] = url
	}

	return &Fetcher{
		client:  client,
		timeout: settings.timeout,
		version: settings.version,
		urls:    urls,
	}, nil
}

func (f *Fetcher) String() string {
	return "HTTP"
}
