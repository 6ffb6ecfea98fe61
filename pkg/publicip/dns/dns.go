package dns

import (
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

// Fetcher obtains the public IP address using DNS over TLS
// echo queries, trying each provider in their priority order.
type Fetcher struct {
	network   string
	version   ipversion.IPVersion
	timeout   time.Duration
	endpoints []endpoint
}

type endpoint struct {
	provider Provider
	client   Client
	data     providerData
}

func New(options ...Option) (f *Fetcher, err error) {
	settings := newDefaultSettings()
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, err
		}
	}

	network := versionToNetwork(settings.version)

	endpoints := make([]endpoint, len(settings.providers))
	for i, provider := range settings.providers {
		data := provider.data()
		endpoints[i] = endpoint{
			provider: provider,
			client:   newClient(network, settings.timeout, data.TLSName),
			data:     data,
		}
	}

	return &Fetcher{
		network:   network,
		version:   settings.version,
		timeout:   settings.timeout,
		endpoints: endpoints,
	}, nil
}

func (f *Fetcher) String() string {
	return "DNS"
}

func versionToNetwork(version ipversion.IPVersion) (network string) {
	switch version {
	case ipversion.IP4:
		return "tcp4"
	case ipversion.IP6:
		return "tcp6"
	default:
		return "tcp"
	}
}
