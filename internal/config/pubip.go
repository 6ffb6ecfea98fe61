package config

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip"
	"github.com/qdm12/allowlist-updater/pkg/publicip/dns"
	"github.com/qdm12/allowlist-updater/pkg/publicip/http"
	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

const all = "all"

type PubIP struct {
	Fetchers      []string
	HTTPProviders []string
	DNSProviders  []string
	Version       *string
	Timeout       time.Duration
}

func (p *PubIP) setDefaults() {
	p.Fetchers = gosettings.DefaultSlice(p.Fetchers, []string{all})
	p.HTTPProviders = gosettings.DefaultSlice(p.HTTPProviders, []string{
		string(http.Ipify), string(http.Ifconfig), string(http.Icanhazip),
	})
	p.DNSProviders = gosettings.DefaultSlice(p.DNSProviders, []string{
		string(dns.Cloudflare), string(dns.OpenDNS),
	})
	p.Version = gosettings.DefaultPointer(p.Version, "ipv4")
	const defaultTimeout = 5 * time.Second
	p.Timeout = gosettings.DefaultComparable(p.Timeout, defaultTimeout)
}

var (
	ErrInvalidFetcher   = errors.New("invalid fetcher specified")
	ErrTimeoutTooShort  = errors.New("timeout is too short")
	ErrNoHTTPProvider   = errors.New("no HTTP provider specified")
	ErrNoDNSProvider    = errors.New("no DNS provider specified")
	ErrHTTPURLNotSecure = errors.New("custom HTTP provider URL must use https")
)

func (p PubIP) Validate() (err error) {
	_, _, err = p.enabledFetchers()
	if err != nil {
		return err
	}

	version, err := ipversion.Parse(*p.Version)
	if err != nil {
		return fmt.Errorf("IP version: %w", err)
	}

	const minTimeout = 100 * time.Millisecond
	if p.Timeout < minTimeout {
		return fmt.Errorf("%w: %s must be at least %s",
			ErrTimeoutTooShort, p.Timeout, minTimeout)
	}

	_, err = p.httpProviders(version)
	if err != nil {
		return fmt.Errorf("HTTP providers: %w", err)
	}

	_, err = p.dnsProviders()
	if err != nil {
		return fmt.Errorf("DNS providers: %w", err)
	}

	return nil
}

func (p PubIP) enabledFetchers() (httpEnabled, dnsEnabled bool, err error) {
	for i, fetcher := range p.Fetchers {
		switch strings.ToLower(fetcher) {
		case all:
			httpEnabled, dnsEnabled = true, true
		case "http":
			httpEnabled = true
		case "dns":
			dnsEnabled = true
		default:
			return false, false, fmt.Errorf("%w: %q at position %d of %d",
				ErrInvalidFetcher, fetcher, i+1, len(p.Fetchers))
		}
	}
	return httpEnabled, dnsEnabled, nil
}

func (p PubIP) httpProviders(version ipversion.IPVersion) (
	providers []http.Provider, err error) {
	providers = make([]http.Provider, 0, len(p.HTTPProviders))
	for _, field := range p.HTTPProviders {
		if strings.Contains(field, "://") {
			u, err := url.Parse(field)
			if err != nil {
				return nil, fmt.Errorf("parsing custom URL: %w", err)
			} else if u.Scheme != "https" {
				return nil, fmt.Errorf("%w: %s", ErrHTTPURLNotSecure, field)
			}
			providers = append(providers, http.CustomProvider(u))
			continue
		}

		provider := http.Provider(field)
		err = http.ValidateProvider(provider)
		if err != nil {
			return nil, err
		} else if !provider.SupportsVersion(version) {
			return nil, fmt.Errorf("%w: %q for version %s",
				http.ErrProviderIPVersion, provider, version)
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, ErrNoHTTPProvider
	}
	return providers, nil
}

func (p PubIP) dnsProviders() (providers []dns.Provider, err error) {
	providers = make([]dns.Provider, len(p.DNSProviders))
	for i, field := range p.DNSProviders {
		providers[i] = dns.Provider(field)
		err = dns.ValidateProvider(providers[i])
		if err != nil {
			return nil, err
		}
	}

	if len(providers) == 0 {
		return nil, ErrNoDNSProvider
	}
	return providers, nil
}

// ToHTTPSettings converts the validated settings to settings
// for the public IP HTTP fetcher, using the client given.
func (p PubIP) ToHTTPSettings(client *stdhttp.Client) publicip.HTTPSettings {
	httpEnabled, _, _ := p.enabledFetchers()
	version, _ := ipversion.Parse(*p.Version)
	providers, err := p.httpProviders(version)
	if err != nil {
		panic(fmt.Sprintf("settings should be validated: %s", err))
	}

	return publicip.HTTPSettings{
		Enabled: httpEnabled,
		Client:  client,
		Options: []http.Option{
			http.SetProviders(providers[0], providers[1:]...),
			http.SetVersion(version),
			http.SetTimeout(p.Timeout),
		},
	}
}

// ToDNSSettings converts the validated settings to settings
// for the public IP DNS over TLS fetcher.
func (p PubIP) ToDNSSettings() publicip.DNSSettings {
	_, dnsEnabled, _ := p.enabledFetchers()
	version, _ := ipversion.Parse(*p.Version)
	providers, err := p.dnsProviders()
	if err != nil {
		panic(fmt.Sprintf("settings should be validated: %s", err))
	}

	return publicip.DNSSettings{
		Enabled: dnsEnabled,
		Options: []dns.Option{
			dns.SetProviders(providers[0], providers[1:]...),
			dns.SetVersion(version),
			dns.SetTimeout(p.Timeout),
		},
	}
}

func (p PubIP) String() string {
	return p.toLinesNode().String()
}

func (p PubIP) toLinesNode() *gotree.Node {
	node := gotree.New("Public IP fetching")
	node.Appendf("Fetchers: %s", strings.Join(p.Fetchers, ", "))
	node.Appendf("IP version: %s", *p.Version)
	node.Appendf("Timeout: %s", p.Timeout)

	httpNode := node.Appendf("HTTP providers")
	for _, provider := range p.HTTPProviders {
		httpNode.Appendf(provider)
	}

	dnsNode := node.Appendf("DNS over TLS providers")
	for _, provider := range p.DNSProviders {
		dnsNode.Appendf(provider)
	}

	return node
}

func (p *PubIP) read(r *reader.Reader, warner Warner) (err error) {
	p.Fetchers = r.CSV("PUBLICIP_FETCHERS")
	p.HTTPProviders = r.CSV("PUBLICIP_HTTP_PROVIDERS", reader.ForceLowercase(false))
	p.DNSProviders = r.CSV("PUBLICIP_DNS_PROVIDERS")

	// Retro-compatibility: "all" used to select every known provider.
	for _, field := range p.HTTPProviders {
		if field == all {
			handleDeprecatedValue(warner, "PUBLICIP_HTTP_PROVIDERS", all)
			p.HTTPProviders = nil
			break
		}
	}
	for _, field := range p.DNSProviders {
		if field == all {
			handleDeprecatedValue(warner, "PUBLICIP_DNS_PROVIDERS", all)
			p.DNSProviders = nil
			break
		}
	}

	p.Version = r.Get("PUBLICIP_VERSION")

	p.Timeout, err = r.Duration("PUBLICIP_TIMEOUT",
		reader.RetroKeys("PUBLICIP_DNS_TIMEOUT"))
	if err != nil {
		return err
	}

	return nil
}
