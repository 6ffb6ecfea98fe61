package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

type Provider string

const (
	Ipify     Provider = "ipify"
	Ifconfig  Provider = "ifconfig"
	Icanhazip Provider = "icanhazip"
	Ipinfo    Provider = "ipinfo"
	Ident     Provider = "ident"
	Wtfismyip Provider = "wtfismyip"
	Seeip     Provider = "seeip"
)

func ListProviders() []Provider {
	return []Provider{
		Ipify,
		Ifconfig,
		Icanhazip,
		Ipinfo,
		Ident,
		Wtfismyip,
		Seeip,
	}
}

func ListProvidersForVersion(version ipversion.IPVersion) (providers []Provider) {
	allProviders := ListProviders()
	for _, provider := range allProviders {
		if provider.SupportsVersion(version) {
			providers = append(providers, provider)
		}
	}
	return providers
}

var ErrUnknownProvider = errors.New("unknown public IP echo HTTP provider")
var ErrProviderIPVersion = errors.New("provider does not support IP version")

func ValidateProvider(provider Provider) error {
	if strings.HasPrefix(string(provider), "url:https://") { // custom HTTP url
		return nil
	}

	for _, possible := range ListProviders() {
		if provider == possible {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}

func (provider Provider) url(version ipversion.IPVersion) (url string, ok bool) {
	switch version {
	case ipversion.IP4:
		switch provider { //nolint:exhaustive
		case Ipify:
			url = "https://api.ipify.org"
		case Ifconfig:
			url = "https://ifconfig.me/ip"
		case Icanhazip:
			url = "https://ipv4.icanhazip.com"
		case Ident:
			url = "https://v4.ident.me"
		case Wtfismyip:
			url = "https://ipv4.wtfismyip.com/text"
		case Seeip:
			url = "https://ipv4.seeip.org"
		}

	case ipversion.IP6:
		switch provider { //nolint:exhaustive
		case Ipify:
			url = "https://api6.ipify.org"
		case Icanhazip:
			url = "https://ipv6.icanhazip.com"
		case Ident:
			url = "https://v6.ident.me"
		case Wtfismyip:
			url = "https://ipv6.wtfismyip.com/text"
		case Seeip:
			url = "https://ipv6.seeip.org"
		}

	case ipversion.IP4or6:
		switch provider {
		case Ipify:
			url = "https://api64.ipify.org"
		case Ifconfig:
			url = "https://ifconfig.me/ip"
		case Icanhazip:
			url = "https://icanhazip.com"
		case Ipinfo:
			url = "https://ipinfo.io/ip"
		case Ident:
			url = "https://ident.me"
		case Wtfismyip:
			url = "https://wtfismyip.com/text"
		case Seeip:
			url = "https://api.seeip.org"
		}
	}

	// Custom URL?
	if s := string(provider); strings.HasPrefix(s, "url:") {
		url = strings.TrimPrefix(s, "url:")
	}

	if url == "" {
		return "", false
	}

	return url, true
}

func (provider Provider) SupportsVersion(version ipversion.IPVersion) bool {
	_, ok := provider.url(version)
	return ok
}

// CustomProvider creates a provider with a custom HTTP(s) URL.
// The URL must reply with the IP address as its only content.
func CustomProvider(httpsURL *url.URL) Provider {
	return Provider("url:" + httpsURL.String())
}
