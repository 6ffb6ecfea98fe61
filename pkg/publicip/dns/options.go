package dns

import (
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

type settings struct {
	providers []Provider
	version   ipversion.IPVersion
	timeout   time.Duration
}

func newDefaultSettings() settings {
	const defaultTimeout = 3 * time.Second
	return settings{
		providers: ListProviders(),
		version:   ipversion.IP4,
		timeout:   defaultTimeout,
	}
}

type Option func(s *settings) error

// SetProviders sets the providers to try, in the order given.
func SetProviders(first Provider, providers ...Provider) Option {
	providers = append([]Provider{first}, providers...)
	return func(s *settings) (err error) {
		for _, provider := range providers {
			err = ValidateProvider(provider)
			if err != nil {
				return err
			}
		}
		s.providers = providers
		return nil
	}
}

func SetVersion(version ipversion.IPVersion) Option {
	return func(s *settings) (err error) {
		s.version = version
		return nil
	}
}

func SetTimeout(timeout time.Duration) Option {
	return func(s *settings) (err error) {
		s.timeout = timeout
		return nil
	}
}
