package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	t.Parallel()

	client := &http.Client{Timeout: time.Second}

	testCases := map[string]struct {
		options []Option
		fetcher *Fetcher
		err     error
	}{
		"no options": {
			fetcher: &Fetcher{
				client:  client,
				timeout: 5 * time.Second,
				version: ipversion.IP4,
				urls: []string{
					"https://api.ipify.org",
					"https://ifconfig.me/ip",
					"https://ipv4.icanhazip.com",
				},
			},
		},
		"with options": {
			options: []Option{
				SetProviders(Seeip, Ipify, Provider("url:https://ip.example.com")),
				SetVersion(ipversion.IP6),
				SetTimeout(time.Second),
			},
			fetcher: &Fetcher{
				client:  client,
				timeout: time.Second,
				version: ipversion.IP6,
				urls: []string{
					"https://ipv6.seeip.org",
					"https://api6.ipify.org",
					"https://ip.example.com",
				},
			},
		},
		"unknown provider": {
			options: []Option{
				SetProviders(Provider("invalid")),
			},
			err: errors.New("unknown public IP echo HTTP provider: invalid"),
		},
		"provider without IPv6 support": {
			options: []Option{
				SetProviders(Ifconfig),
				SetVersion(ipversion.IP6),
			},
			err: errors.New(`provider does not support IP version: "ifconfig" for version ip6`),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := New(client, testCase.options...)

			if testCase.err != nil {
				require.Error(t, err)
				assert.Equal(t, testCase.err.Error(), err.Error())
				assert.Nil(t, fetcher)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.fetcher, fetcher)
		})
	}
}
