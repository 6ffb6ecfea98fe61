package publicip

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"testing"

	iphttp "github.com/qdm12/allowlist-updater/pkg/publicip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFetcher struct {
	name  string
	ip    netip.Addr
	err   error
	calls *int
}

func (f *testFetcher) String() string { return f.name }

func (f *testFetcher) IP(_ context.Context) (netip.Addr, error) {
	*f.calls++
	return f.ip, f.err
}

func Test_NewFetcher(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		httpSettings HTTPSettings
		dnsSettings  DNSSettings
		fetcherNames []string
		errWrapped   error
		errMessage   string
	}{
		"no fetcher": {
			errWrapped: ErrNoFetchTypeSpecified,
			errMessage: "at least one fetcher type must be specified",
		},
		"http and dns": {
			httpSettings: HTTPSettings{Enabled: true, Client: &http.Client{}},
			dnsSettings:  DNSSettings{Enabled: true},
			fetcherNames: []string{"HTTP", "DNS"},
		},
		"dns only": {
			dnsSettings:  DNSSettings{Enabled: true},
			fetcherNames: []string{"DNS"},
		},
		"invalid http provider": {
			httpSettings: HTTPSettings{
				Enabled: true,
				Client:  &http.Client{},
				Options: []iphttp.Option{iphttp.SetProviders("invalid")},
			},
			errWrapped: iphttp.ErrUnknownProvider,
			errMessage: "creating HTTP fetcher: unknown public IP echo HTTP provider: invalid",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := NewFetcher(testCase.httpSettings, testCase.dnsSettings)

			if testCase.errWrapped != nil {
				assert.ErrorIs(t, err, testCase.errWrapped)
				assert.EqualError(t, err, testCase.errMessage)
				return
			}
			require.NoError(t, err)
			names := make([]string, len(fetcher.fetchers))
			for i, subFetcher := range fetcher.fetchers {
				names[i] = subFetcher.String()
			}
			assert.Equal(t, testCase.fetcherNames, names)
		})
	}
}

func Test_Fetcher_IP(t *testing.T) {
	t.Parallel()

	t.Run("first fetcher succeeds", func(t *testing.T) {
		t.Parallel()
		httpCalls, dnsCalls := 0, 0
		fetcher := &Fetcher{
			fetchers: []ipFetcher{
				&testFetcher{name: "HTTP", ip: netip.MustParseAddr("203.0.113.7"), calls: &httpCalls},
				&testFetcher{name: "DNS", calls: &dnsCalls},
			},
		}

		ip, err := fetcher.IP(context.Background())

		require.NoError(t, err)
		assert.Equal(t, netip.MustParseAddr("203.0.113.7"), ip)
		assert.Equal(t, 1, httpCalls)
		assert.Equal(t, 0, dnsCalls)
	})

	t.Run("fall through to next fetcher", func(t *testing.T) {
		t.Parallel()
		httpCalls, dnsCalls := 0, 0
		fetcher := &Fetcher{
			fetchers: []ipFetcher{
				&testFetcher{name: "HTTP", err: errors.New("timeout"), calls: &httpCalls},
				&testFetcher{name: "DNS", ip: netip.MustParseAddr("203.0.113.7"), calls: &dnsCalls},
			},
		}

		ip, err := fetcher.IP(context.Background())

		require.NoError(t, err)
		assert.Equal(t, netip.MustParseAddr("203.0.113.7"), ip)
		assert.Equal(t, 1, httpCalls)
		assert.Equal(t, 1, dnsCalls)
	})

	t.Run("all fetchers fail", func(t *testing.T) {
		t.Parallel()
		httpCalls, dnsCalls := 0, 0
		fetcher := &Fetcher{
			fetchers: []ipFetcher{
				&testFetcher{name: "HTTP", err: errors.New("timeout"), calls: &httpCalls},
				&testFetcher{name: "DNS", err: errors.New("refused"), calls: &dnsCalls},
			},
		}

		ip, err := fetcher.IP(context.Background())

		assert.ErrorIs(t, err, ErrAllFetchersFailed)
		assert.EqualError(t, err, "all public IP fetchers failed: HTTP: timeout\nDNS: refused")
		assert.False(t, ip.IsValid())
	})
}
