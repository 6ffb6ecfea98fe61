package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/netip"
	"testing"
	"time"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Fetcher_IP(t *testing.T) {
	t.Parallel()

	type response struct {
		status  int
		content string
		err     error
	}

	testCases := map[string]struct {
		urls         []string
		responses    map[string]response
		expectedURLs []string
		publicIP     netip.Addr
		err          error
	}{
		"first provider succeeds": {
			urls: []string{"https://a", "https://b"},
			responses: map[string]response{
				"https://a": {status: http.StatusOK, content: "198.51.100.1"},
			},
			expectedURLs: []string{"https://a"},
			publicIP:     netip.MustParseAddr("198.51.100.1"),
		},
		"first provider fails": {
			urls: []string{"https://a", "https://b"},
			responses: map[string]response{
				"https://a": {err: errors.New("connection refused")},
				"https://b": {status: http.StatusOK, content: "203.0.113.7"},
			},
			expectedURLs: []string{"https://a", "https://b"},
			publicIP:     netip.MustParseAddr("203.0.113.7"),
		},
		"first provider bad status": {
			urls: []string{"https://a", "https://b"},
			responses: map[string]response{
				"https://a": {status: http.StatusTooManyRequests},
				"https://b": {status: http.StatusOK, content: "203.0.113.7\n"},
			},
			expectedURLs: []string{"https://a", "https://b"},
			publicIP:     netip.MustParseAddr("203.0.113.7"),
		},
		"all providers fail": {
			urls: []string{"https://a", "https://b"},
			responses: map[string]response{
				"https://a": {err: errors.New("connection refused")},
				"https://b": {status: http.StatusBadGateway},
			},
			expectedURLs: []string{"https://a", "https://b"},
			err: errors.New("all HTTP providers failed: " +
				"Get \"https://a\": connection refused\n" +
				"bad HTTP status: 502 Bad Gateway from \"https://b\""),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var requestedURLs []string
			client := &http.Client{
				Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
					url := r.URL.String()
					requestedURLs = append(requestedURLs, url)
					response, ok := testCase.responses[url]
					require.True(t, ok, "unexpected request to %s", url)
					if response.err != nil {
						return nil, response.err
					}
					return &http.Response{
						StatusCode: response.status,
						Body:       io.NopCloser(bytes.NewBufferString(response.content)),
					}, nil
				}),
			}

			fetcher := &Fetcher{
				client:  client,
				timeout: time.Hour,
				version: ipversion.IP4,
				urls:    testCase.urls,
			}

			publicIP, err := fetcher.IP(context.Background())

			if testCase.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrAllProvidersFailed)
				assert.Equal(t, testCase.err.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.publicIP, publicIP)
			assert.Equal(t, testCase.expectedURLs, requestedURLs)
		})
	}
}

func Test_Fetcher_IP_canceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requestsCount := 0
	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			requestsCount++
			return nil, r.Context().Err()
		}),
	}

	fetcher := &Fetcher{
		client:  client,
		timeout: time.Hour,
		urls:    []string{"https://a", "https://b"},
	}

	_, err := fetcher.IP(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, requestsCount)
}
