package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"

	"github.com/qdm12/allowlist-updater/pkg/publicip/ipversion"
)

var (
	ErrBadHTTPStatus     = errors.New("bad HTTP status")
	ErrNoIPFound         = errors.New("no IP address found")
	ErrIPMalformed       = errors.New("IP address malformed")
	ErrIPVersionMismatch = errors.New("IP address version mismatch")
)

func fetch(ctx context.Context, client *http.Client, url string,
	version ipversion.IPVersion) (publicIP netip.Addr, err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return netip.Addr{}, err
	}

	response, err := client.Do(request)
	if err != nil {
		return netip.Addr{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return netip.Addr{}, fmt.Errorf("%w: %d %s from %q",
			ErrBadHTTPStatus, response.StatusCode,
			http.StatusText(response.StatusCode), url)
	}

	const maxBodySize = 1024
	b, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("reading body from %q: %w", url, err)
	}

	err = response.Body.Close()
	if err != nil {
		return netip.Addr{}, fmt.Errorf("closing body from %q: %w", url, err)
	}

	s := strings.TrimSpace(string(b))
	if s == "" {
		return netip.Addr{}, fmt.Errorf("%w: from %q", ErrNoIPFound, url)
	}

	publicIP, err = netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrIPMalformed, err)
	}
	publicIP = publicIP.Unmap()

	switch {
	case version == ipversion.IP4 && !publicIP.Is4(),
		version == ipversion.IP6 && !publicIP.Is6():
		return netip.Addr{}, fmt.Errorf("%w: %s is not an %s address from %q",
			ErrIPVersionMismatch, publicIP, version, url)
	}

	return publicIP, nil
}
