package update

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/qdm12/allowlist-updater/internal/models"
)

// Summary is the outcome of one reconciliation cycle.
type Summary struct {
	Changed bool
	// OldIP is the zero address if no IP address was cached.
	OldIP   netip.Addr
	NewIP   netip.Addr
	Results []models.Result
}

// Failed returns the results of targets which failed or were skipped.
func (s Summary) Failed() (failed []models.Result) {
	for _, result := range s.Results {
		if result.Status.Failed() {
			failed = append(failed, result)
		}
	}
	return failed
}

func (s Summary) String() string {
	if !s.Changed {
		return fmt.Sprintf("Public IP address has not changed (%s)", s.NewIP)
	}

	lines := make([]string, 0, 1+len(s.Results))
	lines = append(lines, fmt.Sprintf("Public IP address changed from %s to %s",
		ipString(s.OldIP), s.NewIP))
	for _, result := range s.Results {
		lines = append(lines, "- "+result.String())
	}
	return strings.Join(lines, "\n")
}

func ipString(ip netip.Addr) string {
	if !ip.IsValid() {
		return "none"
	}
	return ip.String()
}
