package noop

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/stretchr/testify/assert"
)

type testWarner struct {
	messages []string
}

func (w *testWarner) Warn(message string) {
	w.messages = append(w.messages, message)
}

func Test_Provider(t *testing.T) {
	t.Parallel()

	errReason := errors.New("no credentials")
	logger := &testWarner{}
	provider := New("gcp firewall", []string{"rule-a", "rule-b"}, errReason, logger)

	assert.Equal(t, "gcp firewall (no-op)", provider.String())

	results := provider.Update(context.Background(), netip.Addr{}, netip.MustParseAddr("203.0.113.7"))

	expected := []models.Result{
		{Provider: "gcp firewall", Target: "rule-a", Status: models.SKIPPED, Err: errReason},
		{Provider: "gcp firewall", Target: "rule-b", Status: models.SKIPPED, Err: errReason},
	}
	assert.Equal(t, expected, results)
	assert.Equal(t, []string{"skipping gcp firewall: no credentials"}, logger.messages)
}
