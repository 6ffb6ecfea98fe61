package update

import (
	"context"
	"net/netip"

	"github.com/qdm12/allowlist-updater/internal/models"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . PublicIPFetcher,Cache,Provider,ShoutrrrClient,Logger

type PublicIPFetcher interface {
	IP(ctx context.Context) (netip.Addr, error)
}

type Cache interface {
	Read() (ip netip.Addr, err error)
	Write(ip netip.Addr) (err error)
}

type Provider interface {
	String() string
	Update(ctx context.Context, oldIP, newIP netip.Addr) (results []models.Result)
}

type ShoutrrrClient interface {
	Notify(message string)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}
