package publicip

import (
	"net/http"

	"github.com/qdm12/allowlist-updater/pkg/publicip/dns"
	iphttp "github.com/qdm12/allowlist-updater/pkg/publicip/http"
)

type settings struct {
	// If both http and dns are enabled, http is tried first.
	http HTTPSettings
	dns  DNSSettings
}

type DNSSettings struct {
	Enabled bool
	Options []dns.Option
}

type HTTPSettings struct {
	Enabled bool
	Client  *http.Client
	Options []iphttp.Option
}
