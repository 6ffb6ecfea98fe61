package ipversion

import (
	"errors"
	"fmt"
	"strings"
)

type IPVersion uint8

const (
	IP4or6 IPVersion = iota
	IP4
	IP6
)

func (v IPVersion) String() string {
	switch v {
	case IP4or6:
		return "ip4or6"
	case IP4:
		return "ip4"
	case IP6:
		return "ip6"
	default:
		return "ip?"
	}
}

var ErrInvalidIPVersion = errors.New("invalid IP version")

// Parse returns the IP version from strings such as
// "ipv4", "ipv6" or "ipv4 or ipv6".
func Parse(s string) (version IPVersion, err error) {
	switch strings.ToLower(s) {
	case "ipv4", "ip4":
		return IP4, nil
	case "ipv6", "ip6":
		return IP6, nil
	case "ipv4 or ipv6", "ip4or6":
		return IP4or6, nil
	default:
		return 0, fmt.Errorf("%w: %q can only be one of %q, %q or %q",
			ErrInvalidIPVersion, s, "ipv4", "ipv6", "ipv4 or ipv6")
	}
}
