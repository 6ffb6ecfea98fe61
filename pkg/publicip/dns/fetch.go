package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

var (
	ErrAnswerNotReceived     = errors.New("response answer not received")
	ErrAnswerTypeNotExpected = errors.New("answer type is not expected")
	ErrRecordEmpty           = errors.New("record is empty")
	ErrTooManyTXTRecords     = errors.New("too many TXT records")
	ErrIPMalformed           = errors.New("IP address malformed")
)

func fetch(ctx context.Context, client Client, network string,
	providerData providerData) (publicIPs []netip.Addr, err error) {
	var serverHost string
	switch network {
	case "tcp4":
		serverHost = providerData.IPv4.String()
	case "tcp6":
		serverHost = providerData.IPv6.String()
	default:
		serverHost = providerData.Address
	}
	const dotPort = "853"
	serverAddress := net.JoinHostPort(serverHost, dotPort)

	message := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			Opcode: dns.OpcodeQuery,
		},
		Question: []dns.Question{
			{
				Name:   providerData.fqdn,
				Qtype:  uint16(providerData.qType),
				Qclass: uint16(providerData.class),
			},
		},
	}

	response, _, err := client.ExchangeContext(ctx, message, serverAddress)
	if err != nil {
		return nil, err
	}

	if len(response.Answer) == 0 {
		return nil, ErrAnswerNotReceived
	}

	switch providerData.qType {
	case dns.Type(dns.TypeTXT):
		publicIP, err := handleTXTAnswer(response.Answer)
		if err != nil {
			return nil, fmt.Errorf("handling TXT answer: %w", err)
		}
		return []netip.Addr{publicIP}, nil
	default:
		publicIPs, err = handleAddressAnswers(response.Answer)
		if err != nil {
			return nil, fmt.Errorf("handling address answers: %w", err)
		}
		return publicIPs, nil
	}
}

func handleTXTAnswer(answers []dns.RR) (publicIP netip.Addr, err error) {
	answer := answers[0]
	txt, ok := answer.(*dns.TXT)
	if !ok {
		return netip.Addr{}, fmt.Errorf("%w: %T instead of *dns.TXT",
			ErrAnswerTypeNotExpected, answer)
	}

	switch len(txt.Txt) {
	case 0:
		return netip.Addr{}, ErrRecordEmpty
	case 1:
	default:
		return netip.Addr{}, fmt.Errorf("%w: %d instead of 1",
			ErrTooManyTXTRecords, len(txt.Txt))
	}

	publicIP, err = netip.ParseAddr(txt.Txt[0])
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrIPMalformed, err)
	}

	return publicIP.Unmap(), nil
}

func handleAddressAnswers(answers []dns.RR) (publicIPs []netip.Addr, err error) {
	publicIPs = make([]netip.Addr, 0, len(answers))
	for _, answer := range answers {
		var ip net.IP
		switch record := answer.(type) {
		case *dns.A:
			ip = record.A
		case *dns.AAAA:
			ip = record.AAAA
		default:
			return nil, fmt.Errorf("%w: %T instead of *dns.A or *dns.AAAA",
				ErrAnswerTypeNotExpected, answer)
		}

		publicIP, ok := netip.AddrFromSlice(ip)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrIPMalformed, ip)
		}
		publicIPs = append(publicIPs, publicIP.Unmap())
	}
	return publicIPs, nil
}
