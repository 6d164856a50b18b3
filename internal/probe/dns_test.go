package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func startDNSServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestQueryResolvers(t *testing.T) {
	known := startDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		q := r.Question[0]
		switch q.Qtype {
		case dns.TypeA:
			rr, _ := dns.NewRR(q.Name + " 60 IN A 192.0.2.10")
			m.Answer = append(m.Answer, rr)
		case dns.TypeAAAA:
			rr, _ := dns.NewRR(q.Name + " 60 IN AAAA 2001:db8::10")
			m.Answer = append(m.Answer, rr)
		}
		_ = w.WriteMsg(m)
	})
	unknown := startDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeNameError)
		_ = w.WriteMsg(m)
	})

	answers := QueryResolvers(context.Background(), "example.com", DNSConfig{
		Timeout:   2 * time.Second,
		Resolvers: []string{known, unknown},
	})

	require.Len(t, answers, 2)

	require.Equal(t, known, answers[0].Resolver)
	require.Equal(t, "NOERROR", answers[0].Rcode)
	require.Equal(t, []string{"192.0.2.10", "2001:db8::10"}, answers[0].Addrs)
	require.Empty(t, answers[0].Err)

	require.Equal(t, unknown, answers[1].Resolver)
	require.Equal(t, "NXDOMAIN", answers[1].Rcode)
	require.Empty(t, answers[1].Addrs)
}

func TestQueryResolversCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answers := QueryResolvers(ctx, "example.com", DNSConfig{
		Timeout:   time.Second,
		Resolvers: []string{"127.0.0.1:1"},
	})

	require.Len(t, answers, 1)
	require.NotEmpty(t, answers[0].Err)
}
