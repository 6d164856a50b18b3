package report

import (
	"context"
	"time"

	"github.com/iaserrat/domaincheck/internal/config"
	"github.com/iaserrat/domaincheck/internal/probe"
	"github.com/iaserrat/domaincheck/internal/traceroute"
)

// NetProber runs the checks against the network.
type NetProber struct {
	dns           probe.DNSConfig
	cert          probe.CertConfig
	skipTLSVerify bool
	trace         traceroute.Config
}

func NewNetProber(cfg config.Config) *NetProber {
	return &NetProber{
		dns: probe.DNSConfig{
			Timeout:   time.Duration(cfg.DNS.TimeoutMS) * time.Millisecond,
			Resolvers: cfg.DNS.Resolvers,
		},
		cert: probe.CertConfig{
			Timeout: time.Duration(cfg.TLS.TimeoutMS) * time.Millisecond,
			Port:    cfg.TLS.Port,
		},
		skipTLSVerify: cfg.HTTP.SkipTLSVerify,
		trace: traceroute.Config{
			MaxHops: cfg.Traceroute.MaxHops,
			Timeout: time.Duration(cfg.Traceroute.TimeoutMS) * time.Millisecond,
		},
	}
}

func (n *NetProber) Resolve(ctx context.Context, host string) probe.ResolveResult {
	return probe.Resolve(ctx, host)
}

func (n *NetProber) QueryResolvers(ctx context.Context, host string) []probe.ResolverAnswer {
	return probe.QueryResolvers(ctx, host, n.dns)
}

func (n *NetProber) Certificate(ctx context.Context, host string) probe.CertResult {
	return probe.Certificate(ctx, host, n.cert)
}

func (n *NetProber) Fetch(ctx context.Context, url string, timeout time.Duration) probe.HTTPResult {
	return probe.Fetch(ctx, url, probe.HTTPConfig{Timeout: timeout, SkipTLSVerify: n.skipTLSVerify})
}

// Traceroute is bounded by one timeout per hop plus some slack.
func (n *NetProber) Traceroute(ctx context.Context, host string) traceroute.Result {
	limit := time.Duration(n.trace.MaxHops)*n.trace.Timeout + 2*time.Second
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	return traceroute.Run(ctx, host, n.trace)
}
