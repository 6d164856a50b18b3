package probe

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

type DNSConfig struct {
	Timeout   time.Duration
	Resolvers []string
}

// QueryResolvers asks each resolver in turn for the A and AAAA records of
// host, bypassing the local stub and its cache.
func QueryResolvers(ctx context.Context, host string, cfg DNSConfig) []ResolverAnswer {
	client := &dns.Client{Timeout: cfg.Timeout}
	answers := make([]ResolverAnswer, 0, len(cfg.Resolvers))

	for _, resolver := range cfg.Resolvers {
		if ctx.Err() != nil {
			answers = append(answers, ResolverAnswer{Resolver: resolver, Err: ctx.Err().Error()})
			continue
		}
		answers = append(answers, queryResolver(ctx, client, resolver, host))
	}

	return answers
}

func queryResolver(ctx context.Context, client *dns.Client, resolver string, host string) ResolverAnswer {
	ans := ResolverAnswer{Resolver: resolver}

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qtype)

		in, _, err := client.ExchangeContext(ctx, msg, resolver)
		if err != nil {
			return ResolverAnswer{Resolver: resolver, Err: err.Error()}
		}

		ans.Rcode = dns.RcodeToString[in.Rcode]
		if in.Rcode != dns.RcodeSuccess {
			break
		}

		for _, rr := range in.Answer {
			switch t := rr.(type) {
			case *dns.A:
				ans.Addrs = append(ans.Addrs, t.A.String())
			case *dns.AAAA:
				ans.Addrs = append(ans.Addrs, t.AAAA.String())
			}
		}
	}

	return ans
}
