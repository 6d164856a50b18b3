package probe

import (
	"context"
	"fmt"
	"net"
)

// Resolve maps host to its addresses with the platform resolver. It adds no
// deadline of its own; only ctx bounds it.
func Resolve(ctx context.Context, host string) ResolveResult {
	return resolveWith(ctx, net.DefaultResolver, host)
}

func resolveWith(ctx context.Context, r *net.Resolver, host string) ResolveResult {
	addrs, err := r.LookupIPAddr(ctx, host)
	if err != nil {
		return ResolveResult{Host: host, Err: err.Error()}
	}
	if len(addrs) == 0 {
		return ResolveResult{Host: host, Err: fmt.Sprintf("lookup %s: no addresses", host)}
	}

	res := ResolveResult{Host: host, Resolved: true}
	for _, a := range addrs {
		res.Addrs = append(res.Addrs, a.IP.String())
		if res.IP == "" && a.IP.To4() != nil {
			res.IP = a.IP.String()
		}
	}
	if res.IP == "" {
		res.IP = res.Addrs[0]
	}

	return res
}
