package traceroute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleOutput = `traceroute to example.com (93.184.216.34), 20 hops max, 60 byte packets
 1  192.168.1.1  0.512 ms
 2  *
 3  10.20.0.1  7.104 ms
 4  * 203.0.113.9  12.5 ms
`

func TestParseOutput(t *testing.T) {
	hops := parseOutput(sampleOutput)

	require.Equal(t, []Hop{
		{TTL: 1, IP: "192.168.1.1", RttMs: 0.512},
		{TTL: 2},
		{TTL: 3, IP: "10.20.0.1", RttMs: 7.104},
		{TTL: 4, IP: "203.0.113.9", RttMs: 12.5},
	}, hops)

	require.True(t, hops[0].Responded())
	require.False(t, hops[1].Responded())
}

func TestHashPathStable(t *testing.T) {
	a := parseOutput(sampleOutput)
	b := parseOutput(sampleOutput)

	require.Equal(t, hashPath(a), hashPath(b))
	require.Len(t, hashPath(a), 64)

	b[2].IP = "10.20.0.2"
	require.NotEqual(t, hashPath(a), hashPath(b))
}
