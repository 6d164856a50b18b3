package report

import (
	"net/http"

	"github.com/iaserrat/domaincheck/internal/probe"
	"github.com/iaserrat/domaincheck/internal/traceroute"
)

type Recommendation int

const (
	RecommendWorking Recommendation = iota
	RecommendDNS
	RecommendDeployment
)

func (r Recommendation) String() string {
	switch r {
	case RecommendDNS:
		return "dns"
	case RecommendDeployment:
		return "deployment"
	default:
		return "working"
	}
}

// Report holds everything one run found. Optional sections are nil when
// the step did not run.
type Report struct {
	Domain        string
	SkipTLSVerify bool

	Apex      probe.ResolveResult
	WWW       probe.ResolveResult
	Resolvers []probe.ResolverAnswer
	Cert      probe.CertResult

	HTTPS    probe.HTTPResult
	Page     *probe.PageInfo
	Fallback *probe.HTTPResult
	Trace    *traceroute.Result

	Endpoints      []EndpointResult
	Recommendation Recommendation
}

type EndpointResult struct {
	Path string
	probe.HTTPResult
}

func (e EndpointResult) OK() bool {
	return e.Success && e.StatusCode == http.StatusOK
}
