package report

import (
	"context"
	"errors"
	"time"

	"github.com/iaserrat/domaincheck/internal/config"
	"github.com/iaserrat/domaincheck/internal/logging"
	"github.com/iaserrat/domaincheck/internal/probe"
	"github.com/iaserrat/domaincheck/internal/traceroute"
)

// Prober performs the individual network checks. NetProber is the real one.
type Prober interface {
	Resolve(ctx context.Context, host string) probe.ResolveResult
	QueryResolvers(ctx context.Context, host string) []probe.ResolverAnswer
	Certificate(ctx context.Context, host string) probe.CertResult
	Fetch(ctx context.Context, url string, timeout time.Duration) probe.HTTPResult
	Traceroute(ctx context.Context, host string) traceroute.Result
}

// Plan is the part of the configuration that decides what gets checked.
type Plan struct {
	Domain          string
	Marker          string
	Endpoints       []string
	RootTimeout     time.Duration
	EndpointTimeout time.Duration
	SkipTLSVerify   bool
	CrossCheck      bool
	Traceroute      bool
}

func PlanFromConfig(cfg config.Config) Plan {
	return Plan{
		Domain:          cfg.Domain,
		Marker:          cfg.Marker,
		Endpoints:       cfg.Endpoints,
		RootTimeout:     time.Duration(cfg.HTTP.TimeoutMS) * time.Millisecond,
		EndpointTimeout: time.Duration(cfg.HTTP.EndpointTimeoutMS) * time.Millisecond,
		SkipTLSVerify:   cfg.HTTP.SkipTLSVerify,
		CrossCheck:      len(cfg.DNS.Resolvers) > 0,
		Traceroute:      cfg.Traceroute.Enabled,
	}
}

type Runner struct {
	plan   Plan
	prober Prober
	logger *logging.Logger
	runID  string
	errs   []error
}

func NewRunner(plan Plan, prober Prober, logger *logging.Logger) *Runner {
	return &Runner{plan: plan, prober: prober, logger: logger}
}

// Run performs every check in order and always returns a complete Report.
// The error only reports records that could not be written to the log.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	p := r.plan
	r.runID = logging.NewRunID(p.Domain, time.Now())
	r.errs = nil

	rep := Report{
		Domain:        p.Domain,
		SkipTLSVerify: p.SkipTLSVerify,
	}

	rep.Apex = r.prober.Resolve(ctx, p.Domain)
	r.emitResolve(rep.Apex)

	rep.WWW = r.prober.Resolve(ctx, WWWHost(p.Domain))
	r.emitResolve(rep.WWW)

	if p.CrossCheck {
		rep.Resolvers = r.prober.QueryResolvers(ctx, p.Domain)
		for _, a := range rep.Resolvers {
			r.emit(&logging.ResolverRecord{
				BaseEvent: r.base("resolver_answer"),
				Resolver:  a.Resolver,
				Addrs:     a.Addrs,
				Rcode:     a.Rcode,
				Err:       a.Err,
			})
		}
	}

	rep.Cert = r.prober.Certificate(ctx, p.Domain)
	r.emitCert(rep.Cert)

	rep.HTTPS = r.prober.Fetch(ctx, RootURL("https", p.Domain), p.RootTimeout)
	r.emitHTTP("root_https", rep.HTTPS)

	if rep.HTTPS.Success {
		page := probe.InspectPage(rep.HTTPS.Body, p.Marker)
		rep.Page = &page
	} else {
		fallback := r.prober.Fetch(ctx, RootURL("http", p.Domain), p.RootTimeout)
		rep.Fallback = &fallback
		r.emitHTTP("root_http_fallback", fallback)

		if p.Traceroute && rep.Apex.Resolved && !fallback.Success {
			trace := r.prober.Traceroute(ctx, p.Domain)
			rep.Trace = &trace
			r.emitTrace(trace)
		}
	}

	for _, path := range p.Endpoints {
		res := r.prober.Fetch(ctx, EndpointURL(p.Domain, path), p.EndpointTimeout)
		rep.Endpoints = append(rep.Endpoints, EndpointResult{Path: path, HTTPResult: res})
		r.emitHTTP("endpoint", res)
	}

	rep.Recommendation = Decide(rep)
	r.emit(&logging.RecommendationRecord{
		BaseEvent:      r.base("recommendation"),
		Recommendation: rep.Recommendation.String(),
	})

	return rep, errors.Join(r.errs...)
}

// Decide picks the closing advice. DNS failure wins over everything else;
// only the HTTPS root check matters after that.
func Decide(rep Report) Recommendation {
	switch {
	case !rep.Apex.Resolved:
		return RecommendDNS
	case !rep.HTTPS.Success:
		return RecommendDeployment
	default:
		return RecommendWorking
	}
}

func (r *Runner) base(recordType string) logging.BaseEvent {
	return logging.BaseEvent{Type: recordType, Target: r.plan.Domain, RunID: r.runID}
}

func (r *Runner) emit(record logging.Emittable) {
	if r.logger == nil {
		return
	}
	if err := r.logger.Emit(record); err != nil {
		r.errs = append(r.errs, err)
	}
}

func (r *Runner) emitResolve(res probe.ResolveResult) {
	r.emit(&logging.ResolveRecord{
		BaseEvent: r.base("resolve"),
		Host:      res.Host,
		Resolved:  res.Resolved,
		IP:        res.IP,
		Addrs:     res.Addrs,
		Err:       res.Err,
	})
}

func (r *Runner) emitCert(res probe.CertResult) {
	rec := &logging.CertRecord{
		BaseEvent: r.base("certificate"),
		Valid:     res.Valid,
		Expiry:    res.Expiry,
		DaysLeft:  res.DaysLeft,
		Err:       res.Err,
	}
	if res.Valid {
		rec.Issuer = res.Issuer.String()
		rec.Subject = res.Subject.String()
	}
	r.emit(rec)
}

func (r *Runner) emitHTTP(step string, res probe.HTTPResult) {
	r.emit(&logging.HTTPRecord{
		BaseEvent:  r.base("http"),
		Step:       step,
		URL:        res.URL,
		Success:    res.Success,
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		BodyChars:  len([]rune(res.Body)),
		Err:        res.Err,
	})
}

func (r *Runner) emitTrace(res traceroute.Result) {
	hops := make([]logging.TracerouteHop, 0, len(res.Hops))
	for _, h := range res.Hops {
		var rtt *float64
		if h.Responded() {
			val := h.RttMs
			rtt = &val
		}
		hops = append(hops, logging.TracerouteHop{TTL: h.TTL, IP: h.IP, RttMs: rtt})
	}

	r.emit(&logging.TracerouteResult{
		BaseEvent: r.base("traceroute_result"),
		Hops:      hops,
		PathHash:  res.PathHash,
		Err:       res.Err,
	})
}

func WWWHost(domain string) string {
	return "www." + domain
}

func RootURL(scheme string, domain string) string {
	return scheme + "://" + domain + "/"
}

func EndpointURL(domain string, path string) string {
	return "https://" + domain + path
}
