package probe

import (
	"crypto/x509/pkix"
	"time"
)

// Every result carries either its success fields or a non-empty Err, never both.

type ResolveResult struct {
	Host     string   `json:"host"`
	Resolved bool     `json:"resolved"`
	IP       string   `json:"ip,omitempty"`
	Addrs    []string `json:"addrs,omitempty"`
	Err      string   `json:"err,omitempty"`
}

type ResolverAnswer struct {
	Resolver string   `json:"resolver"`
	Addrs    []string `json:"addrs,omitempty"`
	Rcode    string   `json:"rcode,omitempty"`
	Err      string   `json:"err,omitempty"`
}

type CertResult struct {
	Host     string    `json:"host"`
	Valid    bool      `json:"valid"`
	Issuer   pkix.Name `json:"-"`
	Subject  pkix.Name `json:"-"`
	NotAfter time.Time `json:"not_after,omitempty"`
	Expiry   string    `json:"expiry,omitempty"`
	DaysLeft int       `json:"days_left,omitempty"`
	Version  string    `json:"tls_version,omitempty"`
	Err      string    `json:"err,omitempty"`
}

type HTTPResult struct {
	URL        string            `json:"url"`
	Success    bool              `json:"success"`
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body_snippet,omitempty"`
	Err        string            `json:"err,omitempty"`
}
