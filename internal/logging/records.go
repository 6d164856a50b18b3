package logging

import (
	"fmt"
	"time"
)

type Emittable interface {
	Base() *BaseEvent
}

type BaseEvent struct {
	TSUTC         string `json:"ts_utc"`
	TSUnixMS      int64  `json:"ts_unix_ms"`
	Seq           uint64 `json:"seq"`
	Type          string `json:"type"`
	Target        string `json:"target"`
	RunID         string `json:"run_id"`
	SchemaVersion int    `json:"schema_version"`
	ToolName      string `json:"tool_name"`
	ToolVersion   string `json:"tool_version"`
	HostID        string `json:"host_id"`
}

func (b *BaseEvent) Base() *BaseEvent {
	return b
}

// NewRunID names one invocation so its records can be grouped.
func NewRunID(target string, ts time.Time) string {
	return fmt.Sprintf("%s-%d", target, ts.UnixNano())
}

type ResolveRecord struct {
	BaseEvent
	Host     string   `json:"host"`
	Resolved bool     `json:"resolved"`
	IP       string   `json:"ip,omitempty"`
	Addrs    []string `json:"addrs,omitempty"`
	Err      string   `json:"err,omitempty"`
}

type ResolverRecord struct {
	BaseEvent
	Resolver string   `json:"resolver"`
	Addrs    []string `json:"addrs,omitempty"`
	Rcode    string   `json:"rcode,omitempty"`
	Err      string   `json:"err,omitempty"`
}

type CertRecord struct {
	BaseEvent
	Valid    bool   `json:"valid"`
	Issuer   string `json:"issuer,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Expiry   string `json:"expiry,omitempty"`
	DaysLeft int    `json:"days_left,omitempty"`
	Err      string `json:"err,omitempty"`
}

type HTTPRecord struct {
	BaseEvent
	Step       string            `json:"step"`
	URL        string            `json:"url"`
	Success    bool              `json:"success"`
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	BodyChars  int               `json:"body_chars"`
	Err        string            `json:"err,omitempty"`
}

type TracerouteResult struct {
	BaseEvent
	Hops     []TracerouteHop `json:"hops"`
	PathHash string          `json:"path_hash"`
	Err      string          `json:"err,omitempty"`
}

type TracerouteHop struct {
	TTL   int      `json:"ttl"`
	IP    string   `json:"ip"`
	RttMs *float64 `json:"rtt_ms"`
}

type RecommendationRecord struct {
	BaseEvent
	Recommendation string `json:"recommendation"`
}
