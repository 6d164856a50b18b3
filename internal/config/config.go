package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/net/idna"
)

const (
	DefaultDomain = "7daymoneyflow.com"
	DefaultMarker = "Money Flow Reset"
)

type Config struct {
	Domain     string           `toml:"domain"`
	Marker     string           `toml:"marker"`
	Endpoints  []string         `toml:"endpoints"`
	DNS        DNSConfig        `toml:"dns"`
	TLS        TLSConfig        `toml:"tls"`
	HTTP       HTTPConfig       `toml:"http"`
	Traceroute TracerouteConfig `toml:"traceroute"`
	Logging    LoggingConfig    `toml:"logging"`
}

type DNSConfig struct {
	TimeoutMS int      `toml:"timeout_ms"`
	Resolvers []string `toml:"resolvers"`
}

type TLSConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
	Port      int `toml:"port"`
}

type HTTPConfig struct {
	TimeoutMS         int  `toml:"timeout_ms"`
	EndpointTimeoutMS int  `toml:"endpoint_timeout_ms"`
	SkipTLSVerify     bool `toml:"skip_tls_verify"`
}

type TracerouteConfig struct {
	Enabled   bool `toml:"enabled"`
	MaxHops   int  `toml:"max_hops"`
	TimeoutMS int  `toml:"timeout_ms"`
}

// LoggingConfig controls the JSONL record log. An empty Dir disables it.
type LoggingConfig struct {
	Dir      string `toml:"dir"`
	MaxMB    int    `toml:"max_mb"`
	MaxFiles int    `toml:"max_files"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Domain:    DefaultDomain,
		Marker:    DefaultMarker,
		Endpoints: []string{"/health", "/api", "/ready"},
		DNS: DNSConfig{
			TimeoutMS: 5000,
		},
		TLS: TLSConfig{
			TimeoutMS: 10000,
			Port:      443,
		},
		HTTP: HTTPConfig{
			TimeoutMS:         10000,
			EndpointTimeoutMS: 5000,
			SkipTLSVerify:     true,
		},
		Traceroute: TracerouteConfig{
			MaxHops:   20,
			TimeoutMS: 2000,
		},
		Logging: LoggingConfig{
			MaxMB:    10,
			MaxFiles: 3,
		},
	}
}

// Load reads path (when non-empty) over the defaults. A non-empty domain
// overrides whatever the file says.
func Load(path string, domain string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("config file not found: %w", err)
		}

		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}

	if strings.TrimSpace(domain) != "" {
		cfg.Domain = domain
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string

	domain, err := NormalizeDomain(c.Domain)
	if err != nil {
		errs = append(errs, err.Error())
	} else {
		c.Domain = domain
	}

	if strings.TrimSpace(c.Marker) == "" {
		errs = append(errs, "marker is required")
	}
	for i, ep := range c.Endpoints {
		if !strings.HasPrefix(ep, "/") {
			errs = append(errs, fmt.Sprintf("endpoints[%d] must start with /", i))
		}
	}

	if c.DNS.TimeoutMS <= 0 {
		errs = append(errs, "dns.timeout_ms must be > 0")
	}
	for i, r := range c.DNS.Resolvers {
		if strings.TrimSpace(r) == "" {
			errs = append(errs, fmt.Sprintf("dns.resolvers[%d] is empty", i))
			continue
		}
		if _, _, err := net.SplitHostPort(r); err != nil {
			c.DNS.Resolvers[i] = net.JoinHostPort(r, "53")
		}
	}

	if c.TLS.TimeoutMS <= 0 {
		errs = append(errs, "tls.timeout_ms must be > 0")
	}
	if c.TLS.Port <= 0 || c.TLS.Port > 65535 {
		errs = append(errs, "tls.port must be between 1 and 65535")
	}

	if c.HTTP.TimeoutMS <= 0 {
		errs = append(errs, "http.timeout_ms must be > 0")
	}
	if c.HTTP.EndpointTimeoutMS <= 0 {
		errs = append(errs, "http.endpoint_timeout_ms must be > 0")
	}

	if c.Traceroute.Enabled {
		if c.Traceroute.MaxHops <= 0 {
			errs = append(errs, "traceroute.max_hops must be > 0")
		}
		if c.Traceroute.TimeoutMS <= 0 {
			errs = append(errs, "traceroute.timeout_ms must be > 0")
		}
	}

	if strings.TrimSpace(c.Logging.Dir) != "" {
		if c.Logging.MaxMB <= 0 {
			errs = append(errs, "logging.max_mb must be > 0")
		}
		if c.Logging.MaxFiles <= 0 {
			errs = append(errs, "logging.max_files must be > 0")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// NormalizeDomain lowercases a hostname and converts it to its ASCII
// (punycode) form. A trailing root dot is dropped.
func NormalizeDomain(domain string) (string, error) {
	d := strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if d == "" {
		return "", errors.New("domain is required")
	}

	ascii, err := idna.Lookup.ToASCII(d)
	if err != nil {
		return "", fmt.Errorf("domain %q is not a valid hostname: %w", domain, err)
	}
	for _, label := range strings.Split(ascii, ".") {
		if label == "" {
			return "", fmt.Errorf("domain %q has an empty label", domain)
		}
	}

	return ascii, nil
}
