package probe

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// SnippetChars caps how much of a response body is kept.
const SnippetChars = 500

type HTTPConfig struct {
	Timeout time.Duration
	// SkipTLSVerify accepts any server certificate, so a reachable server
	// with a broken certificate still counts as reachable.
	SkipTLSVerify bool
}

func newHTTPClient(cfg HTTPConfig) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: cfg.Timeout,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		DisableKeepAlives:     true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	return &http.Client{Transport: transport, Timeout: cfg.Timeout}
}

// Fetch issues a single GET against url. Any HTTP status counts as success;
// only transport failures are reported as errors.
func Fetch(ctx context.Context, url string, cfg HTTPConfig) HTTPResult {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HTTPResult{URL: url, Err: err.Error()}
	}
	req.Header.Set("User-Agent", "domaincheck")

	resp, err := newHTTPClient(cfg).Do(req)
	if err != nil {
		return HTTPResult{URL: url, Err: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, SnippetChars*utf8.UTFMax))
	if err != nil {
		return HTTPResult{URL: url, Err: err.Error()}
	}

	return HTTPResult{
		URL:        url,
		Success:    true,
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       snippet(raw, SnippetChars),
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// snippet decodes b as UTF-8 and keeps at most n characters. A rune cut in
// half by the read limit is dropped rather than replaced.
func snippet(b []byte, n int) string {
	var sb strings.Builder
	count := 0
	for len(b) > 0 && count < n {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 && !utf8.FullRune(b) {
			break
		}
		sb.WriteRune(r)
		b = b[size:]
		count++
	}
	return sb.String()
}
