package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strconv"
	"time"
)

// ExpiryLayout renders a certificate's NotAfter the way OpenSSL prints it.
const ExpiryLayout = "Jan _2 15:04:05 2006 GMT"

type CertConfig struct {
	Timeout time.Duration
	Port    int
	// RootCAs replaces the system pool when non-nil.
	RootCAs *x509.CertPool
}

// Certificate dials host over TLS with full platform verification and
// reports the leaf certificate. Any failure, whether connect, handshake or
// verification, is reported the same way.
func Certificate(ctx context.Context, host string, cfg CertConfig) CertResult {
	port := cfg.Port
	if port == 0 {
		port = 443
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: cfg.Timeout},
		Config: &tls.Config{
			ServerName: host,
			RootCAs:    cfg.RootCAs,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return CertResult{Host: host, Err: err.Error()}
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return CertResult{Host: host, Err: "no certificates presented"}
	}

	leaf := state.PeerCertificates[0]
	return CertResult{
		Host:     host,
		Valid:    true,
		Issuer:   leaf.Issuer,
		Subject:  leaf.Subject,
		NotAfter: leaf.NotAfter,
		Expiry:   leaf.NotAfter.UTC().Format(ExpiryLayout),
		DaysLeft: int(time.Until(leaf.NotAfter).Hours() / 24),
		Version:  tls.VersionName(state.Version),
	}
}
