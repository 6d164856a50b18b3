package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var separator = strings.Repeat("=", 60)

type styles struct {
	ok     lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
	info   lipgloss.Style
	addr   lipgloss.Style
	banner lipgloss.Style
}

// Colour is only emitted when w is a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		info:   r.NewStyle().Foreground(lipgloss.Color("8")),
		addr:   r.NewStyle().Foreground(lipgloss.Color("4")),
		banner: r.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
	}
}

type printer struct {
	sb strings.Builder
	s  styles
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) section(title string) {
	p.sb.WriteByte('\n')
	p.line("%s", p.s.banner.Render(title))
}

// Render writes the human-readable report.
func Render(w io.Writer, rep Report) error {
	p := &printer{s: newStyles(w)}
	s := p.s
	d := rep.Domain

	p.line("🔍 Comprehensive Domain Check: %s", s.addr.Render(d))
	p.line("%s", separator)

	p.section("📡 DNS Resolution:")
	if rep.Apex.Resolved {
		p.line("✅ DNS resolves to: %s", s.addr.Render(rep.Apex.IP))
		if len(rep.Apex.Addrs) > 1 {
			p.line("   All addresses: %s", s.addr.Render(strings.Join(rep.Apex.Addrs, ", ")))
		}
	} else {
		p.line("❌ DNS not resolving: %s", s.fail.Render(rep.Apex.Err))
	}

	p.section("🌐 WWW Subdomain:")
	if rep.WWW.Resolved {
		p.line("✅ %s resolves to: %s", rep.WWW.Host, s.addr.Render(rep.WWW.IP))
	} else {
		p.line("❌ %s not resolving: %s", rep.WWW.Host, s.fail.Render(rep.WWW.Err))
	}

	if len(rep.Resolvers) > 0 {
		p.section("🛰️  Public Resolvers:")
		for _, a := range rep.Resolvers {
			switch {
			case a.Err != "":
				p.line("❌ %s: %s", a.Resolver, s.fail.Render(a.Err))
			case len(a.Addrs) == 0:
				p.line("❌ %s: no records (%s)", a.Resolver, s.fail.Render(a.Rcode))
			default:
				p.line("✅ %s: %s", a.Resolver, s.addr.Render(strings.Join(a.Addrs, ", ")))
			}
		}
	}

	p.section("🔒 SSL Certificate:")
	if rep.Cert.Valid {
		p.line("✅ SSL certificate is valid")
		p.line("   Issuer: %s", rep.Cert.Issuer.String())
		p.line("   Subject: %s", rep.Cert.Subject.String())
		expires := s.ok
		if rep.Cert.DaysLeft < 10 {
			expires = s.warn
		}
		p.line("   Expires: %s", expires.Render(rep.Cert.Expiry))
	} else {
		p.line("❌ SSL certificate issue: %s", s.fail.Render(rep.Cert.Err))
	}

	p.section("🌍 HTTP Response Check:")
	if rep.SkipTLSVerify {
		p.line("%s", s.info.Render("   (certificate verification disabled for HTTP checks)"))
	}
	if rep.HTTPS.Success {
		p.line("✅ HTTPS response: %d", rep.HTTPS.StatusCode)
		renderPage(p, rep)
	} else {
		p.line("❌ HTTPS failed: %s", s.fail.Render(rep.HTTPS.Err))
		if rep.Fallback != nil {
			p.section("🔄 Trying HTTP fallback:")
			if rep.Fallback.Success {
				p.line("✅ HTTP response: %d", rep.Fallback.StatusCode)
			} else {
				p.line("❌ HTTP also failed: %s", s.fail.Render(rep.Fallback.Err))
			}
		}
	}

	if rep.Trace != nil {
		p.section("🧭 Traceroute:")
		for _, h := range rep.Trace.Hops {
			if h.Responded() {
				p.line("   %2d  %s  %.3f ms", h.TTL, s.addr.Render(h.IP), h.RttMs)
			} else {
				p.line("   %2d  %s", h.TTL, s.info.Render("*"))
			}
		}
		if rep.Trace.Err != "" {
			p.line("⚠️  %s", s.warn.Render(rep.Trace.Err))
		}
	}

	p.section("🔧 Endpoint Tests:")
	for _, ep := range rep.Endpoints {
		switch {
		case ep.OK():
			p.line("✅ %s: %s", ep.Path, s.ok.Render("OK"))
		case ep.Success:
			p.line("❌ %s: %s", ep.Path, s.fail.Render(fmt.Sprintf("HTTP %d", ep.StatusCode)))
		default:
			p.line("❌ %s: %s", ep.Path, s.fail.Render(ep.Err))
		}
	}

	p.sb.WriteByte('\n')
	p.line("%s", separator)

	renderRecommendation(p, rep)

	_, err := io.WriteString(w, p.sb.String())
	return err
}

func renderPage(p *printer, rep Report) {
	page := rep.Page
	if page == nil || rep.HTTPS.Body == "" {
		return
	}

	if !page.MarkerFound {
		p.line("⚠️  %s", p.s.warn.Render("Domain connected but different application"))
		if page.Title != "" {
			p.line("   Page title: %s", page.Title)
		}
		return
	}

	p.line("🎉 Your application is live!")
	if !page.IsJSON {
		p.line("   Response received but not JSON format")
		return
	}
	if page.HasStatus {
		p.line("   Status: %s", page.Status)
	}
	if page.HasName {
		p.line("   App: %s", page.Name)
	}
}

func renderRecommendation(p *printer, rep Report) {
	d := rep.Domain

	switch rep.Recommendation {
	case RecommendDNS:
		p.section("💡 Next Steps:")
		p.line("1. DNS propagation may still be in progress (can take 24-48 hours)")
		p.line("2. Verify DNS records are correctly configured at your registrar")
		p.line("3. Check if your deployment is running")
		p.line("4. Ensure the custom domain is added in your deployment settings")
	case RecommendDeployment:
		p.section("💡 Next Steps:")
		p.line("1. Domain resolves but HTTPS not working")
		p.line("2. Check if your deployment is running")
		p.line("3. Verify the SSL certificate setup for the domain")
		p.line("4. Ensure the custom domain is properly connected")
	default:
		p.section("🎉 Domain appears to be working!")
		p.line("   Your application should be accessible at: %s", p.s.addr.Render(RootURL("https", d)))
		p.line("   Test the health endpoint: %s", p.s.addr.Render(EndpointURL(d, "/health")))
	}
}
