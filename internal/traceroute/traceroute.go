package traceroute

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MaxHops int
	Timeout time.Duration
}

type Hop struct {
	TTL   int
	IP    string
	RttMs float64
}

// Responded reports whether any probe at this TTL got an answer.
func (h Hop) Responded() bool {
	return h.IP != ""
}

type Result struct {
	Hops     []Hop
	PathHash string
	Err      string
}

var hopLine = regexp.MustCompile(`^\s*(\d+)\s+(.+)$`)

// Run shells out to the system traceroute with one numeric probe per hop.
// Partial output is still parsed when the command fails or ctx expires.
func Run(ctx context.Context, target string, cfg Config) Result {
	bin, err := exec.LookPath("traceroute")
	if err != nil {
		return Result{Err: fmt.Sprintf("traceroute unavailable: %v", err)}
	}

	wait := int(cfg.Timeout.Seconds())
	if wait < 1 {
		wait = 1
	}
	args := []string{"-n", "-q", "1", "-m", strconv.Itoa(cfg.MaxHops), "-w", strconv.Itoa(wait), target}

	out, err := exec.CommandContext(ctx, bin, args...).CombinedOutput()
	hops := parseOutput(string(out))

	res := Result{Hops: hops}
	if len(hops) > 0 {
		res.PathHash = hashPath(hops)
	}
	if err != nil {
		res.Err = err.Error()
	}

	return res
}

func parseOutput(out string) []Hop {
	scanner := bufio.NewScanner(strings.NewReader(out))
	var hops []Hop

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "traceroute") {
			continue
		}

		matches := hopLine.FindStringSubmatch(line)
		if len(matches) < 3 {
			continue
		}

		ttl, _ := strconv.Atoi(matches[1])
		ip, rtt := parseHop(matches[2])

		hops = append(hops, Hop{TTL: ttl, IP: ip, RttMs: rtt})
	}

	return hops
}

// parseHop takes the first responding address and its first RTT.
func parseHop(rest string) (string, float64) {
	fields := strings.Fields(rest)

	var ip string
	for i, f := range fields {
		if f == "*" {
			continue
		}
		if ip == "" && f != "ms" && !strings.HasPrefix(f, "!") {
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				ip = f
			}
			continue
		}
		if ip != "" && f == "ms" && i > 0 {
			rtt, _ := strconv.ParseFloat(fields[i-1], 64)
			return ip, rtt
		}
	}

	return ip, 0
}

func hashPath(hops []Hop) string {
	var sb strings.Builder
	for _, h := range hops {
		fmt.Fprintf(&sb, "%d:%s|", h.TTL, h.IP)
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}
