package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), version)
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a.example", "b.example"})

	require.Error(t, cmd.Execute())
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[http]
timeout_ms = -1
`), 0o644))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, path, "")

	require.ErrorContains(t, err, "http.timeout_ms must be > 0")
	require.Empty(t, stdout.String())
}

func TestRunUnresolvableDomain(t *testing.T) {
	if testing.Short() {
		t.Skip("performs real lookups")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "domaincheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoints = ["/health"]

[logging]
dir = "`+filepath.ToSlash(filepath.Join(dir, "logs"))+`"
`), 0o644))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, path, "no-such-host.invalid")

	require.NoError(t, err)
	require.Contains(t, stdout.String(), "❌ DNS not resolving")
	require.Contains(t, stdout.String(), "DNS propagation may still be in progress")
	require.Empty(t, stderr.String())

	_, err = os.Stat(filepath.Join(dir, "logs", "domaincheck.jsonl"))
	require.NoError(t, err)
}
