package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"NamesConv/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRun(t *testing.T) {
	t.Setenv(config.EnvPath, "")

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"inline with gap", "names: {0: person, 2: car}\n", "person\ncar\n"},
		{"block with comment", "names:\n  0: person\n  1: bicycle  # vehicle\n", "person\nbicycle\n"},
		{"list style", "names:\n  - cat\n  - dog\n", "cat\ndog\n"},
		{"quoted", "names: {0: \"stop sign\"}\n", "stop sign\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeInput(t, dir, c.input)
			out := filepath.Join(dir, "out.names")

			res := runCLI(t, in, out)
			require.Equal(t, exitOK, res.code, res.stderr)
			b, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, c.want, string(b))
			assert.Contains(t, res.stdout, "Wrote ")
			assert.Contains(t, res.stdout, " names to "+out)
		})
	}
}

func TestRun_NoNames(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	dir := t.TempDir()
	in := writeInput(t, dir, "names: {}\n")
	out := filepath.Join(dir, "out.names")

	res := runCLI(t, in, out)
	assert.Equal(t, exitNoNames, res.code)
	assert.Contains(t, res.stderr, "No names found")
	assert.NoFileExists(t, out)
}

func TestRun_Usage(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.names")

	for _, args := range [][]string{
		{},
		{out},
		{"a.yaml", out, "extra"},
		{"--bogus", "a.yaml", out},
		{"--help"},
		{"-h"},
	} {
		res := runCLI(t, args...)
		assert.Equal(t, exitUsage, res.code, "args %v", args)
		assert.Contains(t, res.stderr, "Usage:")
		assert.Empty(t, res.stdout)
		assert.NoFileExists(t, out)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		res := runCLI(t, filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "out.names"))
		assert.Equal(t, exitUsage, res.code)
		assert.Contains(t, res.stderr, "Error:")
	})

	t.Run("missing explicit config", func(t *testing.T) {
		in := writeInput(t, dir, "names: {0: a}")
		res := runCLI(t, "--config", filepath.Join(dir, "nope.yaml"), in, filepath.Join(dir, "out.names"))
		assert.Equal(t, exitUsage, res.code)
	})
}

func TestRun_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "yaml2names.prom")
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("logMode: off\nmetricsFile: "+metrics+"\n"), 0o644))
	t.Setenv(config.EnvPath, cfg)

	in := writeInput(t, dir, "names:\n  - cat\n")
	res := runCLI(t, in, filepath.Join(dir, "out.names"))
	require.Equal(t, exitOK, res.code, res.stderr)

	b, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(b), `names_extract_total{`)
	assert.Contains(t, string(b), `shape="block"`)
}
