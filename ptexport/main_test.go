package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"NamesConv/config"
	"NamesConv/engine"
	iface "NamesConv/interface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockExporter struct {
	requests []iface.ExportRequest
	err      error
}

func (m *MockExporter) Export(_ context.Context, req iface.ExportRequest) (iface.ExportResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return iface.ExportResult{}, m.err
	}
	out := strings.TrimSuffix(req.ModelPath, filepath.Ext(req.ModelPath)) + "." + req.Format
	return iface.ExportResult{ModelPath: req.ModelPath, OutputPath: out, Format: req.Format}, nil
}

type MockInspector struct {
	features int
	err      error
}

func (m *MockInspector) Inspect(path string, inputSize int) (iface.ModelReport, error) {
	if m.err != nil {
		return iface.ModelReport{}, m.err
	}
	return iface.ModelReport{
		Path:     path,
		Dims:     []int{1, m.features, 8400},
		Channels: m.features,
		Boxes:    8400,
		Classes:  m.features - 4,
	}, nil
}

func newTestApp(exp *MockExporter, insp *MockInspector) (*app, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &app{exporter: exp, inspector: insp, stdout: &stdout}, &stdout
}

func TestExport_Defaults(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	exp := &MockExporter{}
	a, stdout := newTestApp(exp, &MockInspector{features: 84})

	var stderr bytes.Buffer
	code := a.run(context.Background(), nil, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	require.Len(t, exp.requests, 1)
	assert.Equal(t, iface.ExportRequest{ModelPath: defaultModel, Format: "onnx", ImgSize: 640}, exp.requests[0])
	assert.Contains(t, stdout.String(), "Exported yolo11m.pt -> yolo11m.onnx")
	assert.Contains(t, stdout.String(), "80 classes")
}

func TestExport_Names(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	dir := t.TempDir()
	namesFile := filepath.Join(dir, "three.names")
	require.NoError(t, os.WriteFile(namesFile, []byte("a\nb\nc\n"), 0o644))

	t.Run("match", func(t *testing.T) {
		a, stdout := newTestApp(&MockExporter{}, &MockInspector{features: 7})
		code := a.run(context.Background(), []string{"--names", namesFile, "yolo11m.pt", "yolo12m.pt"}, &bytes.Buffer{})
		assert.Equal(t, exitOK, code)
		assert.Equal(t, 2, strings.Count(stdout.String(), "Names match: 3 classes"))
	})

	t.Run("mismatch", func(t *testing.T) {
		a, _ := newTestApp(&MockExporter{}, &MockInspector{features: 84})
		var stderr bytes.Buffer
		code := a.run(context.Background(), []string{"--names", namesFile}, &stderr)
		assert.Equal(t, exitVerify, code)
		assert.Contains(t, stderr.String(), "class count")
	})

	t.Run("missing names file", func(t *testing.T) {
		a, _ := newTestApp(&MockExporter{}, &MockInspector{features: 84})
		code := a.run(context.Background(), []string{"--names", filepath.Join(dir, "nope.names")}, &bytes.Buffer{})
		assert.Equal(t, exitUsage, code)
	})
}

func TestExport_Failures(t *testing.T) {
	t.Setenv(config.EnvPath, "")

	t.Run("exporter exit code", func(t *testing.T) {
		a, _ := newTestApp(&MockExporter{err: &engine.ExitError{Model: "yolo11m.pt", Code: 1}}, &MockInspector{})
		assert.Equal(t, exitExport, a.run(context.Background(), nil, &bytes.Buffer{}))
	})

	t.Run("reload failure", func(t *testing.T) {
		a, _ := newTestApp(&MockExporter{}, &MockInspector{err: errors.New("bad model")})
		assert.Equal(t, exitVerify, a.run(context.Background(), nil, &bytes.Buffer{}))
	})

	t.Run("non onnx skips reload", func(t *testing.T) {
		insp := &MockInspector{err: errors.New("must not be called")}
		a, _ := newTestApp(&MockExporter{}, insp)
		assert.Equal(t, exitOK, a.run(context.Background(), []string{"--format", "torchscript"}, &bytes.Buffer{}))
	})

	t.Run("no verify", func(t *testing.T) {
		a, _ := newTestApp(&MockExporter{}, &MockInspector{err: errors.New("must not be called")})
		assert.Equal(t, exitOK, a.run(context.Background(), []string{"--no-verify"}, &bytes.Buffer{}))
	})
}
