package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultExecutable = "yolo"

var (
	ErrExecutableNotFound = errors.New("exporter executable not found")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrNoOutput           = errors.New("exporter produced no output")
)

// suffixes maps an export format to what the exporter appends to the model stem.
var suffixes = map[string]string{
	"onnx":        ".onnx",
	"torchscript": ".torchscript",
	"openvino":    "_openvino_model",
	"engine":      ".engine",
	"coreml":      ".mlpackage",
	"saved_model": "_saved_model",
	"pb":          ".pb",
	"paddle":      "_paddle_model",
	"ncnn":        "_ncnn_model",
	"mnn":         ".mnn",
}

// Formats lists the supported export formats.
func Formats() []string {
	out := make([]string, 0, len(suffixes))
	for f := range suffixes {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// OutputPath is where the exporter writes the converted model: next to the source,
// same stem, format-specific suffix.
func OutputPath(modelPath, format string) (string, error) {
	suffix, ok := suffixes[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}
	stem := strings.TrimSuffix(modelPath, filepath.Ext(modelPath))
	return stem + suffix, nil
}

// ExitError reports a non-zero exit of the external exporter.
type ExitError struct {
	Model string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("export of %s failed with exit code %d", e.Model, e.Code)
}
