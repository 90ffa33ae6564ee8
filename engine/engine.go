package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	iface "NamesConv/interface"
	"NamesConv/logger"

	"go.uber.org/zap"
)

// CLIExporter runs `<yolo> export model=<path> format=<format>` and checks that the
// converted file appeared.
type CLIExporter struct {
	// YoloPath overrides executable discovery when set.
	YoloPath string
	Stdout   io.Writer
	Stderr   io.Writer
}

var _ iface.Exporter = (*CLIExporter)(nil)

func (e *CLIExporter) Export(ctx context.Context, req iface.ExportRequest) (iface.ExportResult, error) {
	res := iface.ExportResult{ModelPath: req.ModelPath, Format: strings.ToLower(req.Format)}
	out, err := OutputPath(req.ModelPath, req.Format)
	if err != nil {
		return res, err
	}
	if _, err := os.Stat(req.ModelPath); err != nil {
		return res, fmt.Errorf("model %s: %w", req.ModelPath, err)
	}
	bin, err := Locate(e.YoloPath)
	if err != nil {
		return res, err
	}

	args := []string{"export", "model=" + req.ModelPath, "format=" + res.Format}
	if req.ImgSize > 0 {
		args = append(args, fmt.Sprintf("imgsz=%d", req.ImgSize))
	}
	logger.Log().Info("exporting model",
		zap.String("exporter", bin),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = writerOr(e.Stdout, os.Stdout)
	cmd.Stderr = writerOr(e.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, &ExitError{Model: req.ModelPath, Code: exitErr.ExitCode()}
		}
		return res, fmt.Errorf("start %s: %w", bin, err)
	}

	if _, err := os.Stat(out); err != nil {
		return res, fmt.Errorf("%w: expected %s", ErrNoOutput, out)
	}
	res.OutputPath = out
	return res, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
