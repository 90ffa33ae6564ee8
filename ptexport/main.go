// Command ptexport converts trained .pt detection models with the external `yolo export`
// tool, then reloads each ONNX result and checks its class count.
//
//	ptexport                                   # exports yolo11m.pt
//	ptexport --names coco.names yolo11m.pt yolo12m.pt
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"NamesConv/config"
	"NamesConv/engine"
	iface "NamesConv/interface"
	"NamesConv/logger"
	"NamesConv/modelcheck"
	"NamesConv/monitor"
	"NamesConv/names"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitOK     = 0
	exitUsage  = 1
	exitExport = 3
	exitVerify = 4

	defaultModel = "yolo11m.pt"
)

var errVerify = errors.New("verification failed")

type options struct {
	configPath string
	format     string
	imgSize    int
	yoloPath   string
	namesPath  string
	noVerify   bool
}

type app struct {
	exporter  iface.Exporter
	inspector iface.Inspector
	stdout    io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "ptexport [model.pt ...]",
		Short: "Export detection models and verify the result",
		Long: `Runs "yolo export" for each model (default ` + defaultModel + `) and, for ONNX output,
reloads the exported file with OpenCV DNN to read its output head. With --names the
class count of the head is checked against the names list (.names file or dataset YAML).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultModel}
			}
			return a.exportAll(cmd.Context(), opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultPath+")")
	f.StringVar(&opts.format, "format", "", "export format, one of "+strings.Join(engine.Formats(), ", ")+" (default from config, onnx)")
	f.IntVar(&opts.imgSize, "imgsz", 0, "export input size (default from config, 640)")
	f.StringVar(&opts.yoloPath, "yolo", "", "path to the yolo executable (default: search PATH)")
	f.StringVar(&opts.namesPath, "names", "", "class list to check the exported head against")
	f.BoolVar(&opts.noVerify, "no-verify", false, "skip reloading the exported model")
	cmd.SetOut(a.stdout)
	return cmd
}

func (a *app) exportAll(ctx context.Context, opts *options, models []string) error {
	cfgPath, explicit := config.Resolve(opts.configPath)
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogMode, cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()
	if opts.format == "" {
		opts.format = cfg.Export.Format
	}
	if opts.imgSize <= 0 {
		opts.imgSize = cfg.Export.InputSize
	}
	if cli, ok := a.exporter.(*engine.CLIExporter); ok && cli.YoloPath == "" {
		cli.YoloPath = firstNonEmpty(opts.yoloPath, cfg.Export.YoloPath)
	}

	var classes names.List
	if opts.namesPath != "" {
		classes, err = engine.LoadNames(ctx, iface.NamesConf{IsFile: true, Data: opts.namesPath})
		if err != nil {
			return err
		}
	}

	rec := monitor.New("ptexport")
	defer func() {
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			logger.Log().Warn("write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}()

	for _, model := range models {
		start := time.Now()
		res, err := a.exporter.Export(ctx, iface.ExportRequest{ModelPath: model, Format: opts.format, ImgSize: opts.imgSize})
		rec.ObserveExport(opts.format, time.Since(start), err)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Exported %s -> %s\n", res.ModelPath, res.OutputPath)

		if opts.noVerify || res.Format != "onnx" {
			continue
		}
		report, err := a.inspector.Inspect(res.OutputPath, opts.imgSize)
		if err != nil {
			return fmt.Errorf("%w: %v", errVerify, err)
		}
		fmt.Fprintf(a.stdout, "Reloaded %s: output %v, %d classes\n", report.Path, report.Dims, report.Classes)
		if classes != nil {
			if err := modelcheck.Verify(report, len(classes)); err != nil {
				return fmt.Errorf("%w: %v", errVerify, err)
			}
			fmt.Fprintf(a.stdout, "Names match: %d classes\n", len(classes))
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (a *app) run(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	var exitErr *engine.ExitError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errVerify):
		fmt.Fprintln(stderr, "Error:", err)
		return exitVerify
	case errors.As(err, &exitErr),
		errors.Is(err, engine.ErrNoOutput),
		errors.Is(err, engine.ErrExecutableNotFound):
		fmt.Fprintln(stderr, "Error:", err)
		return exitExport
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{
		exporter:  &engine.CLIExporter{},
		inspector: modelcheck.Inspector{},
		stdout:    os.Stdout,
	}
	code := a.run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
