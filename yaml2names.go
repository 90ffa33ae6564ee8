// Command yaml2names extracts the class-name list from a dataset YAML and writes it as a
// .names file, one name per line.
//
//	yaml2names coco.yaml coco.names
//	yaml2names https://example.com/data/coco.yaml coco.names
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"NamesConv/config"
	"NamesConv/logger"
	"NamesConv/monitor"
	"NamesConv/names"
	"NamesConv/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitNoNames = 2

	usage = "Usage: yaml2names <input.yaml> <output.names>"
)

var errUsage = errors.New("usage")

func newRootCmd(stdout io.Writer) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "yaml2names <input.yaml> <output.names>",
		Short: "Write the class names of a dataset YAML to a .names file",
		Long: `Reads the "names" key of an Ultralytics-style dataset YAML, either an inline
mapping (names: {0: person, 1: bicycle}) or an indented block of "<id>: <name>" or
"- <name>" lines, and writes the names in class-id order, one per line.

The input may be a local path or an http(s) URL.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(cmd.Context(), configPath, args[0], args[1], stdout)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultPath+")")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	cmd.SetOut(stdout)
	return cmd
}

func convert(ctx context.Context, configFlag, input, output string, stdout io.Writer) error {
	cfgPath, explicit := config.Resolve(configFlag)
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogMode, cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	rec := monitor.New("yaml2names")
	defer func() {
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			logger.Log().Warn("write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}()

	text, err := source.NewReader(cfg.FetchTimeout()).ReadText(ctx, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	list, shape, err := names.Extract(text)
	rec.ObserveExtract(shape.String(), len(list), err)
	if err != nil {
		return err
	}
	if err := names.WriteFile(output, list); err != nil {
		return err
	}
	logger.Log().Info("names extracted",
		zap.String("input", input),
		zap.String("output", output),
		zap.Stringer("shape", shape),
		zap.Int("count", len(list)))
	fmt.Fprintf(stdout, "Wrote %d names to %s\n", len(list), output)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	// Help is not a valid invocation: it reports usage and exits non-zero.
	helped := false
	cmd.SetHelpFunc(func(*cobra.Command, []string) { helped = true })
	err := cmd.ExecuteContext(ctx)
	if err == nil && helped {
		err = errUsage
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, usage)
		return exitUsage
	case errors.Is(err, names.ErrNoNames):
		fmt.Fprintln(stderr, "No names found in YAML.")
		return exitNoNames
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
