package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	sdkerrors "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/numtools/numtools/config"
	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/telemetry"
	"github.com/numtools/numtools/types"
)

// Version is set at build time.
var Version = "dev"

// env is what a tool needs to parse and compute one input file.
type env struct {
	cfg      config.Config
	logger   zerolog.Logger
	recorder *telemetry.Recorder
}

// computeFunc parses the input at path and computes the tool's result.
type computeFunc func(e env, path string) (report.Result, error)

// Execute runs cmd and returns the process exit status.
func Execute(cmd *cobra.Command) int {
	return types.ExitCode(cmd.Execute())
}

func newToolCmd(tool config.Tool, short, long string, compute computeFunc) *cobra.Command {
	defaults, err := config.DefaultsFor(tool)
	if err != nil {
		panic(err)
	}

	toolCmd := &cobra.Command{
		Use:     fmt.Sprintf("%s <input-file>", tool),
		Args:    exactlyOneInput,
		Short:   short,
		Long:    long,
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load(tool, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			recorder, err := telemetry.New(tool.String())
			if err != nil {
				return err
			}

			e := env{
				cfg:      cfg,
				logger:   logger.With().Str("tool", tool.String()).Logger(),
				recorder: recorder,
			}
			return run(cmd, e, args[0], compute)
		},
	}

	toolCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return sdkerrors.Wrap(types.ErrUsage, err.Error())
	})
	addToolFlags(toolCmd.Flags(), tool, defaults)

	return toolCmd
}

// run times the parse and compute stages, then reports the result on the
// console and in the result file.
func run(cmd *cobra.Command, e env, path string, compute computeFunc) error {
	start := time.Now()
	result, err := compute(e, path)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	body, err := report.Report{
		Result:    result,
		Elapsed:   elapsed,
		Precision: e.cfg.Precision,
		Format:    e.cfg.Format,
	}.Render()
	if err != nil {
		return err
	}

	if err := report.Emit(cmd.OutOrStdout(), e.cfg.Output, body); err != nil {
		return err
	}

	e.recorder.Log(e.logger)
	e.logger.Debug().
		Str("output", e.cfg.Output).
		Dur("elapsed", elapsed).
		Msg("results written")

	return nil
}

func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return sdkerrors.Wrap(types.ErrUsage, err.Error())
	}
	return nil
}

func addToolFlags(flags *pflag.FlagSet, tool config.Tool, defaults config.Defaults) {
	flags.String(config.FlagConfig, "", "optional config file (toml, yaml or json)")
	flags.StringP(config.FlagOutput, "o", defaults.Output, "result file, overwritten on each run")
	flags.Int(config.FlagPrecision, defaults.Precision, "decimal places of the execution time")
	flags.String(config.FlagFormat, string(report.FormatText), "result format; must be either text or yaml")
	if tool == config.ToolStatistics {
		flags.String(config.FlagModePolicy, string(stats.ModeFirst), "mode tie policy; must be either first or all")
	}
	flags.String(config.FlagLogLevel, zerolog.InfoLevel.String(), "logging level")
	flags.String(config.FlagLogFormat, config.LogFormatText, "logging format; must be either json or text")
}

func newLogger(cfg config.Log, out io.Writer) (zerolog.Logger, error) {
	logLvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	var logWriter io.Writer
	switch strings.ToLower(cfg.Format) {
	case config.LogFormatJSON:
		logWriter = out

	case config.LogFormatText:
		logWriter = zerolog.ConsoleWriter{Out: out}

	default:
		return zerolog.Logger{}, fmt.Errorf("invalid logging format: %s", cfg.Format)
	}

	return zerolog.New(logWriter).Level(logLvl).With().Timestamp().Logger(), nil
}
