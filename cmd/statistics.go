package cmd

import (
	"time"

	sdkerrors "cosmossdk.io/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/numtools/numtools/config"
	"github.com/numtools/numtools/reader"
	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/telemetry"
	"github.com/numtools/numtools/types"
)

// NewStatisticsCmd returns the compute-statistics command.
func NewStatisticsCmd() *cobra.Command {
	return newToolCmd(
		config.ToolStatistics,
		"Computes descriptive statistics of a file of numbers",
		`Reads one number per line and reports the mean, median, mode, population
variance and standard deviation. Lines that are not numbers are reported and
skipped.`,
		computeStatistics,
	)
}

func computeStatistics(e env, path string) (report.Result, error) {
	sample, err := readSample(e, path)
	if err != nil {
		return report.Result{}, err
	}

	start := time.Now()
	summary, err := stats.Describe(sample.Values, e.cfg.ModePolicy)
	if err != nil {
		return report.Result{}, err
	}
	e.recorder.MeasureSince(telemetry.KeyStageCompute, start)

	return report.Statistics(summary), nil
}

// readSample reads the numeric input at path; an input without any valid
// value is an error.
func readSample(e env, path string) (reader.Sample, error) {
	start := time.Now()
	sample, err := reader.ReadNumbers(e.logger, path)
	if err != nil {
		return reader.Sample{}, err
	}
	e.recorder.MeasureSince(telemetry.KeyStageParse, start)
	e.recorder.Add(telemetry.KeyLinesValid, sample.Len())
	e.recorder.Add(telemetry.KeyLinesInvalid, sample.Skipped)

	if sample.Empty() {
		return reader.Sample{}, sdkerrors.Wrapf(types.ErrEmptyResult, "%q: %s lines skipped",
			path, humanize.Comma(int64(sample.Skipped)))
	}
	return sample, nil
}
