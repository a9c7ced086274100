package cmd

import (
	"time"

	sdkerrors "cosmossdk.io/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/numtools/numtools/config"
	"github.com/numtools/numtools/convert"
	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/telemetry"
	"github.com/numtools/numtools/types"
)

// NewConvertCmd returns the convert-numbers command.
func NewConvertCmd() *cobra.Command {
	return newToolCmd(
		config.ToolConvert,
		"Converts a file of numbers to binary and hexadecimal",
		`Reads one number per line and prints its binary and hexadecimal form.
Fractional parts are truncated with a warning. Negative values and lines that
are not numbers are reported and skipped.`,
		computeConversions,
	)
}

func computeConversions(e env, path string) (report.Result, error) {
	sample, err := readSample(e, path)
	if err != nil {
		return report.Result{}, err
	}

	start := time.Now()
	rejected := 0
	conversions := make([]convert.Conversion, 0, sample.Len())
	for _, v := range sample.Values {
		c, err := convert.Convert(v)
		if err != nil {
			rejected++
			e.recorder.Add(telemetry.KeyValuesRejected, 1)
			e.logger.Warn().Err(err).Float64("value", v).Msg("value skipped")
			continue
		}
		if c.Truncated {
			e.logger.Warn().
				Float64("value", c.Input).
				Uint64("converted", c.Value).
				Msg("fractional part truncated")
		}
		conversions = append(conversions, c)
	}
	e.recorder.MeasureSince(telemetry.KeyStageCompute, start)

	if len(conversions) == 0 {
		return report.Result{}, sdkerrors.Wrapf(types.ErrEmptyResult, "%q: %s values rejected",
			path, humanize.Comma(int64(rejected)))
	}
	return report.Conversions(conversions), nil
}
