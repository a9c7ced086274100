package cmd

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/numtools/numtools/config"
	"github.com/numtools/numtools/reader"
	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/telemetry"
	"github.com/numtools/numtools/wordcount"
)

// NewWordCountCmd returns the word-count command.
func NewWordCountCmd() *cobra.Command {
	return newToolCmd(
		config.ToolWordCount,
		"Counts the distinct words of a text file",
		`Splits the input into words (runs of letters, digits and underscores),
ignoring case, and lists every distinct word by descending frequency.`,
		computeWordCounts,
	)
}

func computeWordCounts(e env, path string) (report.Result, error) {
	start := time.Now()
	text, err := reader.ReadText(e.logger, path)
	if err != nil {
		return report.Result{}, err
	}
	e.recorder.MeasureSince(telemetry.KeyStageParse, start)

	start = time.Now()
	tokens := wordcount.Tokenize(text)
	table := wordcount.Count(tokens)
	entries := table.Sorted()
	e.recorder.MeasureSince(telemetry.KeyStageCompute, start)
	e.recorder.Add(telemetry.KeyTokens, table.Total())

	if table.Len() == 0 {
		e.logger.Warn().
			Str("path", path).
			Str("size", humanize.Bytes(uint64(len(text)))).
			Msg("no words found")
	}
	return report.WordCounts(entries), nil
}
