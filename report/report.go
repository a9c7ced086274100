package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/numtools/numtools/convert"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/wordcount"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat converts s into a Format, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid report format: %s", s)
	}
}

// Result is a computed result with fixed labels and field order.
type Result struct {
	lines []string
	// blankBeforeTiming separates the body from the timing line.
	blankBeforeTiming bool
	// doc builds the yaml document for the given execution time.
	doc func(executionTime string) interface{}
}

// Lines returns the text lines of the result, without the timing line.
func (r Result) Lines() []string {
	return r.lines
}

type (
	statisticsDoc struct {
		Mean              float64   `yaml:"mean"`
		Median            float64   `yaml:"median"`
		Mode              []float64 `yaml:"mode,flow"`
		Variance          float64   `yaml:"variance"`
		StandardDeviation float64   `yaml:"standard_deviation"`
	}

	conversionDoc struct {
		Value       uint64 `yaml:"value"`
		Binary      string `yaml:"binary"`
		Hexadecimal string `yaml:"hexadecimal"`
	}

	wordDoc struct {
		Word  string `yaml:"word"`
		Count int    `yaml:"count"`
	}

	statisticsReport struct {
		DescriptiveStatistics statisticsDoc `yaml:"descriptive_statistics"`
		ExecutionTime         string        `yaml:"execution_time"`
	}

	conversionsReport struct {
		Conversions   []conversionDoc `yaml:"conversions"`
		ExecutionTime string          `yaml:"execution_time"`
	}

	wordsReport struct {
		Words         []wordDoc `yaml:"words"`
		ExecutionTime string    `yaml:"execution_time"`
	}
)

// Statistics renders a descriptive statistics summary.
func Statistics(s stats.Summary) Result {
	return Result{
		lines: []string{
			"Descriptive Statistics:",
			"Mean: " + FormatFloat(s.Mean),
			"Median: " + FormatFloat(s.Median),
			"Mode: " + formatFloats(s.Mode),
			"Variance: " + FormatFloat(s.Variance),
			"Standard Deviation: " + FormatFloat(s.StandardDeviation),
		},
		doc: func(executionTime string) interface{} {
			return statisticsReport{
				DescriptiveStatistics: statisticsDoc{
					Mean:              s.Mean,
					Median:            s.Median,
					Mode:              s.Mode,
					Variance:          s.Variance,
					StandardDeviation: s.StandardDeviation,
				},
				ExecutionTime: executionTime,
			}
		},
	}
}

// Conversions renders one line per converted value.
func Conversions(cs []convert.Conversion) Result {
	lines := make([]string, 0, len(cs))
	docs := make([]conversionDoc, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, fmt.Sprintf("%d -> Binary: %s, Hexadecimal: %s", c.Value, c.Binary, c.Hexadecimal))
		docs = append(docs, conversionDoc{Value: c.Value, Binary: c.Binary, Hexadecimal: c.Hexadecimal})
	}

	return Result{
		lines: lines,
		doc: func(executionTime string) interface{} {
			return conversionsReport{Conversions: docs, ExecutionTime: executionTime}
		},
	}
}

// WordCounts renders one line per word, in the order given.
func WordCounts(entries []wordcount.Entry) Result {
	lines := make([]string, 0, len(entries))
	docs := make([]wordDoc, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %d", e.Word, e.Count))
		docs = append(docs, wordDoc{Word: e.Word, Count: e.Count})
	}

	return Result{
		lines:             lines,
		blankBeforeTiming: true,
		doc: func(executionTime string) interface{} {
			return wordsReport{Words: docs, ExecutionTime: executionTime}
		},
	}
}

// Report is a Result together with the time it took to compute.
type Report struct {
	Result    Result
	Elapsed   time.Duration
	Precision int
	Format    Format
}

// TimingLine returns the elapsed time line.
func (r Report) TimingLine() string {
	return fmt.Sprintf("Execution Time: %s seconds", r.elapsedSeconds())
}

func (r Report) elapsedSeconds() string {
	return strconv.FormatFloat(r.Elapsed.Seconds(), 'f', r.Precision, 64)
}

// Render returns the bytes to emit on the console and in the result file.
func (r Report) Render() ([]byte, error) {
	switch r.Format {
	case FormatText, "":
		var buf bytes.Buffer
		for _, line := range r.Result.lines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		if r.Result.blankBeforeTiming {
			buf.WriteByte('\n')
		}
		buf.WriteString(r.TimingLine())
		buf.WriteByte('\n')
		return buf.Bytes(), nil

	case FormatYAML:
		if r.Result.doc == nil {
			return nil, fmt.Errorf("empty report")
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r.Result.doc(r.elapsedSeconds() + " seconds")); err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("invalid report format: %s", r.Format)
	}
}

// Emit writes body to the console writer, then creates or truncates the
// result file at path with the same content.
func Emit(console io.Writer, path string, body []byte) error {
	if _, err := console.Write(body); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// FormatFloat renders v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, ", ")
}
