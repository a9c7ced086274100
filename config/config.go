package config

import (
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"github.com/go-playground/validator/v10"

	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/types"
)

// Tool identifies one of the command-line utilities.
type Tool string

const (
	ToolStatistics Tool = "compute-statistics"
	ToolConvert    Tool = "convert-numbers"
	ToolWordCount  Tool = "word-count"

	// EnvPrefix prefixes every environment variable read by the tools.
	EnvPrefix = "NUMTOOLS"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

var validate = validator.New()

type (
	// Config defines all configuration parameters of a tool run.
	Config struct {
		Output     string           `mapstructure:"output" validate:"required"`
		Precision  int              `mapstructure:"precision" validate:"gte=0,lte=9"`
		Format     report.Format    `mapstructure:"format" validate:"oneof=text yaml"`
		ModePolicy stats.ModePolicy `mapstructure:"mode_policy" validate:"oneof=first all"`
		Log        Log              `mapstructure:"log"`
	}

	// Log defines the console logger configuration.
	Log struct {
		Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
		Format string `mapstructure:"format" validate:"oneof=json text"`
	}

	// Defaults holds the legacy values of a tool.
	Defaults struct {
		Output    string
		Precision int
	}
)

// toolDefaults keeps the result file names and timing precisions each
// utility has always used.
var toolDefaults = map[Tool]Defaults{
	ToolStatistics: {Output: "StatisticsResults.txt", Precision: 2},
	ToolConvert:    {Output: "ConvertionResults.txt", Precision: 6},
	ToolWordCount:  {Output: "WordCountResults.txt", Precision: 4},
}

// DefaultsFor returns the legacy defaults of tool.
func DefaultsFor(tool Tool) (Defaults, error) {
	d, ok := toolDefaults[tool]
	if !ok {
		return Defaults{}, sdkerrors.Wrapf(types.ErrInvalidConfig, "unknown tool %q", tool)
	}
	return d, nil
}

// Default returns the configuration of tool when nothing is overridden.
func Default(tool Tool) (Config, error) {
	d, err := DefaultsFor(tool)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Output:     d.Output,
		Precision:  d.Precision,
		Format:     report.FormatText,
		ModePolicy: stats.ModeFirst,
		Log: Log{
			Level:  "info",
			Format: LogFormatText,
		},
	}, nil
}

// Validate returns an error if the Config object is invalid.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidConfig, err.Error())
	}
	return nil
}

// String implements fmt.Stringer.
func (t Tool) String() string {
	return string(t)
}

// EnvKey returns the environment variable read for key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + envReplacer.Replace(strings.ToUpper(key))
}
