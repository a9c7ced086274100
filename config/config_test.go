package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"

	"github.com/numtools/numtools/config"
	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/types"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(config.FlagConfig, "", "")
	flags.StringP(config.FlagOutput, "o", "", "")
	flags.Int(config.FlagPrecision, 0, "")
	flags.String(config.FlagFormat, "", "")
	flags.String(config.FlagModePolicy, "", "")
	flags.String(config.FlagLogLevel, "", "")
	flags.String(config.FlagLogFormat, "", "")
	return flags
}

func (s *ConfigTestSuite) writeConfig(name, content string) string {
	path := filepath.Join(s.T().TempDir(), name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	testCases := map[config.Tool]config.Defaults{
		config.ToolStatistics: {Output: "StatisticsResults.txt", Precision: 2},
		config.ToolConvert:    {Output: "ConvertionResults.txt", Precision: 6},
		config.ToolWordCount:  {Output: "WordCountResults.txt", Precision: 4},
	}

	for tool, expected := range testCases {
		cfg, err := config.Load(tool, nil)
		s.Require().NoError(err)
		s.Require().Equal(expected.Output, cfg.Output)
		s.Require().Equal(expected.Precision, cfg.Precision)
		s.Require().Equal(report.FormatText, cfg.Format)
		s.Require().Equal(stats.ModeFirst, cfg.ModePolicy)
		s.Require().Equal("info", cfg.Log.Level)
		s.Require().Equal(config.LogFormatText, cfg.Log.Format)
	}
}

func (s *ConfigTestSuite) TestUnknownTool() {
	_, err := config.Load(config.Tool("sum-numbers"), nil)
	s.Require().ErrorIs(err, types.ErrInvalidConfig)
}

func (s *ConfigTestSuite) TestUnchangedFlagsKeepDefaults() {
	cfg, err := config.Load(config.ToolWordCount, s.newFlags())
	s.Require().NoError(err)
	s.Require().Equal("WordCountResults.txt", cfg.Output)
	s.Require().Equal(4, cfg.Precision)
}

func (s *ConfigTestSuite) TestFlagsOverride() {
	flags := s.newFlags()
	s.Require().NoError(flags.Parse([]string{"-o", "out.txt", "--precision", "3", "--format", "YAML", "--mode-policy", "all", "--log-format", "json"}))

	cfg, err := config.Load(config.ToolStatistics, flags)
	s.Require().NoError(err)
	s.Require().Equal("out.txt", cfg.Output)
	s.Require().Equal(3, cfg.Precision)
	s.Require().Equal(report.FormatYAML, cfg.Format)
	s.Require().Equal(stats.ModeAll, cfg.ModePolicy)
	s.Require().Equal(config.LogFormatJSON, cfg.Log.Format)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv(config.EnvKey("precision"), "5")
	s.T().Setenv(config.EnvKey("log.level"), "debug")

	cfg, err := config.Load(config.ToolConvert, s.newFlags())
	s.Require().NoError(err)
	s.Require().Equal(5, cfg.Precision)
	s.Require().Equal("debug", cfg.Log.Level)
}

func (s *ConfigTestSuite) TestFlagBeatsEnv() {
	s.T().Setenv(config.EnvKey("output"), "env.txt")

	flags := s.newFlags()
	s.Require().NoError(flags.Parse([]string{"--output", "flag.txt"}))

	cfg, err := config.Load(config.ToolConvert, flags)
	s.Require().NoError(err)
	s.Require().Equal("flag.txt", cfg.Output)
}

func (s *ConfigTestSuite) TestConfigFile() {
	path := s.writeConfig("numtools.toml", `
output = "custom.txt"
precision = 1
mode_policy = "ALL"

[log]
level = "warn"
`)

	cfg, err := config.ParseConfig(config.ToolStatistics, path)
	s.Require().NoError(err)
	s.Require().Equal("custom.txt", cfg.Output)
	s.Require().Equal(1, cfg.Precision)
	s.Require().Equal(stats.ModeAll, cfg.ModePolicy)
	s.Require().Equal("warn", cfg.Log.Level)
	s.Require().Equal(config.LogFormatText, cfg.Log.Format)
}

func (s *ConfigTestSuite) TestExampleConfigKeepsToolDefaults() {
	for _, tool := range []config.Tool{config.ToolStatistics, config.ToolConvert, config.ToolWordCount} {
		defaults, err := config.DefaultsFor(tool)
		s.Require().NoError(err)

		cfg, err := config.ParseConfig(tool, filepath.Join("..", "numtools.example.toml"))
		s.Require().NoError(err)
		s.Require().Equal(defaults.Precision, cfg.Precision, tool)
		s.Require().Equal(defaults.Output, cfg.Output, tool)
		s.Require().Equal(report.FormatText, cfg.Format, tool)
	}
}

func (s *ConfigTestSuite) TestConfigFileErrors() {
	_, err := config.ParseConfig(config.ToolStatistics, "")
	s.Require().ErrorIs(err, types.ErrInvalidConfig)

	_, err = config.ParseConfig(config.ToolStatistics, filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Require().ErrorIs(err, types.ErrInvalidConfig)
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := map[string]string{
		"precision too large": "precision: 12\n",
		"negative precision":  "precision: -1\n",
		"unknown format":      "format: xml\n",
		"unknown mode policy": "mode_policy: smallest\n",
		"unknown log format":  "log:\n  format: logfmt\n",
		"empty output":        "output: \"\"\n",
	}

	for name, content := range testCases {
		s.Run(name, func() {
			path := s.writeConfig("numtools.yaml", content)
			_, err := config.ParseConfig(config.ToolWordCount, path)
			s.Require().ErrorIs(err, types.ErrInvalidConfig)
		})
	}
}

func (s *ConfigTestSuite) TestEnvKey() {
	s.Require().Equal("NUMTOOLS_LOG_LEVEL", config.EnvKey("log.level"))
	s.Require().Equal("NUMTOOLS_MODE_POLICY", config.EnvKey("mode_policy"))
}
