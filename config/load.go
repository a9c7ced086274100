package config

import (
	"reflect"
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/numtools/numtools/report"
	"github.com/numtools/numtools/stats"
	"github.com/numtools/numtools/types"
)

// Flag names shared by every tool.
const (
	FlagConfig     = "config"
	FlagOutput     = "output"
	FlagPrecision  = "precision"
	FlagFormat     = "format"
	FlagModePolicy = "mode-policy"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
)

// flagKeys maps flag names onto configuration keys.
var flagKeys = map[string]string{
	FlagOutput:     "output",
	FlagPrecision:  "precision",
	FlagFormat:     "format",
	FlagModePolicy: "mode_policy",
	FlagLogLevel:   "log.level",
	FlagLogFormat:  "log.format",
}

// Allow nested keys to be read from env vars with underscore separators.
var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// Load builds the configuration of tool. Values are taken, in order of
// precedence, from changed flags, NUMTOOLS_* environment variables, the file
// named by the --config flag and finally the tool defaults.
func Load(tool Tool, flags *pflag.FlagSet) (Config, error) {
	cfg, err := Default(tool)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("output", cfg.Output)
	v.SetDefault("precision", cfg.Precision)
	v.SetDefault("format", string(cfg.Format))
	v.SetDefault("mode_policy", string(cfg.ModePolicy))
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if flags != nil {
		if err := readConfigFile(v, flags); err != nil {
			return Config{}, err
		}
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, sdkerrors.Wrapf(types.ErrInvalidConfig, "failed to bind flag %s: %s", name, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, sdkerrors.Wrapf(types.ErrInvalidConfig, "failed to decode config: %s", err)
	}

	return cfg, cfg.Validate()
}

// ParseConfig attempts to read and parse configuration for tool from the
// given file path only.
func ParseConfig(tool Tool, configPath string) (Config, error) {
	if configPath == "" {
		return Config{}, sdkerrors.Wrap(types.ErrInvalidConfig, "empty configuration file path")
	}

	flags := pflag.NewFlagSet(tool.String(), pflag.ContinueOnError)
	flags.String(FlagConfig, configPath, "")
	return Load(tool, flags)
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags.Lookup(FlagConfig) == nil {
		return nil
	}

	path, err := flags.GetString(FlagConfig)
	if err != nil || path == "" {
		return err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidConfig, "failed to read config: %s", err)
	}
	return nil
}

// decodeHook turns the case-insensitive strings of the config sources into
// their typed values.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(enumHook)
}

func enumHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	s, _ := data.(string)
	switch to {
	case reflect.TypeOf(stats.ModePolicy("")):
		return stats.ParseModePolicy(s)
	case reflect.TypeOf(report.Format("")):
		return report.ParseFormat(s)
	}
	return data, nil
}
