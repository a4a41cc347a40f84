package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings controls a helios run. Values come from, in increasing priority:
// defaults, helios.yaml, HELIOS_* environment variables, command-line flags.
type Settings struct {
	Blob           string        `mapstructure:"blob"`
	Config         string        `mapstructure:"config"`
	KeysFile       string        `mapstructure:"keys_file"`
	KeyProfile     string        `mapstructure:"key_profile"`
	Team           string        `mapstructure:"team"`
	Remote         string        `mapstructure:"remote"`
	Parallel       int           `mapstructure:"parallel"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	AWSProfile     string        `mapstructure:"aws_profile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("blob", "conf.z")
	v.SetDefault("config", "conf.yaml")
	v.SetDefault("keys_file", "keys.ini")
	v.SetDefault("key_profile", DefaultKeyProfile)
	v.SetDefault("team", "")
	v.SetDefault("remote", "")
	v.SetDefault("parallel", 0)
	v.SetDefault("command_timeout", time.Duration(0))
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("aws_profile", "")
}

// LoadSettings reads settings from path, or from ./helios.yaml when path is
// empty and that file exists. Flags are bound by name, so a flag must be
// named after its setting (e.g. --keys_file).
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HELIOS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	} else {
		v.SetConfigName("helios")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.Parallel < 0 {
		return nil, fmt.Errorf("parallel must not be negative, got %d", s.Parallel)
	}
	return &s, nil
}
