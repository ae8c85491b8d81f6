// Package config loads startup configuration from flags, environment, and
// an optional config file, in that precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved startup configuration.
type Config struct {
	Addr      string `mapstructure:"addr"`
	LogLevel  string `mapstructure:"log-level"`
	LogFile   string `mapstructure:"log-file"`
	PrefsFile string `mapstructure:"prefs-file"`
	Simulate  bool   `mapstructure:"simulate"`
	Tray      bool   `mapstructure:"tray"`
}

// Load parses args (without the program name) and merges them over
// environment variables (GAMEPADLAB_*) and an optional gamepadlab.yaml in
// the working directory or ~/.config/gamepadlab.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("gamepadlab", pflag.ContinueOnError)
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "optional log file path")
	fs.String("prefs-file", "gamepadlab-prefs.json", "preferences file path")
	fs.Bool("simulate", false, "start with the virtual device simulator enabled")
	fs.Bool("tray", true, "show the system tray icon where supported")
	configFile := fs.String("config", "", "config file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("gamepadlab")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("gamepadlab")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gamepadlab")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
