package config

import (
	"os"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultInterval        = 2
	defaultCacheTTL        = 2
	defaultMinSensors      = 5
	defaultDetectTimeout   = 30
	defaultDetectorTimeout = 5
	defaultHistoryDB       = "/var/lib/pctoolmgr/history.db"
)

// Config holds the runtime settings for the telemetry engine and the
// monitor loop around it. All durations are whole seconds, matching the
// config file format.
type Config struct {
	Interval        int    `mapstructure:"interval"`
	CacheTTL        int    `mapstructure:"cache_ttl"`
	MinSensors      int    `mapstructure:"min_sensors"`
	DetectTimeout   int    `mapstructure:"detect_timeout"`
	DetectorTimeout int    `mapstructure:"detector_timeout"`
	LogLevel        string `mapstructure:"log_level"`
	History         bool   `mapstructure:"history"`
	HistoryDB       string `mapstructure:"history_db"`
}

func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("cache_ttl", defaultCacheTTL)
	v.SetDefault("min_sensors", defaultMinSensors)
	v.SetDefault("detect_timeout", defaultDetectTimeout)
	v.SetDefault("detector_timeout", defaultDetectorTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("history", false)
	v.SetDefault("history_db", defaultHistoryDB)

	flags := pflag.NewFlagSet("pctoolmgr", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Int("interval", defaultInterval, "Seconds between telemetry refresh ticks")
	flags.Int("cache-ttl", defaultCacheTTL, "Seconds a cached system metric stays fresh")
	flags.Int("min-sensors", defaultMinSensors, "Minimum detected sensors before synthetic backfill")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("history", false, "Record telemetry snapshots to the history database")
	flags.String("history-db", defaultHistoryDB, "Path to the history database")
	flags.String("config", "", "Path to config file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	bindings := map[string]string{
		"interval":    "interval",
		"cache-ttl":   "cache_ttl",
		"min-sensors": "min_sensors",
		"log-level":   "log_level",
		"history":     "history",
		"history-db":  "history_db",
	}
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := bindings[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, bindErr)
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("PCTOOL")
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	errFactory := errors.New()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv("PCTOOL_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
		return nil
	}

	v.SetConfigName("pctoolmgr")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
	}

	return nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.CacheTTL <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "cache_ttl must be positive").WithData(c.CacheTTL)
	}
	if c.MinSensors < 1 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "min_sensors must be at least 1").WithData(c.MinSensors)
	}
	if c.DetectTimeout <= 0 || c.DetectorTimeout <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "detection timeouts must be positive")
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.History && c.HistoryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history enabled without history_db")
	}

	return nil
}
