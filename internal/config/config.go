package config

import (
	"os"

	"codeberg.org/mutker/covidwatch/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval    = 3600
	DefaultLogLevel    = "info"
	DefaultHistoryFile = "covid19_history.dat"
	DefaultTestDataDir = "Test_Data"

	defaultTelemetryDB = "/var/lib/covidwatch/telemetry.db"

	csseBaseURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/" +
		"csse_covid_19_data/csse_covid_19_time_series/"

	DefaultConfirmedURL = csseBaseURL + "time_series_19-covid-Confirmed.csv"
	DefaultRecoveredURL = csseBaseURL + "time_series_19-covid-Recovered.csv"
	DefaultDeathsURL    = csseBaseURL + "time_series_19-covid-Deaths.csv"
)

type Config struct {
	Interval     int    `mapstructure:"interval"`
	Record       bool   `mapstructure:"record"`
	Split        bool   `mapstructure:"split"`
	Force        bool   `mapstructure:"force"`
	Verbose      bool   `mapstructure:"verbose"`
	Test         bool   `mapstructure:"test"`
	Once         bool   `mapstructure:"once"`
	Debug        bool   `mapstructure:"debug"`
	LogLevel     string `mapstructure:"log_level"`
	HistoryFile  string `mapstructure:"history_file"`
	Telemetry    bool   `mapstructure:"telemetry"`
	TelemetryDB  string `mapstructure:"database"`
	ConfirmedURL string `mapstructure:"confirmed_url"`
	RecoveredURL string `mapstructure:"recovered_url"`
	DeathsURL    string `mapstructure:"deaths_url"`
	TestDataDir  string `mapstructure:"test_data_dir"`
}

// Load reads configuration from flags, environment and the optional
// covidwatch.toml config file. Flags take precedence over environment
// variables, which take precedence over the file.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("covidwatch", pflag.ContinueOnError)
	fs.IntP("interval", "i", DefaultInterval, "interval in seconds between polling cycles")
	fs.BoolP("record", "r", false, "view a record of all changes in a continuously running loop")
	fs.BoolP("split", "s", false, "split the display to fit smaller terminals")
	fs.BoolP("force", "f", false, "bypass the single-instance guard")
	fs.BoolP("verbose", "v", false, "enable verbose logging")
	fs.BoolP("test", "t", false, "read local test data files instead of the network")
	fs.Bool("once", false, "run a single polling cycle and exit")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("log-level", "", "log level (debug, info, warning, error)")
	configFile := fs.String("config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("history_file", DefaultHistoryFile)
	v.SetDefault("database", defaultTelemetryDB)
	v.SetDefault("confirmed_url", DefaultConfirmedURL)
	v.SetDefault("recovered_url", DefaultRecoveredURL)
	v.SetDefault("deaths_url", DefaultDeathsURL)
	v.SetDefault("test_data_dir", DefaultTestDataDir)

	v.SetEnvPrefix("COVIDWATCH")
	v.AutomaticEnv()

	// An explicit config path (flag or COVIDWATCH_CONFIG) must exist and
	// parse; the default search locations are optional.
	path := *configFile
	if path == "" {
		path = os.Getenv("COVIDWATCH_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName("covidwatch")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	bindings := map[string]string{
		"interval":  "interval",
		"record":    "record",
		"split":     "split",
		"force":     "force",
		"verbose":   "verbose",
		"test":      "test",
		"once":      "once",
		"debug":     "debug",
		"log_level": "log-level",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	// Empty log-level flag means "not set"; fall back to the other sources.
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration for values the polling loop
// cannot run with.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.HistoryFile == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history file path is empty")
	}
	if c.ConfirmedURL == "" || c.RecoveredURL == "" || c.DeathsURL == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "dataset URL is empty")
	}

	return nil
}
