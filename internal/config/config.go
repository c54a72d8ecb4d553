// Package config loads sql2migration settings from defaults, an optional
// YAML file, SQL2MIGRATION_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefixKey is the CodeIgniter .env key holding the table prefix.
const EnvPrefixKey = "database.default.DBPrefix"

// Config holds the resolved settings for one invocation.
type Config struct {
	Prefix        string `mapstructure:"prefix"`
	MigrationPath string `mapstructure:"migration_path"`
	Namespace     string `mapstructure:"namespace"`
	EnvFile       string `mapstructure:"env_file"`
	HistoryDSN    string `mapstructure:"history_dsn"`
	MetricsFile   string `mapstructure:"metrics_file"`
	NoColor       bool   `mapstructure:"no_color"`
	Verbose       bool   `mapstructure:"verbose"`

	// PrefixSource tells where Prefix came from: "config", "env_file" or "".
	PrefixSource string `mapstructure:"-"`
}

var keys = []string{
	"prefix", "migration_path", "namespace", "env_file",
	"history_dsn", "metrics_file", "no_color", "verbose",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("migration_path", "app/Database/Migrations")
	v.SetDefault("namespace", `App\Database\Migrations`)
	v.SetDefault("env_file", ".env")
	v.SetDefault("history_dsn", "sqlite:writable/sql2migration.db")
	v.SetDefault("metrics_file", "")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
}

// Load reads configuration into v from fs. cfgFile may be empty, in which
// case sql2migration.yaml is looked up in the working directory and its
// absence is not an error. Flags must already be bound to v.
func Load(v *viper.Viper, fs afero.Fs, cfgFile string) (*Config, error) {
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix("SQL2MIGRATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sql2migration")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if v.IsSet("prefix") {
		cfg.PrefixSource = "config"
	} else {
		p, found, err := PrefixFromEnvFile(fs, cfg.EnvFile)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Prefix, cfg.PrefixSource = p, "env_file"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MigrationPath) == "" {
		return errors.New("config: migration_path is required")
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("config: namespace is required")
	}
	return nil
}

// PrefixFromEnvFile reads database.default.DBPrefix from a CodeIgniter .env
// file. A missing file or key reports found == false.
func PrefixFromEnvFile(fs afero.Fs, path string) (prefix string, found bool, err error) {
	if path == "" {
		return "", false, nil
	}
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return "", false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !ok {
		return "", false, nil
	}

	// .env keys contain dots, so nesting must not split on them.
	ev := viper.NewWithOptions(viper.KeyDelimiter("::"))
	ev.SetFs(fs)
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	if !ev.IsSet(EnvPrefixKey) {
		return "", false, nil
	}
	return strings.TrimSpace(ev.GetString(EnvPrefixKey)), true, nil
}
