package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satyammistari/sql2migration/internal/config"
	"github.com/satyammistari/sql2migration/internal/reporter"
)

var (
	cfgFile string
	cfg     *config.Config
	v       = viper.New()
	appFs   = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "sql2migration",
	Short: "Convert a MySQL dump into CodeIgniter 4 migrations",
	Long: `sql2migration reads a MySQL/MariaDB DDL dump (CREATE TABLE, ALTER TABLE ... FOREIGN KEY,
CREATE TRIGGER) and turns it into ordered CodeIgniter 4 migration classes:
tables first, then foreign keys, then triggers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v, appFs, cfgFile)
		if err != nil {
			return err
		}
		reporter.NoColor = cfg.NoColor
		reporter.Verbose = cfg.Verbose
		if cfg.PrefixSource == "env_file" {
			reporter.Debug(fmt.Sprintf("table prefix %q read from %s", cfg.Prefix, cfg.EnvFile))
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to a YAML config file (default ./sql2migration.yaml)")
	pf.String("prefix", "", "table prefix to strip (default: database.default.DBPrefix from .env)")
	pf.String("migration-path", "", "directory migrations are written to")
	pf.String("namespace", "", "PHP namespace of generated migrations")
	pf.String("env-file", "", "CodeIgniter .env file to read the table prefix from")
	pf.String("history-dsn", "", "run history database (sqlite:path, postgres://..., mysql://...)")
	pf.String("metrics-file", "", "write Prometheus textfile metrics to this path")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "print debug output")

	for key, flag := range map[string]string{
		"prefix":         "prefix",
		"migration_path": "migration-path",
		"namespace":      "namespace",
		"env_file":       "env-file",
		"history_dsn":    "history-dsn",
		"metrics_file":   "metrics-file",
		"no_color":       "no-color",
		"verbose":        "verbose",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reporter.Err(err.Error())
		os.Exit(1)
	}
}
