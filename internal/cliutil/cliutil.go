// Package cliutil holds the bootstrap code shared by the cmd/ tools:
// .env loading, logrus setup, and viper config binding for flags common
// to every graph-running command (sort buffer size, spill directory,
// log level).
package cliutil

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadDotEnv loads a .env file from the working directory if one exists.
// A missing file is not an error; any other read failure is returned.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// NewLogger builds the logrus logger shared by a command invocation,
// writing timestamped text lines to stderr at the level named by levelName (falling back
// to Info on an unrecognized name).
func NewLogger(levelName string) *logrus.Entry {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.Level = level

	return logrus.NewEntry(log)
}

// BindRunFlags registers the --log-level, --sort-buffer-rows and
// --spill-dir flags common to every graph-running command, binding each
// through viper so it may also be set via ROWGRAPH_* environment
// variables. No config file is read.
func BindRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.Int("sort-buffer-rows", 0, "external sort in-memory row buffer (0 = engine default)")
	flags.String("spill-dir", "", "directory for external sort spill files (empty = OS temp dir)")

	viper.SetEnvPrefix("ROWGRAPH")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("sort-buffer-rows", flags.Lookup("sort-buffer-rows"))
	_ = viper.BindPFlag("spill-dir", flags.Lookup("spill-dir"))
}

// LogLevel returns the bound --log-level value.
func LogLevel() string { return viper.GetString("log-level") }

// SortBufferRows returns the bound --sort-buffer-rows value.
func SortBufferRows() int { return viper.GetInt("sort-buffer-rows") }

// SpillDir returns the bound --spill-dir value.
func SpillDir() string { return viper.GetString("spill-dir") }
