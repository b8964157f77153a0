// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/roots/diagnostic"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key may be set in the config file, with a
// command line flag of the same name or with an environment variable such as
// ROOTS_MAX_STACK_HEIGHT.
const (
	keyReader         = "reader"
	keyMaxStackHeight = "max-stack-height"
	keyColor          = "color"
	keyTrace          = "trace"
	keyLogLevel       = "log-level"
	keyHistoryFile    = "history-file"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roots",
	Short: "roots is a minimal McCarthy Lisp interpreter",
	Long: `roots is an interpreter for the original Lisp described by John McCarthy:
symbols, lists, and functions, with the special operators quote, cond, lambda
and defun and the primitive functions car, cdr, atom, eq and cons.

Getting started:
  roots run file.lisp               Run a Lisp source file
  roots run -p -e "(car '(a b))"    Evaluate an expression and print it
  roots repl                        Start an interactive REPL
  roots doc cond                    Show documentation for an operator
  roots doc                         Show the language guide

Language overview:
  The empty list () is false. Every other value is true.
  Functions are defined with (defun name (args) body) and called as (name args).
  Closures capture their defining environment by reference, so functions may
  refer to functions defined after them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !isReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.roots.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyReader, parser.ReaderRecursiveDescent,
		fmt.Sprintf("Source reader implementation: %q or %q.", parser.ReaderRecursiveDescent, parser.ReaderParsec))
	flags.Int(keyMaxStackHeight, 0, "Maximum function call depth (0 means unlimited).")
	flags.String(keyTrace, traceNone,
		fmt.Sprintf("Emit a span for each function application: %q, %q or %q.", traceNone, traceOpenTelemetry, traceOpenCensus))
	flags.String(keyLogLevel, logrus.WarnLevel.String(), "Log level for messages about the interpreter itself.")
	for _, key := range []string{keyColor, keyReader, keyMaxStackHeight, keyTrace, keyLogLevel} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.WithError(err).Fatal("Unable to locate home directory")
		}

		// Search config in home directory with name ".roots" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".roots")
	}

	viper.SetEnvPrefix("roots")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	level, err := logrus.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		logrus.WithError(err).Warn("Invalid log level")
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if configErr == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Info("Using config file")
	} else if cfgFile != "" {
		logrus.WithError(configErr).Fatal("Unable to read config file")
	}
}

// envConfig returns the lisp.Config options selected by the command line and
// configuration file.  The returned function must be called once evaluation
// is complete so that any trace data is flushed.
func envConfig() ([]lisp.Config, func(), error) {
	reader, ok := parser.NewReaderName(viper.GetString(keyReader))
	if !ok {
		return nil, nil, fmt.Errorf("unknown reader: %s", viper.GetString(keyReader))
	}
	config := []lisp.Config{
		lisp.WithReader(reader),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
	}
	if n := viper.GetInt(keyMaxStackHeight); n > 0 {
		config = append(config, lisp.WithMaximumStackHeight(n))
	}
	tracing, done, err := traceConfig(viper.GetString(keyTrace), logrus.StandardLogger())
	if err != nil {
		return nil, nil, err
	}
	if tracing != nil {
		config = append(config, tracing)
	}
	return config, done, nil
}

func colorMode() diagnostic.ColorMode {
	mode, ok := diagnostic.ParseColorMode(viper.GetString(keyColor))
	if !ok {
		logrus.WithField("color", viper.GetString(keyColor)).Warn("Invalid color mode")
	}
	return mode
}

// reportedError marks an error which has already been rendered for the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	_, ok := err.(*reportedError)
	return ok
}
