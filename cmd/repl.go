// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/roots/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lisp REPL",
	Long: `Start an interactive read-eval-print loop.

Definitions made at the prompt persist for the rest of the session.  An
expression may span several lines.  Line editing, tab completion of defined
names and command history are supported via readline.  Use Ctrl-D to exit.

Example REPL session:
  roots> (defun second (x) (car (cdr x)))
  ()
  roots> (second '(a b c))
  b
  roots> (cond ((eq 'a 'b) 'first) ('t 'second))
  second`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, done, err := envConfig()
		if err != nil {
			return err
		}
		defer done()
		opts := []repl.Option{
			repl.WithColor(colorMode()),
			repl.WithLogger(logrus.StandardLogger()),
			repl.WithEnvConfig(config...),
		}
		if viper.IsSet(keyHistoryFile) {
			opts = append(opts, repl.WithHistoryFile(viper.GetString(keyHistoryFile)))
		}
		return repl.RunRepl(filepath.Base(os.Args[0])+"> ", opts...)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().String(keyHistoryFile, "",
		"File used to persist input history (default is $HOME/"+repl.HistoryFileName+")")
	_ = viper.BindPFlag(keyHistoryFile, replCmd.Flags().Lookup(keyHistoryFile))
}
