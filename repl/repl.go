// Copyright © 2018 The ELPS authors

package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/roots/diagnostic"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser"
	"github.com/luthersystems/roots/parser/lexer"
	"github.com/luthersystems/roots/parser/rdparser"
	"github.com/luthersystems/roots/parser/token"
	"github.com/sirupsen/logrus"
)

// HistoryFileName is the name of the history file kept in the user's home
// directory.
const HistoryFileName = ".roots_history"

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	historyFile *string
	color       diagnostic.ColorMode
	log         logrus.FieldLogger
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file used to persist input history.  An empty
// path disables history.  The default is HistoryFileName in the user's home
// directory.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = &path
	}
}

// WithColor controls the use of color when errors are displayed.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithLogger sets the logger for messages about the REPL itself.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithEnvConfig applies config to the environment created by RunRepl.
func WithEnvConfig(cfgs ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a simple repl in a new root environment containing the
// primitive functions.
func RunRepl(prompt string, opts ...Option) error {
	env := lisp.NewEnv(nil)

	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
	}

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)

	err := lisp.InitializeUserEnv(env, envOpts...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}

	return RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl with env as a root environment.  Definitions made
// at the prompt persist in env.  RunEnv returns when its input is exhausted.
func RunEnv(env *lisp.LEnv, prompt, cont string, opts ...Option) error {
	if env.Parent != nil {
		return errors.New("REPL environment is not a root environment")
	}

	p := rdparser.NewInteractive(nil)
	p.SetPrompts(prompt, cont)

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	histFile := historyPath()
	if cfg.historyFile != nil {
		histFile = *cfg.historyFile
	}
	ensureHistoryFilePermissions(cfg.log, histFile)

	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stderr,
		Stderr:            env.Runtime.Stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}

	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	// Each line is scanned as its own source so that errors can quote it.
	renderer := &diagnostic.Renderer{
		Color:   cfg.color,
		Sources: make(map[string]string),
	}
	nline := 0

	p.Read = func() []*token.Token {
		rl.SetPrompt(p.Prompt())
		for {
			line, err := rl.ReadSlice()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				if err != io.EOF {
					cfg.log.WithError(err).Warn("Unable to read input")
				}
				return []*token.Token{{
					Type:   token.EOF,
					Source: &token.Location{File: "stdin", Pos: -1},
				}}
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			nline++
			name := fmt.Sprintf("stdin#%d", nline)
			renderer.Sources[name] = string(line)
			toks, err := lexer.Tokenize(token.NewScanner(name, bytes.NewReader(line)))
			if err != nil {
				cfg.log.WithError(err).Warn("Unable to tokenize input")
				continue
			}
			if len(toks) != 0 {
				return toks
			}
		}
	}

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = renderer.RenderError(env.Runtime.Stderr, err)
			continue
		}
		cfg.log.WithFields(logrus.Fields{
			"expr": expr.String(),
			"env":  env.ID,
		}).Debug("Evaluating expression")
		val, err := env.Eval(expr)
		if err != nil {
			_ = renderer.RenderError(env.Runtime.Stderr, err)
			continue
		}
		fmt.Fprintln(env.Runtime.Stderr, val) //nolint:errcheck // best-effort REPL output
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// ensureHistoryFilePermissions creates the history file if necessary and
// makes it readable only by its owner.
func ensureHistoryFilePermissions(log logrus.FieldLogger, path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is the user's own history file
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Unable to create history file")
		return
	}
	_ = f.Close()
	err = os.Chmod(path, 0600)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Unable to restrict history file permissions")
	}
}
