// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/luthersystems/roots/diagnostic"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisp/x/profiler"
	"github.com/luthersystems/roots/lisputil"
	"github.com/spf13/cobra"
)

type runOptions struct {
	expression bool
	print      bool
	excludes   []string
	cpuProfile string
	callgrind  string
	color      diagnostic.ColorMode
}

var runOpts runOptions

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE|DIR|EXPR...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.

Files are evaluated in order in a single environment, so functions defined
in one file may be used by the files that follow it.  An argument of the
form DIR/... runs every .lisp file beneath DIR.  Evaluation stops at the first error.

Examples:
  roots run prog.lisp                       Run a file
  roots run -p -e "(cons 'a '(b c))"        Print the value of an expression
  roots run --exclude testdata src/...      Run a tree of files
  roots run --callgrind out.prof prog.lisp  Write a callgrind profile`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, done, err := envConfig()
		if err != nil {
			return err
		}
		defer done()
		runOpts.color = colorMode()
		return runArgs(cmd.OutOrStdout(), cmd.ErrOrStderr(), &runOpts, config, args)
	},
}

// runArgs evaluates args in a new root environment created with config.
// Errors from evaluation are rendered to errOut and returned as a
// reportedError.
func runArgs(out, errOut io.Writer, opts *runOptions, config []lisp.Config, args []string) error {
	env := lisp.NewEnv(nil)
	if err := lisp.InitializeUserEnv(env, config...); err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}

	renderer := &diagnostic.Renderer{
		Color:   opts.color,
		Sources: make(map[string]string),
	}

	stop, err := startProfilers(env, opts)
	if err != nil {
		return err
	}
	defer stop()

	if opts.expression {
		for i, expr := range args {
			name := fmt.Sprintf("expr#%d", i+1)
			renderer.Sources[name] = expr
			vals, err := env.LoadString(name, expr)
			if opts.print {
				_, _ = io.WriteString(out, lisputil.FormatResults(vals))
			}
			if err != nil {
				return report(renderer, errOut, err)
			}
		}
		return nil
	}

	files, err := expandArgs(args, opts.excludes)
	if err != nil {
		return err
	}
	for _, path := range files {
		vals, err := env.LoadFile(path)
		if opts.print {
			_, _ = io.WriteString(out, lisputil.FormatResults(vals))
		}
		if err != nil {
			return report(renderer, errOut, err)
		}
	}
	return nil
}

// startProfilers installs the profilers requested in opts.  Only one
// profiler may observe a runtime at a time.
func startProfilers(env *lisp.LEnv, opts *runOptions) (func(), error) {
	if opts.cpuProfile != "" && opts.callgrind != "" {
		return nil, errors.New("--cpu-profile and --callgrind may not be used together")
	}
	if (opts.cpuProfile != "" || opts.callgrind != "") && env.Runtime.Profiler != nil {
		return nil, errors.New("profiling may not be combined with tracing")
	}
	switch {
	case opts.cpuProfile != "":
		f, err := os.Create(opts.cpuProfile) //#nosec G304
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		p := profiler.NewPprofAnnotator(env.Runtime, context.Background())
		if err := lisp.WithProfiler(p)(env); err != nil {
			pprof.StopCPUProfile()
			_ = f.Close()
			return nil, err
		}
		return func() {
			_ = p.Complete()
			pprof.StopCPUProfile()
			_ = f.Close()
		}, nil
	case opts.callgrind != "":
		p := profiler.NewCallgrindProfiler(env.Runtime)
		if err := p.SetFile(opts.callgrind); err != nil {
			return nil, err
		}
		if err := lisp.WithProfiler(p)(env); err != nil {
			env.Runtime.Profiler = nil
			return nil, err
		}
		return func() { _ = p.Complete() }, nil
	}
	return func() {}, nil
}

func report(renderer *diagnostic.Renderer, w io.Writer, err error) error {
	var lerr *lisp.ErrorVal
	if !errors.As(err, &lerr) {
		return err
	}
	if rerr := renderer.RenderError(w, err); rerr != nil {
		return err
	}
	return &reportedError{err: err}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runOpts.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runOpts.print, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().StringArrayVar(&runOpts.excludes, "exclude", nil,
		"Glob pattern for files to skip when expanding directories (repeatable)")
	runCmd.Flags().StringVar(&runOpts.cpuProfile, "cpu-profile", "",
		"Write a pprof CPU profile labeled with lisp function names to this file")
	runCmd.Flags().StringVar(&runOpts.callgrind, "callgrind", "",
		"Write a callgrind profile of function applications to this file")
}
