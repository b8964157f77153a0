// Copyright © 2021 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/roots/diagnostic"
	"github.com/luthersystems/roots/docs"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisputil"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const docWidth = 72

type docOptions struct {
	sourceFile string
	example    string
	list       bool
}

// DocCommand returns the doc command.  Hosts embedding the interpreter can
// pass WithEnv so that their own builtins are found.
func DocCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var dopts docOptions
	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for the language and its functions",
		Long: `Show documentation for the special operators and primitive functions.

With no arguments the language guide is printed.  With a NAME the
documentation for that operator or function is printed.  Functions defined
in lisp source are shown by their definition; use -f to load a source file
first.

Examples:
  roots doc                        Show the language guide
  roots doc cond                   Show docs for the cond operator
  roots doc -f prog.lisp subst     Load a file, then show subst
  roots doc --list                 List the example programs
  roots doc --example eval         Print an example program`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case dopts.list:
				return docListExamples(out)
			case dopts.example != "":
				return docExample(out, dopts.example)
			case len(args) == 0:
				_, err := io.WriteString(out, docs.LangGuide)
				return err
			}
			env, err := cfg.docEnv(dopts.sourceFile)
			if err != nil {
				var lerr *lisp.ErrorVal
				if errors.As(err, &lerr) {
					renderer := &diagnostic.Renderer{Color: colorMode()}
					_ = renderer.RenderError(cmd.ErrOrStderr(), err)
					return &reportedError{err: err}
				}
				return err
			}
			return docName(out, env, args[0])
		},
	}
	cmd.Flags().StringVarP(&dopts.sourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before looking up NAME.")
	cmd.Flags().StringVar(&dopts.example, "example", "",
		"Print the source of the named example program.")
	cmd.Flags().BoolVarP(&dopts.list, "list", "l", false,
		"List the example programs.")
	return cmd
}

// docEnv returns the environment in which names are looked up.
func (c *cmdConfig) docEnv(sourceFile string) (*lisp.LEnv, error) {
	env := c.env
	if env == nil {
		var err error
		env, err = lisputil.NewEnv(lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}))
		if err != nil {
			return nil, err
		}
	}
	if sourceFile != "" {
		if _, err := env.LoadFile(sourceFile); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func docListExamples(w io.Writer) error {
	for _, name := range docs.Examples() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func docExample(w io.Writer, name string) error {
	src, ok := docs.Example(name)
	if !ok {
		return fmt.Errorf("unknown example: %s", name)
	}
	_, err := io.WriteString(w, src)
	return err
}

// docName writes the documentation for name as it is bound in env.
func docName(w io.Writer, env *lisp.LEnv, name string) error {
	if lisp.IsSpecialOp(name) {
		return docLanguage(w, name)
	}
	v, err := env.Get(lisp.Symbol(name))
	if err != nil {
		return fmt.Errorf("no documentation for %s", name)
	}
	switch {
	case v.Type != lisp.LFun:
		_, err = fmt.Fprintf(w, "%s = %v\n", name, v)
	case !v.IsBuiltin():
		def := lisp.SExpr([]*lisp.LVal{lisp.Symbol("defun"), lisp.Symbol(name), v.Params(), v.Body()})
		_, err = fmt.Fprintln(w, def)
	case lisp.Docstring(v.FunName()) != "":
		err = docLanguage(w, v.FunName())
	default:
		_, err = fmt.Fprintf(w, "%s\n\n%s\n", name, docParagraph("Builtin function provided by the host program."))
	}
	return err
}

func docLanguage(w io.Writer, name string) error {
	cells := []*lisp.LVal{lisp.Symbol(name)}
	if formals := lisp.DocFormals(name); formals != nil {
		cells = append(cells, formals.Cells...)
	}
	kind := "Function"
	if lisp.IsSpecialOp(name) {
		kind = "Special operator"
	}
	_, err := fmt.Fprintf(w, "%v\n  %s\n\n%s\n", lisp.SExpr(cells), kind, docParagraph(lisp.Docstring(name)))
	return err
}

func docParagraph(text string) string {
	wrapped := wordwrap.String(strings.TrimSpace(text), docWidth)
	return indent.String(wrapped, 2)
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
