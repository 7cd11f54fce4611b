package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/bytestr/internal/repl"
	"github.com/dshills/bytestr/internal/script"
)

func newBatchCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file]",
		Short: "Run a JSON batch document",
		Long: `Run a JSON batch document from file, or from standard input when no file
is given:

  {"input": "a,b", "ops": [["append", ",c"], {"op": "split", "args": [","]}]}

Every step's result is printed. Execution stops at the first failing step.`,
		GroupID: groupTools,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.application(cmd)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			_, err = a.RunBatch(in)
			return err
		},
	}
}

func newScriptCommand(opts *globalOptions) *cobra.Command {
	var (
		code  string
		watch bool
	)

	c := &cobra.Command{
		Use:   "script [file]",
		Short: "Run a Lua script",
		Long: `Run a Lua script with the bstr module loaded, from file or from -e.

  bstr script -e 'print(bstr.new("abc"):reverse())'

With --watch the script is run again each time the file changes.`,
		GroupID: groupTools,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cmd.Flags().Changed("eval") && len(args) > 0:
				return errors.New("give either a file or -e, not both")
			case !cmd.Flags().Changed("eval") && len(args) == 0:
				return errors.New("a script file or -e is required")
			case watch && len(args) == 0:
				return errors.New("--watch requires a script file")
			}

			a, err := opts.application(cmd)
			if err != nil {
				return err
			}
			runner := script.NewRunner(a.Config().Script, cmd.OutOrStdout(), a.Logger())

			ctx := cmd.Context()
			switch {
			case len(args) == 0:
				return runner.RunString(ctx, code)
			case watch:
				return runner.Watch(ctx, args[0], func(err error) {
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					}
				})
			default:
				return runner.Run(ctx, args[0])
			}
		},
	}
	c.Flags().StringVarP(&code, "eval", "e", "", "Lua code to run")
	c.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the script when the file changes")
	return c
}

func newREPLCommand(opts *globalOptions) *cobra.Command {
	var text string

	c := &cobra.Command{
		Use:     "repl",
		Short:   "Start an interactive shell",
		GroupID: groupTools,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.application(cmd)
			if err != nil {
				return err
			}
			sh := repl.New(a.NewSession(text), a.Config().REPL, a.Logger())
			return sh.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	c.Flags().StringVarP(&text, "text", "t", "", "Initial contents")
	return c
}
