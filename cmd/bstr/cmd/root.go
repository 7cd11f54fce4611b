// Package cmd defines the bstr command tree.
package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/bytestr/internal/app"
	"github.com/dshills/bytestr/internal/config"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const (
	groupOps   = "ops"
	groupTools = "tools"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	format     string
	pretty     bool
	logLevel   string
}

// NewRootCommand builds the bstr command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "bstr",
		Short: "Byte string toolkit",
		Long: `bstr applies byte string operations from the command line, from JSON
batch documents, from Lua scripts, or interactively.

String operations read their input from --text, or from standard input
with one trailing newline removed. Negative integers are taken as
arguments, so "bstr erase -t hello -3 2" works; put other arguments that
start with a dash after "--".

Settings are layered: built-in defaults, then the --config file (TOML or
YAML), then BSTR_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (TOML or YAML)")
	pf.StringVarP(&opts.format, "format", "f", "", "Output format: text, json or yaml")
	pf.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddGroup(
		&cobra.Group{ID: groupOps, Title: "String operations:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)

	for _, op := range app.Operations() {
		root.AddCommand(newOpCommand(opts, op))
	}
	root.AddCommand(
		newBatchCommand(opts),
		newScriptCommand(opts),
		newREPLCommand(opts),
		newVersionCommand(info),
	)
	return root
}

// loadConfig resolves the configuration and applies flag overrides.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Options{Path: o.configPath})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = o.pretty
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(o.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// application creates an Application writing to the command's streams.
func (o *globalOptions) application(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.Options{
		Stdout:    cmd.OutOrStdout(),
		LogOutput: cmd.ErrOrStderr(),
	})
}

// readInput returns --text when given, otherwise standard input without
// its trailing newline.
func readInput(cmd *cobra.Command, text string) (string, error) {
	if cmd.Flags().Changed("text") {
		return text, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func newOpCommand(opts *globalOptions, op app.Operation) *cobra.Command {
	var text string

	c := &cobra.Command{
		Use:     op.Usage(),
		Short:   op.Summary,
		GroupID: groupOps,
		// Flags are parsed by parseOpArgs so negative indices stay positional.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, err := parseOpArgs(cmd, args)
			if err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			if err := cobra.ExactArgs(len(op.Args))(cmd, args); err != nil {
				return err
			}

			input, err := readInput(cmd, text)
			if err != nil {
				return err
			}
			a, err := opts.application(cmd)
			if err != nil {
				return err
			}
			_, err = a.Run(input, op.Name, args...)
			return err
		},
	}
	c.Flags().StringVarP(&text, "text", "t", "", "Input string (default: standard input)")
	return c
}

// parseOpArgs separates flags from positional arguments and parses the
// flags. Integers such as -3 are positional; everything after "--" is too.
func parseOpArgs(cmd *cobra.Command, args []string) ([]string, error) {
	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case arg == "-" || !strings.HasPrefix(arg, "-") || isInteger(arg):
			positional = append(positional, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if takesValue(cmd, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		}
	}

	cmd.DisableFlagParsing = false
	defer func() { cmd.DisableFlagParsing = true }()
	if err := cmd.ParseFlags(flagArgs); err != nil {
		return nil, err
	}
	return positional, nil
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// takesValue reports whether arg names a flag whose value is the next
// argument, as in "-t hello" or "--format json".
func takesValue(cmd *cobra.Command, arg string) bool {
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f = cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(name)
		}
	} else {
		if len(arg) != 2 {
			return false
		}
		f = cmd.Flags().ShorthandLookup(arg[1:])
		if f == nil {
			f = cmd.InheritedFlags().ShorthandLookup(arg[1:])
		}
	}
	return f != nil && f.NoOptDefVal == ""
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show version information",
		GroupID: groupTools,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bstr %s\n", info.Version)
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Built: %s\n", info.Date)
		},
	}
}
