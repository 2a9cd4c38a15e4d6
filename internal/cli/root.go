package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/trurl/internal/batch"
	"github.com/roach88/trurl/internal/edit"
)

// Version is the program version, overridable at link time with
// -ldflags "-X github.com/roach88/trurl/internal/cli.Version=...".
var Version = "0.2.0"

// RootOptions holds the flags of the trurl command.
type RootOptions struct {
	URLs      []string
	URLFile   onceString
	Appends   []string
	Sets      []string
	Redirect  onceString
	Get       onceString
	URLDecode bool
	JSON      bool
	Recipe    string
	Verbose   bool

	// IDs allows overriding the cycle ID generator (for testing).
	// If nil, defaults to batch.UUIDv7Generator.
	IDs batch.IDGenerator
}

// onceString is a string flag that remembers how often it was given, so that
// options allowed only once can be rejected instead of silently overwritten.
type onceString struct {
	value string
	count int
}

func (o *onceString) String() string { return o.value }

func (o *onceString) Set(v string) error {
	o.value = v
	o.count++
	return nil
}

func (o *onceString) Type() string { return "string" }

// NewRootCommand creates the trurl command.
func NewRootCommand() *cobra.Command {
	return NewTransformCommand(&RootOptions{})
}

// NewTransformCommand creates the trurl command around opts. Tests use it to
// inject deterministic helpers.
func NewTransformCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trurl [options] [URL...]",
		Short: "trurl - transpose URLs",
		Long: `Parse, edit and print URLs.

Each input URL is seeded, redirected, has its components set and its path
and query extended, and is then printed in full or through a --get template.
Without any input URL a single URL is built from --set alone.

Example:
  trurl https://example.com/a --append path=b --append query=x=1
  trurl --set host=example.org --set scheme=https
  trurl --url-file urls.txt --get '{host}'

URL components:
  ` + strings.Join(edit.Names(), ", "),
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate(progName + " version {{.Version}}\n")
	cmd.SetFlagErrorFunc(flagError)

	f := cmd.Flags()
	f.StringArrayVar(&opts.URLs, "url", nil, "URL to start with (repeatable)")
	f.Var(&opts.URLFile, "url-file", "read URLs from file, or stdin with -")
	f.StringArrayVar(&opts.Appends, "append", nil, "append data to component: path=segment or query=name=value")
	f.StringArrayVar(&opts.Sets, "set", nil, "set component: component=data, or component:=data to skip encoding")
	f.Var(&opts.Redirect, "redirect", "redirect the base URL to this")
	f.Var(&opts.Get, "get", "output URL component(s) through a {component} template")
	f.BoolVar(&opts.URLDecode, "urldecode", false, "URL decode the output")
	f.BoolVar(&opts.JSON, "json", false, "output every URL as a JSON object")
	f.StringVar(&opts.Recipe, "recipe", "", "YAML file with edits to apply before the flags")
	f.BoolVar(&opts.Verbose, "verbose", false, "log every batch cycle to stderr")

	return cmd
}

// flagError classifies flag parsing failures into exit codes.
func flagError(_ *cobra.Command, err error) error {
	msg := err.Error()
	if strings.HasPrefix(msg, "flag needs an argument") {
		return NewExitError(ExitArg, msg)
	}
	return NewExitError(ExitFlag, msg)
}

// newLogger configures the diagnostic logger. Warnings are always shown;
// per-cycle records only with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
