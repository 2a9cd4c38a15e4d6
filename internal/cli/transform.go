package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/trurl/internal/batch"
	"github.com/roach88/trurl/internal/edit"
	"github.com/roach88/trurl/internal/output"
	"github.com/roach88/trurl/internal/transform"
)

// invocation is the merged input of one run: recipe first, then flags.
type invocation struct {
	urls    []string
	sets    []string
	appends []string

	urlFile    string
	hasURLFile bool
	redirect   string
	hasRedir   bool
	get        string
	hasGet     bool

	urlDecode bool
	json      bool
}

// resolveInvocation merges the recipe (if any) with the command line.
func resolveInvocation(opts *RootOptions, args []string) (*invocation, error) {
	inv := &invocation{}
	if opts.Recipe != "" {
		recipe, err := LoadRecipe(opts.Recipe)
		if err != nil {
			return nil, WrapExitError(ExitFile, "--recipe "+opts.Recipe, err)
		}
		inv.urls = append(inv.urls, recipe.URLs...)
		inv.sets = append(inv.sets, recipe.Set...)
		inv.appends = append(inv.appends, recipe.Append...)
		inv.urlFile, inv.hasURLFile = recipe.URLFile, recipe.URLFile != ""
		inv.redirect, inv.hasRedir = recipe.Redirect, recipe.Redirect != ""
		inv.get, inv.hasGet = recipe.Get, recipe.Get != ""
		inv.urlDecode = recipe.URLDecode
		inv.json = recipe.JSON
	}

	once := []struct {
		name  string
		flag  *onceString
		value *string
		has   *bool
	}{
		{"--url-file", &opts.URLFile, &inv.urlFile, &inv.hasURLFile},
		{"--redirect", &opts.Redirect, &inv.redirect, &inv.hasRedir},
		{"--get", &opts.Get, &inv.get, &inv.hasGet},
	}
	for _, o := range once {
		if o.flag.count == 0 {
			continue
		}
		if o.flag.count > 1 || *o.has {
			return nil, NewExitError(ExitFlag, fmt.Sprintf("only one %s is supported", o.name))
		}
		*o.value, *o.has = o.flag.value, true
	}

	inv.urls = append(inv.urls, opts.URLs...)
	inv.urls = append(inv.urls, args...)
	inv.sets = append(inv.sets, opts.Sets...)
	inv.appends = append(inv.appends, opts.Appends...)
	inv.urlDecode = inv.urlDecode || opts.URLDecode
	inv.json = inv.json || opts.JSON

	if inv.json && inv.hasGet {
		return nil, NewExitError(ExitFlag, "--get and --json cannot be combined")
	}
	return inv, nil
}

// edits builds the EditSet, validating every argument.
func (inv *invocation) edits() (edit.EditSet, error) {
	b := edit.NewBuilder()
	for _, s := range inv.sets {
		if err := b.AddSet(s); err != nil {
			return edit.EditSet{}, err
		}
	}
	for _, a := range inv.appends {
		if err := b.AddAppend(a); err != nil {
			return edit.EditSet{}, err
		}
	}
	if inv.hasRedir {
		if err := b.AddRedirect(inv.redirect); err != nil {
			return edit.EditSet{}, err
		}
	}
	return b.Build(), nil
}

func (inv *invocation) outputSpec() output.Spec {
	return output.Spec{
		Template:    inv.get,
		HasTemplate: inv.hasGet,
		Decode:      inv.urlDecode,
		JSON:        inv.json,
	}
}

// openURLFile opens the line source; "-" is stdin.
func openURLFile(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func runTransform(cmd *cobra.Command, opts *RootOptions, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	inv, err := resolveInvocation(opts, args)
	if err != nil {
		return err
	}
	edits, err := inv.edits()
	if err != nil {
		return asExitError(err)
	}

	src := batch.Source{URLs: inv.urls}
	if inv.hasURLFile {
		r, closeFn, err := openURLFile(inv.urlFile, cmd.InOrStdin())
		if err != nil {
			return WrapExitError(ExitFile, fmt.Sprintf("--url-file %s not found", inv.urlFile), err)
		}
		defer closeFn()
		src.Lines = r
	}

	// Use command's context if available (for testing), otherwise create one
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	driver := batch.New(batch.Config{
		Pipeline:  transform.New(edits, logger),
		Formatter: output.NewFormatter(inv.outputSpec(), out, logger),
		Logger:    logger,
		IDs:       opts.IDs,
	})

	n, runErr := driver.Run(ctx, src)
	// Lines written before a terminal error still reach the output.
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("batch finished", "cycles", n)
	return asExitError(runErr)
}
