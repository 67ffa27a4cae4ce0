package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/internal/build"
	"github.com/gerunddev/vimwiki/parse"
	"github.com/gerunddev/vimwiki/render"
	"github.com/gerunddev/vimwiki/styles"
)

// Check reports parse problems, and with --links unresolved links, for the
// given pages or for the whole wiki when none are given
func Check(args []string) {
	if err := runCheck(args, os.Stdin, os.Stdout); err != nil {
		fail(err)
	}
}

func runCheck(args []string, stdin io.Reader, stdout io.Writer) error {
	o, err := parseArgs(args, []string{"--links"}, nil)
	if err != nil {
		return err
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(o.args) == 0 {
		// Whole wiki: a dry run build resolves links against every page
		builder := build.NewBuilder(cfg)
		builder.DryRun = true
		log, cleanup := newLogger(cfg)
		defer cleanup()
		builder.SetLogger(log)

		result, err := builder.Build()
		if err != nil {
			return err
		}
		problems := 0
		for _, p := range result.Pages {
			path := filepath.Join(cfg.Root, p.Source)
			if p.Err != nil {
				problems++
				src, _ := readSource(path, stdin)
				reportProblems(stdout, p.Source, src, p.Err)
				continue
			}
			if len(p.Problems) > 0 {
				problems += len(p.Problems)
				src, _ := readSource(path, stdin)
				reportProblems(stdout, p.Source, src, &parse.Error{Entries: p.Problems})
			}
			if o.flags["--links"] {
				problems += len(p.Unresolved)
				reportUnresolved(stdout, p.Source, p.Unresolved)
			}
		}
		return checkSummary(stdout, len(result.Pages), problems)
	}

	problems := 0
	for _, path := range o.args {
		src, err := readSource(path, stdin)
		if err != nil {
			return err
		}
		page, err := parse.Parse(src, parse.Options{TrackRegions: true, ComputeLineColumns: true})
		if err != nil {
			var perr *parse.Error
			if errors.As(err, &perr) {
				problems += len(perr.Entries)
			}
			reportProblems(stdout, path, src, err)
		}
		if page != nil && o.flags["--links"] {
			var exists func(ast.Link) bool
			if path != "-" {
				exists = build.ExistsOnDisk(filepath.Dir(path), cfg.Extension)
			}
			opts, err := cfg.RenderOptions("", exists)
			if err != nil {
				return err
			}
			_, meta := render.Render(page, opts)
			problems += len(meta.Unresolved)
			reportUnresolved(stdout, path, meta.Unresolved)
		}
	}
	return checkSummary(stdout, len(o.args), problems)
}

func reportUnresolved(w io.Writer, path string, targets []string) {
	for _, t := range targets {
		fmt.Fprintln(w, styles.LocationStyle.Render(path+":")+" "+
			styles.WarningStyle.Render("unresolved link")+" "+styles.LinkStyle.Render(t))
	}
}

func checkSummary(w io.Writer, pages, problems int) error {
	if problems > 0 {
		return fmt.Errorf("%d problem(s) in %d page(s)", problems, pages)
	}
	fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ %d page(s) ok", pages)))
	return nil
}
