package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/vimwiki/convert"
	"github.com/gerunddev/vimwiki/diff"
	"github.com/gerunddev/vimwiki/parse"
	"github.com/gerunddev/vimwiki/styles"
)

// HTML renders one page to stdout, or to the file given with -o
func HTML(args []string) {
	if err := runHTML(args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fail(err)
	}
}

func runHTML(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, []string{"--document", "--sanitize"}, []string{"-o"})
	if err != nil {
		return err
	}
	if len(o.args) != 1 {
		return fmt.Errorf("usage: vimwiki html [--document] [--sanitize] [-o out.html] <page.wiki|->")
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, cleanup := newLogger(cfg)
	defer cleanup()
	log.ConfigLoaded(cfg.Root, cfg.OutputDir, cfg.Extension)

	path := o.args[0]
	src, err := readSource(path, stdin)
	if err != nil {
		return err
	}

	opts, err := cfg.RenderOptions("", nil)
	if err != nil {
		return err
	}
	body, meta, err := convert.ToHTML(src, opts)
	if err != nil {
		log.ParseProblem(path, err)
		if convert.Fatal(err) {
			return err
		}
		reportProblems(stderr, path, src, err)
	}

	if o.flags["--sanitize"] || cfg.Sanitize {
		body = convert.Sanitize(body)
	}
	out := body
	if o.flags["--document"] {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out, err = convert.Document(body, meta, convert.DocumentOptions{Title: title, Stylesheet: cfg.Stylesheet})
		if err != nil {
			return err
		}
	}

	dest := o.values["-o"]
	if dest == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	log.PageRendered(path, dest, len(meta.Unresolved))
	fmt.Fprintln(stderr, styles.SuccessStyle.Render("✓ Wrote "+dest))
	return nil
}

// Fmt prints pages in canonical form, rewrites them with --write or shows
// what would change with --diff
func Fmt(args []string) {
	if err := runFmt(args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fail(err)
	}
}

func runFmt(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, []string{"--write", "-w", "--diff", "-d"}, nil)
	if err != nil {
		return err
	}
	if len(o.args) == 0 {
		return fmt.Errorf("usage: vimwiki fmt [--write|--diff] <page.wiki|->...")
	}
	write := o.flags["--write"] || o.flags["-w"]
	showDiff := o.flags["--diff"] || o.flags["-d"]

	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, cleanup := newLogger(cfg)
	defer cleanup()

	failed := 0
	for _, path := range o.args {
		if write && path == "-" {
			return fmt.Errorf("cannot write back to stdin")
		}
		src, err := readSource(path, stdin)
		if err != nil {
			return err
		}

		formatted, err := convert.Reformat(src)
		if convert.Fatal(err) {
			log.FileError(path, err)
			reportProblems(stderr, path, src, err)
			failed++
			continue
		}

		switch {
		case showDiff:
			io.WriteString(stdout, diff.Render(diff.Generate(filepath.Base(path), src, formatted)))
		case write:
			changed := formatted != src
			if changed {
				if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintln(stderr, styles.SuccessStyle.Render("✓ Formatted "+path))
			}
			log.PageFormatted(path, changed)
		default:
			io.WriteString(stdout, formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d page(s) could not be formatted", failed)
	}
	return nil
}

// reportProblems prints every parse problem in err with its source line
func reportProblems(w io.Writer, path, src string, err error) {
	var perr *parse.Error
	if !errors.As(err, &perr) {
		fmt.Fprintln(w, styles.ErrorStyle.Render(path+": "+err.Error()))
		return
	}
	for _, e := range perr.Entries {
		lines := strings.SplitN(e.Show(src), "\n", 3)
		style := styles.WarningStyle
		if e.Kind == parse.UnterminatedBlock {
			style = styles.ErrorStyle
		}
		fmt.Fprintln(w, styles.LocationStyle.Render(path+":")+style.Render(lines[0]))
		if len(lines) == 3 {
			fmt.Fprintln(w, lines[1])
			fmt.Fprintln(w, styles.CaretStyle.Render(lines[2]))
		}
	}
}
