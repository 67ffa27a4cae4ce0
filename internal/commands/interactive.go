package commands

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/vimwiki/convert"
	"github.com/gerunddev/vimwiki/internal/build"
	"github.com/gerunddev/vimwiki/internal/config"
	"github.com/gerunddev/vimwiki/internal/logger"
	"github.com/gerunddev/vimwiki/internal/tui"
	"github.com/gerunddev/vimwiki/styles"
)

// Build renders the whole wiki into the output directory
func Build(args []string) {
	o, err := parseArgs(args, []string{"--dry-run"}, nil)
	if err != nil {
		fail(err)
	}
	cfg, err := o.loadConfig()
	if err != nil {
		fail(fmt.Errorf("failed to load config: %w", err))
	}

	builder := build.NewBuilder(cfg)
	builder.DryRun = o.flags["--dry-run"]
	log, cleanup := newLogger(cfg)
	defer cleanup()
	builder.SetLogger(log)

	if !isTerminal(os.Stdout) {
		if err := runBuildPlain(builder, cfg, os.Stdout); err != nil {
			fail(err)
		}
		return
	}

	m := tui.InitBuildModel(cfg.Root)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	// Run the build in a goroutine and send the result to the program
	go func() {
		result, err := builder.Build()
		p.Send(tui.BuildMsg{Result: result, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		fail(err)
	}
	if bm, ok := final.(interface{ Failed() bool }); ok && bm.Failed() {
		os.Exit(1)
	}
}

// runBuildPlain builds without the progress display and prints one line
// per failed page followed by the summary
func runBuildPlain(builder *build.Builder, cfg *config.Config, w io.Writer) error {
	if builder.DryRun {
		fmt.Fprintln(w, styles.DimStyle.Render("(dry run - no files will be written)"))
	}
	fmt.Fprintf(w, "%s → %s\n", styles.DimStyle.Render(cfg.Root), styles.DimStyle.Render(cfg.OutputDir))

	result, err := builder.Build()
	if err != nil {
		return err
	}
	for _, p := range result.Pages {
		if p.Err != nil {
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+p.Err.Error()))
		}
	}
	fmt.Fprintln(w, styles.SuccessStyle.Render("✓ "+result.String()))
	if n := result.Failed(); n > 0 {
		return fmt.Errorf("%d page(s) failed", n)
	}
	return nil
}

// Browse lists every page of the wiki in an interactive browser
func Browse(args []string) {
	o, err := parseArgs(args, nil, nil)
	if err != nil {
		fail(err)
	}
	cfg, err := o.loadConfig()
	if err != nil {
		fail(fmt.Errorf("failed to load config: %w", err))
	}
	log, cleanup := newLogger(cfg)
	defer cleanup()

	formatFunc := func(path string) error {
		return formatFile(path, log)
	}

	// Bubble Tea program (will be set after creating sendBrowseData)
	var p *tea.Program

	// A dry run build collects the headers, links and problems of each page
	sendBrowseData := func() {
		builder := build.NewBuilder(cfg)
		builder.DryRun = true
		builder.SetLogger(log)
		result, err := builder.Build()
		if err != nil {
			p.Send(tui.BrowseMsg{Err: err})
			return
		}
		p.Send(tui.BrowseMsg{Pages: result.Pages})
	}

	m := tui.InitBrowseModel(cfg.Root, formatFunc, sendBrowseData)
	p = tea.NewProgram(m, tea.WithInput(os.Stdin))

	go sendBrowseData()

	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

// Init writes the default configuration unless one already exists
func Init(args []string) {
	if err := runInit(args, os.Stdout); err != nil {
		fail(err)
	}
}

func runInit(args []string, stdout io.Writer) error {
	o, err := parseArgs(args, []string{"--force"}, nil)
	if err != nil {
		return err
	}
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil && !o.flags["--force"] {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, styles.SuccessStyle.Render("✓ Wrote "+path))
	return nil
}

// formatFile rewrites the page at path in canonical form
func formatFile(path string, log *logger.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	formatted, err := convert.Reformat(string(data))
	if convert.Fatal(err) {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}
	changed := formatted != string(data)
	if changed {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	log.PageFormatted(path, changed)
	return nil
}
