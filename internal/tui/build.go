package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/vimwiki/internal/build"
)

// buildModel is the Bubble Tea model for the build progress display
type buildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *build.BuildResult
	err      error
}

// BuildMsg is sent when the build completes
type BuildMsg struct {
	Result *build.BuildResult
	Err    error
}

// InitBuildModel creates a new build progress model
func InitBuildModel(root string) buildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return buildModel{
		spinner: s,
		status:  "Building " + root + "...",
	}
}

func (m buildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return errorStyle.Render("✗ Build failed: "+m.err.Error()) + "\n"
	}

	r := m.result
	took := helpStyle.Render(fmt.Sprintf("Completed in %v", r.EndTime.Sub(r.StartTime).Round(time.Millisecond)))
	if len(r.Pages) == 0 {
		return successStyle.Render("✓ No pages found") + "\n" + took + "\n"
	}

	msg := successStyle.Render(fmt.Sprintf("✓ Built %d page(s)", len(r.Pages)-r.Failed()-r.Skipped()))
	if n := r.Skipped(); n > 0 {
		msg += ", " + labelStyle.Render(fmt.Sprintf("%d skipped", n))
	}
	if n := r.Problems(); n > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d problem(s)", n))
	}
	if n := r.Failed(); n > 0 {
		msg += ", " + errorStyle.Render(fmt.Sprintf("%d failed", n))
	}
	msg += "\n"
	for _, p := range r.Pages {
		if p.Err != nil {
			msg += errorStyle.Render("  ✗ "+p.Err.Error()) + "\n"
		}
	}
	return msg + took + "\n"
}

// Failed reports whether the build errored or any page failed
func (m buildModel) Failed() bool {
	return m.err != nil || (m.result != nil && m.result.Failed() > 0)
}
