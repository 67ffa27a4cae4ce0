package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/vimwiki/diff"
	"github.com/gerunddev/vimwiki/internal/build"
	"github.com/gerunddev/vimwiki/styles"
)

// BrowseMsg is sent when the page list is ready
type BrowseMsg struct {
	Pages []build.PageResult
	Err   error
}

// DetailMsg is sent when the detail view of a page is ready
type DetailMsg struct {
	Content string
	Err     error
}

// RefreshBrowseMsg triggers a reload of the page list
type RefreshBrowseMsg struct{}

type browseModel struct {
	table        table.Model
	viewport     viewport.Model
	pages        []build.PageResult
	err          error
	ready        bool
	showingPage  bool
	width        int
	height       int
	selectedPage *build.PageResult
	// Dependencies
	root        string
	formatFunc  func(path string) error
	refreshFunc func()
}

// InitBrowseModel creates a new page browser model. formatFunc rewrites a
// page in canonical form; refreshFunc reloads the page list and sends a
// BrowseMsg.
func InitBrowseModel(root string, formatFunc func(path string) error, refreshFunc func()) browseModel {
	columns := []table.Column{
		{Title: "Page", Width: 40},
		{Title: "Title", Width: 30},
		{Title: "Headers", Width: 8},
		{Title: "Links", Width: 6},
		{Title: "Status", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.DetailStyle

	return browseModel{
		table:       t,
		viewport:    vp,
		root:        root,
		formatFunc:  formatFunc,
		refreshFunc: refreshFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingPage {
			switch msg.String() {
			case "q", "esc":
				m.showingPage = false
				return m, nil
			case "f":
				if m.selectedPage != nil {
					m.showingPage = false
					return m, m.formatPage(*m.selectedPage)
				}
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		} else {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k", "down", "j":
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			case "enter", "d":
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.pages) {
					m.selectedPage = &m.pages[idx]
					m.showingPage = true
					m.viewport.SetContent("Loading...")
					return m, m.loadDetail(*m.selectedPage)
				}
				return m, nil
			}
		}

	case BrowseMsg:
		m.ready = true
		m.pages = msg.Pages
		m.err = msg.Err

		rows := make([]table.Row, 0, len(m.pages))
		for _, p := range m.pages {
			rows = append(rows, table.Row{
				filepath.ToSlash(p.Source),
				p.Title,
				fmt.Sprint(len(p.Headers)),
				fmt.Sprint(p.Links),
				pageStatus(p),
			})
		}
		m.table.SetRows(rows)
		return m, nil

	case DetailMsg:
		content := msg.Content
		if msg.Err != nil {
			content = errorStyle.Render("✗ " + msg.Err.Error())
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return m, nil

	case RefreshBrowseMsg:
		if m.refreshFunc != nil {
			go m.refreshFunc()
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vimwiki Page Browser"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready {
		return b.String()
	}

	if m.showingPage {
		b.WriteString(labelStyle.Render("Page: "))
		b.WriteString(valueStyle.Render(filepath.ToSlash(m.selectedPage.Source)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • f format • esc/q back"))
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Pages: %d", len(m.pages))))
		b.WriteString("\n\n")
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/d details • q quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// pageStatus summarizes a page for the table
func pageStatus(p build.PageResult) string {
	switch {
	case p.Err != nil:
		return "✗ unparsable"
	case p.Skipped != "":
		return "- " + p.Skipped
	case len(p.Problems) > 0:
		return fmt.Sprintf("⚠ %d problem(s)", len(p.Problems))
	case len(p.Unresolved) > 0:
		return fmt.Sprintf("⚠ %d unresolved", len(p.Unresolved))
	}
	return "✓ ok"
}

func (m browseModel) loadDetail(p build.PageResult) tea.Cmd {
	root := m.root
	return func() tea.Msg {
		content, err := PageDetail(root, p)
		return DetailMsg{Content: content, Err: err}
	}
}

// formatPage creates a command that rewrites the page and reloads the list
func (m browseModel) formatPage(p build.PageResult) tea.Cmd {
	return func() tea.Msg {
		if m.formatFunc != nil {
			if err := m.formatFunc(filepath.Join(m.root, p.Source)); err != nil {
				return BrowseMsg{Pages: m.pages, Err: err}
			}
		}
		return RefreshBrowseMsg{}
	}
}

// PageDetail describes one page: its headers, links the renderer could not
// resolve, parse problems with their source lines and the changes
// formatting would make
func PageDetail(root string, p build.PageResult) (string, error) {
	path := filepath.Join(root, p.Source)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}

	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Title:"), valueStyle.Render(p.Title))
	}

	if len(p.Headers) > 0 {
		b.WriteString(highlightStyle.Render("Headers") + "\n")
		for _, h := range p.Headers {
			b.WriteString("  " + h + "\n")
		}
		b.WriteString("\n")
	}

	if len(p.Unresolved) > 0 {
		b.WriteString(warningStyle.Render("Unresolved links") + "\n")
		for _, u := range p.Unresolved {
			b.WriteString("  " + styles.LinkStyle.Render(u) + "\n")
		}
		b.WriteString("\n")
	}

	if p.Err != nil {
		b.WriteString(errorStyle.Render(p.Err.Error()) + "\n\n")
	}
	if len(p.Problems) > 0 {
		b.WriteString(warningStyle.Render("Problems") + "\n")
		for _, e := range p.Problems {
			b.WriteString(e.Show(string(content)) + "\n")
		}
		b.WriteString("\n")
	}

	if p.Err == nil {
		unified, _, err := diff.File(path)
		if err != nil {
			return "", err
		}
		if unified == "" {
			b.WriteString(successStyle.Render("✓ Already formatted") + "\n")
		} else {
			b.WriteString(highlightStyle.Render("Formatting changes") + "\n")
			b.WriteString(diff.Render(unified))
		}
	}

	return b.String(), nil
}
