// Package tui implements the terminal token preview.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grounds-studio/grounds/internal/tokens"
	"github.com/grounds-studio/grounds/internal/tui/components"
	"github.com/grounds-studio/grounds/internal/tui/styles"
)

// ReloadFunc reloads preview data from disk.
type ReloadFunc func() (*tokens.Preview, error)

// Options configure the interactive preview.
type Options struct {
	Theme  styles.Theme
	Reload ReloadFunc
}

// Run launches the interactive token preview.
func Run(preview *tokens.Preview, opts Options) error {
	program := tea.NewProgram(newModel(preview, opts, time.Now()), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	width       int
	height      int
	styles      styles.Styles
	theme       styles.Theme
	preview     *tokens.Preview
	reload      ReloadFunc
	view        viewID
	offset      int
	lastUpdated time.Time
	lastErr     error
}

const (
	minWidth  = 60
	minHeight = 15
	// Title, tab bar and footer lines around the scrolled body.
	chromeLines = 7
)

func newModel(preview *tokens.Preview, opts Options, now time.Time) model {
	theme := opts.Theme
	if theme.Name == "" {
		theme = styles.SiteTheme
	}
	return model{
		styles:      BuildStyles(theme, preview),
		theme:       theme,
		preview:     preview,
		reload:      opts.Reload,
		view:        viewPalette,
		lastUpdated: now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type reloadedMsg struct {
	preview *tokens.Preview
	err     error
	at      time.Time
}

func (m model) reloadCmd() tea.Cmd {
	reload := m.reload
	return func() tea.Msg {
		preview, err := reload()
		return reloadedMsg{preview: preview, err: err, at: time.Now()}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			m.setView(viewPalette)
		case "2":
			m.setView(viewAliases)
		case "3":
			m.setView(viewTypography)
		case "tab":
			m.setView(nextView(m.view))
		case "shift+tab":
			m.setView(prevView(m.view))
		case "j", "down":
			m.scroll(1)
		case "k", "up":
			m.scroll(-1)
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.scroll(len(m.bodyLines()))
		case "r":
			if m.reload != nil {
				return m, m.reloadCmd()
			}
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll(0)
	case reloadedMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.preview = msg.preview
			m.styles = BuildStyles(m.theme, msg.preview)
			m.lastUpdated = msg.at
			m.scroll(0)
		}
	}
	return m, nil
}

func (m *model) setView(view viewID) {
	m.view = view
	m.offset = 0
}

func (m *model) scroll(delta int) {
	maxOffset := len(m.bodyLines()) - m.pageSize()
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.offset += delta
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m model) pageSize() int {
	if m.height <= 0 {
		return 1 << 30
	}
	if size := m.height - chromeLines; size > 0 {
		return size
	}
	return 1
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return joinLines(m.smallViewLines()) + "\n"
		}
	}

	lines := []string{
		m.styles.Title.Render("Grounds design tokens"),
		m.tabBar(),
		"",
	}

	body := m.bodyLines()
	end := m.offset + m.pageSize()
	if end > len(body) {
		end = len(body)
	}
	lines = append(lines, body[m.offset:end]...)

	lines = append(lines, "", m.styles.Muted.Render(m.statusLine(len(body))))
	if m.lastErr != nil {
		lines = append(lines, m.styles.Error.Render("Reload failed: "+m.lastErr.Error()))
	}
	lines = append(lines, m.styles.Muted.Render("Shortcuts: q quit | 1/2/3 views | tab next | j/k scroll | r reload"))

	return joinLines(lines) + "\n"
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	lines := []string{
		m.styles.Error.Render(message),
		m.styles.Muted.Render(hint),
	}
	if isEmpty(m.preview) {
		lines = append(lines, components.NoTokens().RenderCompact(m.styles))
	}
	return append(lines, m.styles.Muted.Render("Press q to quit."))
}

func (m model) tabBar() string {
	tabs := make([]string, 0, len(allViews))
	for i, view := range allViews {
		label := fmt.Sprintf("%d %s", i+1, view.title())
		if view == m.view {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabIdle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m model) statusLine(total int) string {
	updated := "--"
	if !m.lastUpdated.IsZero() {
		updated = m.lastUpdated.Format("15:04:05")
	}
	return fmt.Sprintf("Lines %d/%d | Theme %s | Loaded %s", min(m.offset+1, total), total, m.styles.Theme.Name, updated)
}

func (m model) bodyLines() []string {
	switch m.view {
	case viewAliases:
		return aliasLines(m.styles, m.preview)
	case viewTypography:
		return typographyLines(m.styles, m.preview)
	default:
		return paletteLines(m.styles, m.preview)
	}
}

type viewID int

const (
	viewPalette viewID = iota
	viewAliases
	viewTypography
)

var allViews = []viewID{viewPalette, viewAliases, viewTypography}

func (v viewID) title() string {
	switch v {
	case viewAliases:
		return "Aliases"
	case viewTypography:
		return "Typography"
	default:
		return "Palette"
	}
}

func nextView(current viewID) viewID {
	return allViews[(int(current)+1)%len(allViews)]
}

func prevView(current viewID) viewID {
	return allViews[(int(current)+len(allViews)-1)%len(allViews)]
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
