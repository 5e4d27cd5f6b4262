// Package dashboard implements the Smart Directory admin console as a
// bubbletea program: a header, a tab bar and one live panel per tab.
package dashboard

import (
	"context"
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Tab identifies one of the four collections.
type Tab int

const (
	TabPartners Tab = iota
	TabRecommendations
	TabConversations
	TabLogs
	tabCount
)

var tabNames = [...]string{"Socios", "Recomendaciones", "Conversaciones", "Logs"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "?"
	}
	return tabNames[t]
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context every backend request runs under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithStyles overrides the detected theme.
func WithStyles(s ui.Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithLogger sets the logger; the dashboard logs under the "dashboard" name
// and records mutations under "audit".
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		m.audit = logging.NewAudit(l, "dashboard")
		m.logger = logging.For(l, logging.CategoryDashboard)
	}
}

// WithInitialTab selects the tab shown first.
func WithInitialTab(t Tab) Option {
	return func(m *Model) {
		if t >= 0 && t < tabCount {
			m.tab = t
		}
	}
}

// Model is the dashboard shell. Only the active tab's panel exists.
type Model struct {
	ctx     context.Context
	backend Backend
	styles  ui.Styles
	logger  *zap.Logger
	audit   *logging.AuditLogger
	layout  ui.LayoutConfig

	tab    Tab
	gen    int
	active Panel
}

// New builds the shell with the first panel mounted but not yet loaded;
// Init issues its fetch.
func New(backend Backend, opts ...Option) Model {
	m := Model{
		ctx:     context.Background(),
		backend: backend,
		styles:  ui.DefaultStyles(),
		logger:  zap.NewNop(),
		audit:   logging.NewAudit(nil, "dashboard"),
		layout:  ui.NewLayoutConfig(ui.MinimumTerminalWidth, ui.MinimumTerminalHeight),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.mount(m.tab)
	return m
}

// mount replaces the active panel with a fresh one for t. Replies still in
// flight for the old panel carry the old generation and are dropped.
func (m *Model) mount(t Tab) {
	m.tab = t
	m.gen++
	e := env{ctx: m.ctx, gen: m.gen, styles: m.styles, logger: m.logger, audit: m.audit}
	switch t {
	case TabPartners:
		m.active = newPartnersPanel(e, m.backend.Partners)
	case TabRecommendations:
		m.active = newRecommendationsPanel(e, m.backend.Recommendations)
	case TabConversations:
		m.active = newConversationsPanel(e, m.backend.Conversations)
	case TabLogs:
		m.active = newLogsPanel(e, m.backend.Logs)
	}
	m.active.SetSize(m.layout.PanelWidth(), m.layout.PanelHeight())
	m.logger.Debug("tab mounted", zap.String("tab", t.String()), zap.Int("gen", m.gen))
}

func (m *Model) switchTo(t Tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	m.mount(t)
	return m.active.Init()
}

// Tab reports the active tab.
func (m Model) Tab() Tab { return m.tab }

func (m Model) Init() tea.Cmd {
	return m.active.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.active.SetSize(m.layout.PanelWidth(), m.layout.PanelHeight())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.active.Capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4":
				return m, m.switchTo(Tab(msg.String()[0] - '1'))
			case "tab":
				return m, m.switchTo((m.tab + 1) % tabCount)
			case "shift+tab":
				return m, m.switchTo((m.tab + tabCount - 1) % tabCount)
			}
		}
	}
	return m, m.active.Update(msg)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.layout.TerminalWidth))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(m.active.View()))
	sb.WriteString("\n")
	if status := m.active.Status(); status != "" {
		sb.WriteString(m.styles.Error.Padding(0, 2).Render(status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Footer.Render(m.active.Help() + "  [1-4/tab] pestaña  [q] salir"))
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("AGEXPORT Smart Directory")
	live := m.styles.Success.Render("● LIVE")
	gap := max(m.layout.TerminalWidth-lipgloss.Width(title)-lipgloss.Width(live)-2, 1)
	return title + strings.Repeat(" ", gap) + live
}

func (m Model) renderTabs() string {
	parts := make([]string, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			parts[t] = m.styles.TabActive.Render(t.String())
		} else {
			parts[t] = m.styles.TabInactive.Render(t.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
