package dashboard

import (
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"
	"smartdir/internal/panel"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const clearTag = "clear"

// filterOrder is the filter bar left to right; "" is ALL.
var filterOrder = append([]directory.Level{""}, directory.Levels...)

var filterKeys = map[string]directory.Level{
	"a": "",
	"i": directory.LevelInfo,
	"w": directory.LevelWarn,
	"e": directory.LevelError,
	"g": directory.LevelDebug,
}

// logsPanel is the Logs tab: level filter, scrolling feed, clear all.
type logsPanel struct {
	listPanel[directory.LogEntry]
	clearer  panel.Clearer
	level    directory.Level
	viewport viewport.Model
}

func newLogsPanel(e env, store LogStore) *logsPanel {
	p := &logsPanel{
		listPanel: newListPanel[directory.LogEntry](e, "LOGS", store),
		clearer:   store,
		viewport:  viewport.New(ui.MinimumTerminalWidth, ui.MinimumTerminalHeight),
	}
	p.emptyLabel = "SIN LOGS"
	return p
}

func (p *logsPanel) SetSize(width, height int) {
	p.listPanel.SetSize(width, height)
	p.viewport.Width = width
	p.viewport.Height = max(height-4, 3)
	p.refresh()
}

func (p *logsPanel) Help() string {
	return "[f] filtro  [a/i/w/e/g] nivel  [c] limpiar  [r] recargar  [↑/↓] desplazar"
}

// setLevel applies a client-side filter; no request is made.
func (p *logsPanel) setLevel(l directory.Level) {
	p.level = l
	if l == "" {
		p.list.ClearFilter()
	} else {
		p.list.SetFilter(func(e directory.LogEntry) bool { return e.Level == l })
	}
	p.refresh()
}

func (p *logsPanel) cycleLevel() {
	for i, l := range filterOrder {
		if l == p.level {
			p.setLevel(filterOrder[(i+1)%len(filterOrder)])
			return
		}
	}
	p.setLevel("")
}

// refresh re-renders the feed and pins it to the newest entry.
func (p *logsPanel) refresh() {
	rows := p.list.Rows()
	lines := make([]string, len(rows))
	for i, e := range rows {
		lines[i] = p.renderEntry(e)
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.GotoBottom()
}

func (p *logsPanel) renderEntry(e directory.LogEntry) string {
	level := strings.ToUpper(string(e.Level))
	style := p.styles.Muted
	switch e.Level {
	case directory.LevelError:
		style = p.styles.Error
	case directory.LevelWarn:
		style = p.styles.Warning
	case directory.LevelInfo:
		style = p.styles.Info
	}
	return p.styles.Muted.Render(directory.FormatClock(e.Timestamp)) + "  " +
		style.Render(padRight(level, 5)) + "  " +
		p.styles.Body.Render(e.Message)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func (p *logsPanel) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(ui.ConfirmResult); ok && res.Tag == clearTag {
		if !res.Confirmed {
			return nil
		}
		c := p.clearer
		ctx := p.ctx
		return p.mutate(func() panel.MutationResult { return panel.Clear(ctx, c) })
	}

	if handled, cmd := p.handleCommon(msg); handled {
		if _, ok := msg.(loadedMsg[directory.LogEntry]); ok {
			p.refresh()
		}
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	k := key.String()
	if l, ok := filterKeys[k]; ok {
		p.setLevel(l)
		return nil
	}
	switch k {
	case "f":
		p.cycleLevel()
		return nil
	case "c":
		p.confirm.Open("¿Limpiar todos los logs?", clearTag)
		return nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *logsPanel) filterBar() string {
	parts := make([]string, len(filterOrder))
	for i, l := range filterOrder {
		label := "ALL"
		if l != "" {
			label = strings.ToUpper(string(l))
		}
		if l == p.level {
			parts[i] = p.styles.TabActive.Render(label)
		} else {
			parts[i] = p.styles.TabInactive.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func (p *logsPanel) View() string {
	return p.frame("", func() string {
		bar := p.filterBar()
		if p.list.Empty() {
			return bar + "\n" + p.placeholder()
		}
		return bar + "\n" + p.viewport.View()
	})
}
