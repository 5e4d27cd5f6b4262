package dashboard

import (
	"fmt"
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// detailMaxLines caps the expanded document; longer ones end in a count of
// the hidden lines.
const detailMaxLines = 15

// conversationsPanel is the Conversaciones tab: a cursor list where at most
// one row is expanded to show the whole document.
type conversationsPanel struct {
	listPanel[directory.Conversation]
	cursor   int
	viewport viewport.Model
	renderer *glamour.TermRenderer
	rendered map[string]string
}

func newConversationsPanel(e env, store DeletableStore[directory.Conversation]) *conversationsPanel {
	p := &conversationsPanel{
		listPanel: newListPanel[directory.Conversation](e, "CONVERSACIONES", store),
		viewport:  viewport.New(ui.MinimumTerminalWidth, ui.MinimumTerminalHeight-3),
		rendered:  make(map[string]string),
	}
	p.withDelete(store, "¿Eliminar conversación?")
	p.resetRenderer()
	return p
}

func (p *conversationsPanel) resetRenderer() {
	style := "light"
	if p.styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(p.width-4, 20)),
	)
	if err != nil {
		p.logger.Debug("glamour renderer unavailable", zap.Error(err))
		r = nil
	}
	p.renderer = r
	p.rendered = make(map[string]string)
}

func (p *conversationsPanel) SetSize(width, height int) {
	resize := width != p.width
	p.listPanel.SetSize(width, height)
	p.viewport.Width = width
	p.viewport.Height = max(height-3, 3)
	if resize {
		p.resetRenderer()
	}
	p.refresh()
}

func (p *conversationsPanel) Help() string {
	return "[enter] ver detalle  [d] eliminar  [r] recargar  [↑/↓] mover"
}

func (p *conversationsPanel) selected() (directory.Conversation, bool) {
	rows := p.list.Rows()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return directory.Conversation{}, false
	}
	return rows[p.cursor], true
}

func (p *conversationsPanel) clampCursor() {
	n := len(p.list.Rows())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *conversationsPanel) Update(msg tea.Msg) tea.Cmd {
	if handled, cmd := p.handleCommon(msg); handled {
		if _, ok := msg.(loadedMsg[directory.Conversation]); ok {
			p.rendered = make(map[string]string)
			p.clampCursor()
			p.refresh()
		}
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		p.cursor--
		p.clampCursor()
	case "down", "j":
		p.cursor++
		p.clampCursor()
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = len(p.list.Rows()) - 1
		p.clampCursor()
	case "enter", " ":
		if c, ok := p.selected(); ok {
			p.list.ToggleExpand(c.ID)
		}
	case "d", "delete":
		if c, ok := p.selected(); ok {
			p.askDelete(c.ID)
		}
		return nil
	}
	p.refresh()
	return nil
}

// refresh rebuilds the list and scrolls so the cursor row, and its detail
// when expanded, stay on screen.
func (p *conversationsPanel) refresh() {
	var lines []string
	top, bottom := 0, 0
	for i, c := range p.list.Rows() {
		if i == p.cursor {
			top = len(lines)
		}
		lines = append(lines, p.renderRow(i, c))
		if p.list.IsExpanded(c.ID) {
			lines = append(lines, p.detailLines(c)...)
		}
		if i == p.cursor {
			bottom = len(lines) - 1
		}
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))

	h := p.viewport.Height
	off := p.viewport.YOffset
	if bottom >= off+h {
		off = min(bottom-h+1, top)
	}
	if top < off {
		off = top
	}
	p.viewport.SetYOffset(off)
}

func (p *conversationsPanel) View() string {
	return p.frame("", func() string {
		if p.list.Empty() {
			return p.placeholder()
		}
		return p.viewport.View()
	})
}

func (p *conversationsPanel) renderRow(i int, c directory.Conversation) string {
	marker := "  "
	if i == p.cursor {
		marker = p.styles.Selected.Render("▸ ")
	}
	tone := ui.ToneNeutral
	if c.IsActive() {
		tone = ui.ToneGood
	}
	number := p.styles.Bold.Render(c.Number)
	if i == p.cursor {
		number = p.styles.Selected.Render(c.Number)
	}
	meta := fmt.Sprintf("%s · %d mensajes · %s",
		strings.ToUpper(c.Language), len(c.Messages), directory.FormatDate(c.UpdatedAt))
	return marker + number + "  " + p.styles.Muted.Render(meta) + "  " + p.styles.StatusBadge(c.Status, tone)
}

// detailLines returns the expanded document capped to what fits under its row.
func (p *conversationsPanel) detailLines(c directory.Conversation) []string {
	lines := strings.Split(strings.Trim(p.detail(c), "\n"), "\n")
	limit := max(min(detailMaxLines, p.viewport.Height-1), 2)
	if len(lines) <= limit {
		return lines
	}
	hidden := len(lines) - (limit - 1)
	return append(lines[:limit-1:limit-1],
		p.styles.Muted.Render(fmt.Sprintf("  … %d líneas más", hidden)))
}

// detail renders the expanded document, caching per id until the next load.
func (p *conversationsPanel) detail(c directory.Conversation) string {
	if out, ok := p.rendered[c.ID]; ok {
		return out
	}
	doc := c.Pretty()
	out := doc
	if p.renderer != nil {
		md := "```json\n" + doc + "\n```\n"
		if r, err := p.renderer.Render(md); err == nil {
			out = r
		} else {
			p.logger.Debug("render conversation", zap.String("id", c.ID), zap.Error(err))
		}
	}
	p.rendered[c.ID] = out
	return out
}
