package dashboard

import (
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const symptomsWidth = 24

// recommendationsPanel is the Recomendaciones tab: read and delete.
type recommendationsPanel struct {
	listPanel[directory.Recommendation]
	table table.Model
}

func newRecommendationsPanel(e env, store DeletableStore[directory.Recommendation]) *recommendationsPanel {
	p := &recommendationsPanel{
		listPanel: newListPanel[directory.Recommendation](e, "RECOMENDACIONES", store),
		table:     newTable(recommendationColumns(ui.MinimumTerminalWidth)),
	}
	p.withDelete(store, "¿Eliminar?")
	return p
}

func recommendationColumns(width int) []table.Column {
	w := max((width-symptomsWidth-10-10-10)/2, 10)
	return []table.Column{
		{Title: "PACIENTE", Width: w},
		{Title: "SOCIO", Width: w},
		{Title: "SÍNTOMAS", Width: symptomsWidth},
		{Title: "FECHA", Width: 10},
		{Title: "ESTADO", Width: 10},
	}
}

func (p *recommendationsPanel) SetSize(width, height int) {
	p.listPanel.SetSize(width, height)
	p.table.SetColumns(recommendationColumns(width))
	p.table.SetWidth(width)
	p.table.SetHeight(max(height-3, 3))
}

func (p *recommendationsPanel) Help() string {
	return "[d] eliminar  [r] recargar  [↑/↓] mover"
}

func (p *recommendationsPanel) syncRows() {
	records := p.list.Rows()
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.Patient,
			r.Partner,
			ui.Truncate(r.Symptoms, symptomsWidth),
			directory.FormatDate(r.Date),
			strings.ToUpper(string(r.Status)),
		}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *recommendationsPanel) selected() (directory.Recommendation, bool) {
	rows := p.list.Rows()
	i := p.table.Cursor()
	if i < 0 || i >= len(rows) {
		return directory.Recommendation{}, false
	}
	return rows[i], true
}

func (p *recommendationsPanel) Update(msg tea.Msg) tea.Cmd {
	if handled, cmd := p.handleCommon(msg); handled {
		if _, ok := msg.(loadedMsg[directory.Recommendation]); ok {
			p.syncRows()
		}
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "d", "delete":
		if r, ok := p.selected(); ok {
			p.askDelete(r.ID)
		}
		return nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *recommendationsPanel) View() string {
	return p.frame("", func() string {
		if p.list.Empty() {
			return p.table.View() + "\n" + p.placeholder()
		}
		return p.table.View() + "\n" + p.detail()
	})
}

// detail shows the selected row's status as a colored badge.
func (p *recommendationsPanel) detail() string {
	r, ok := p.selected()
	if !ok {
		return ""
	}
	tone := ui.ToneNeutral
	switch r.Status {
	case directory.StatusAccepted:
		tone = ui.ToneGood
	case directory.StatusRejected:
		tone = ui.ToneBad
	case directory.StatusPending:
		tone = ui.ToneWarn
	}
	return p.styles.Muted.Render(r.Patient+" → "+r.Partner+"  ") + p.styles.StatusBadge(string(r.Status), tone)
}
