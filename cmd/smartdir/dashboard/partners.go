package dashboard

import (
	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"
	"smartdir/internal/panel"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// partnersPanel is the Socios tab: table, create/edit modal, delete.
type partnersPanel struct {
	listPanel[directory.Partner]
	store PartnerStore
	table table.Model
	form  partnerForm
}

func newPartnersPanel(e env, store PartnerStore) *partnersPanel {
	p := &partnersPanel{
		listPanel: newListPanel[directory.Partner](e, "SOCIOS", store),
		store:     store,
		table:     newTable(partnerColumns(ui.MinimumTerminalWidth)),
		form:      newPartnerForm(e.styles),
	}
	p.withDelete(store, "¿Eliminar socio?")
	return p
}

// partnerColumns splits width between the text columns; every cell carries
// two columns of padding.
func partnerColumns(width int) []table.Column {
	w := max((width-10-10)/4, 10)
	return []table.Column{
		{Title: "NOMBRE", Width: w},
		{Title: "TELÉFONO", Width: w},
		{Title: "ESPECIALIDAD", Width: w},
		{Title: "UBICACIÓN", Width: w},
		{Title: "ESTADO", Width: 10},
	}
}

func (p *partnersPanel) SetSize(width, height int) {
	p.listPanel.SetSize(width, height)
	p.table.SetColumns(partnerColumns(width))
	p.table.SetWidth(width)
	p.table.SetHeight(max(height-3, 3))
}

func (p *partnersPanel) Capturing() bool {
	return p.form.open || p.confirm.IsOpen()
}

func (p *partnersPanel) Help() string {
	return "[n] nuevo  [e] editar  [d] eliminar  [r] recargar  [↑/↓] mover"
}

// selected returns the record under the table cursor.
func (p *partnersPanel) selected() (directory.Partner, bool) {
	rows := p.list.Rows()
	i := p.table.Cursor()
	if i < 0 || i >= len(rows) {
		return directory.Partner{}, false
	}
	return rows[i], true
}

func (p *partnersPanel) syncRows() {
	records := p.list.Rows()
	rows := make([]table.Row, len(records))
	for i, s := range records {
		rows[i] = table.Row{s.Name, s.Phone, s.Specialty, s.Location, s.StatusLabel()}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *partnersPanel) Update(msg tea.Msg) tea.Cmd {
	if p.form.open {
		if _, ok := msg.(tea.KeyMsg); ok {
			return p.updateForm(msg)
		}
	}

	if handled, cmd := p.handleCommon(msg); handled {
		if _, ok := msg.(loadedMsg[directory.Partner]); ok {
			p.syncRows()
		}
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "n":
		return p.form.openCreate()
	case "e", "enter":
		if s, ok := p.selected(); ok {
			return p.form.openEdit(s)
		}
		return nil
	case "d", "delete":
		if s, ok := p.selected(); ok {
			p.askDelete(s.ID)
		}
		return nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *partnersPanel) updateForm(msg tea.Msg) tea.Cmd {
	action, cmd := p.form.Update(msg)
	switch action {
	case formCancelled:
		p.form.close()
		return nil
	case formSubmitted:
		draft := p.form.value()
		editingID := p.form.editingID
		p.form.close()
		store := p.store
		ctx := p.ctx
		return p.mutate(func() panel.MutationResult {
			return panel.Save[directory.Partner](ctx, store, editingID, draft)
		})
	}
	return cmd
}

func (p *partnersPanel) View() string {
	if p.form.open {
		return p.form.View()
	}
	return p.frame("", func() string {
		if p.list.Empty() {
			return p.table.View() + "\n" + p.placeholder()
		}
		return p.table.View()
	})
}

// newTable builds a focused bubbles table in the dashboard's palette.
func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(ui.Violet).Bold(true)
	s.Selected = s.Selected.Foreground(ui.Pearl).Background(ui.Violet).Bold(false)
	t.SetStyles(s)
	return t
}
