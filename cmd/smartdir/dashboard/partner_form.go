package dashboard

import (
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form rows: four text fields, then the activo toggle.
const (
	fieldName = iota
	fieldPhone
	fieldSpecialty
	fieldLocation
	fieldActive
	fieldCount
)

var fieldLabels = [...]string{"NOMBRE", "TELEFONO", "ESPECIALIDAD", "UBICACION"}

// formAction is what a key press did to the form.
type formAction int

const (
	formEditing formAction = iota
	formSubmitted
	formCancelled
)

// partnerForm is the NUEVO/EDITAR SOCIO modal. It binds a draft record; no
// field is validated.
type partnerForm struct {
	open      bool
	editingID string
	draft     directory.Partner
	inputs    [fieldLocation + 1]textinput.Model
	focus     int
	styles    ui.Styles
}

func newPartnerForm(styles ui.Styles) partnerForm {
	f := partnerForm{styles: styles}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = ui.ModalWidth - 8
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	return f
}

// openCreate shows the form with the blank draft.
func (f *partnerForm) openCreate() tea.Cmd {
	return f.load("", directory.NewPartner())
}

// openEdit shows the form bound to an existing record.
func (f *partnerForm) openEdit(p directory.Partner) tea.Cmd {
	return f.load(p.ID, p)
}

func (f *partnerForm) load(id string, p directory.Partner) tea.Cmd {
	f.open = true
	f.editingID = id
	f.draft = p
	f.inputs[fieldName].SetValue(p.Name)
	f.inputs[fieldPhone].SetValue(p.Phone)
	f.inputs[fieldSpecialty].SetValue(p.Specialty)
	f.inputs[fieldLocation].SetValue(p.Location)
	return f.setFocus(fieldName)
}

// close discards the draft.
func (f *partnerForm) close() {
	f.open = false
	f.editingID = ""
	f.draft = directory.Partner{}
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
}

// value is the draft as it would be submitted now.
func (f *partnerForm) value() directory.Partner {
	p := f.draft
	p.Name = f.inputs[fieldName].Value()
	p.Phone = f.inputs[fieldPhone].Value()
	p.Specialty = f.inputs[fieldSpecialty].Value()
	p.Location = f.inputs[fieldLocation].Value()
	return p
}

func (f *partnerForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Update routes one message to the form.
func (f *partnerForm) Update(msg tea.Msg) (formAction, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus < fieldActive {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return formEditing, cmd
		}
		return formEditing, nil
	}

	switch key.String() {
	case "esc":
		return formCancelled, nil
	case "ctrl+s":
		return formSubmitted, nil
	case "tab", "down":
		return formEditing, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return formEditing, f.setFocus(f.focus - 1)
	case "enter":
		if f.focus == fieldActive {
			return formSubmitted, nil
		}
		return formEditing, f.setFocus(f.focus + 1)
	case " ":
		if f.focus == fieldActive {
			f.draft.Active = !f.draft.Active
			return formEditing, nil
		}
	}

	if f.focus == fieldActive {
		return formEditing, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEditing, cmd
}

func (f *partnerForm) View() string {
	if !f.open {
		return ""
	}
	title := "NUEVO SOCIO"
	if f.editingID != "" {
		title = "EDITAR SOCIO"
	}

	var sb strings.Builder
	sb.WriteString(f.styles.Title.Render(title))
	sb.WriteString("\n")
	for i, label := range fieldLabels {
		labelStyle := f.styles.Muted
		if f.focus == i {
			labelStyle = f.styles.Selected
		}
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString("\n")
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n\n")
	}

	toggle := "( ) Activo"
	toggleStyle := f.styles.Muted
	if f.draft.Active {
		toggle = "(●) Activo"
		toggleStyle = f.styles.Success
	}
	if f.focus == fieldActive {
		toggleStyle = toggleStyle.Underline(true)
	}
	sb.WriteString(toggleStyle.Render(toggle))
	sb.WriteString("\n\n")
	sb.WriteString(f.styles.Muted.Render("[ctrl+s] GUARDAR   [esc] CANCELAR   [space] activo"))

	return f.styles.Modal.Width(ui.ModalWidth).Render(lipgloss.NewStyle().Render(sb.String()))
}
