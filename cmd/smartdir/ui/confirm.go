package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmResult is emitted when a ConfirmDialog closes. Tag is whatever the
// opener attached, so one dialog can serve several actions.
type ConfirmResult struct {
	Tag       string
	Confirmed bool
}

// ConfirmDialog is a blocking yes/no prompt. While open it swallows every
// key; nothing else in the panel reacts until it is answered.
type ConfirmDialog struct {
	open   bool
	prompt string
	tag    string
	styles Styles
}

// NewConfirmDialog creates a closed dialog.
func NewConfirmDialog(styles Styles) ConfirmDialog {
	return ConfirmDialog{styles: styles}
}

// Open shows prompt and remembers tag for the result.
func (d *ConfirmDialog) Open(prompt, tag string) {
	d.open = true
	d.prompt = prompt
	d.tag = tag
}

// IsOpen reports whether the dialog is waiting for an answer.
func (d ConfirmDialog) IsOpen() bool { return d.open }

// Prompt returns the question being asked.
func (d ConfirmDialog) Prompt() string { return d.prompt }

// Update answers the dialog on y/enter (confirm) or n/esc (cancel).
func (d ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	if !d.open {
		return d, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	var confirmed bool
	switch key.String() {
	case "y", "Y", "s", "S", "enter":
		confirmed = true
	case "n", "N", "esc":
		confirmed = false
	default:
		return d, nil
	}

	tag := d.tag
	d.open = false
	d.prompt = ""
	d.tag = ""
	return d, func() tea.Msg { return ConfirmResult{Tag: tag, Confirmed: confirmed} }
}

// View renders the prompt box, or nothing when closed.
func (d ConfirmDialog) View() string {
	if !d.open {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.Bold.Render(d.prompt),
		"",
		d.styles.Muted.Render("[y] Aceptar   [n] Cancelar"),
	)
	return d.styles.Modal.BorderForeground(Destructive).Render(body)
}
