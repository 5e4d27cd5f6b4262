package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDialog_Confirm(t *testing.T) {
	d := NewConfirmDialog(NewStyles(LightTheme()))
	d.Open("¿Eliminar socio?", "delete:1")

	if !strings.Contains(d.View(), "¿Eliminar socio?") {
		t.Fatalf("expected prompt in view")
	}

	d, cmd := d.Update(keyRunes("y"))
	if d.IsOpen() {
		t.Fatalf("dialog should close after answer")
	}
	if cmd == nil {
		t.Fatalf("expected a result command")
	}
	res, ok := cmd().(ConfirmResult)
	if !ok || !res.Confirmed || res.Tag != "delete:1" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestConfirmDialog_Cancel(t *testing.T) {
	d := NewConfirmDialog(NewStyles(LightTheme()))
	d.Open("¿Eliminar?", "delete:2")

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.IsOpen() {
		t.Fatalf("esc should close the dialog")
	}
	res := cmd().(ConfirmResult)
	if res.Confirmed {
		t.Fatalf("esc must not confirm")
	}
	if d.View() != "" {
		t.Fatalf("closed dialog should render nothing")
	}
}

func TestConfirmDialog_IgnoresOtherKeys(t *testing.T) {
	d := NewConfirmDialog(NewStyles(LightTheme()))
	d.Open("¿Limpiar todos los logs?", "clear")

	d, cmd := d.Update(keyRunes("x"))
	if !d.IsOpen() || cmd != nil {
		t.Fatalf("unrelated keys must leave the dialog open without a result")
	}

	closed := NewConfirmDialog(NewStyles(LightTheme()))
	if _, cmd := closed.Update(keyRunes("y")); cmd != nil {
		t.Fatalf("closed dialog must not emit results")
	}
}
