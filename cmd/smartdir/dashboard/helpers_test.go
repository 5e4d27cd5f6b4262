package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var errBackend = errors.New("backend unavailable")

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive runs cmd and every command it leads to, feeding each message back
// through update. Spinner ticks are dropped so loading never loops.
func drive(t *testing.T, update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatalf("command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, update(msg))
		}
	}
}

// press sends keys one at a time, settling all commands after each.
func press(t *testing.T, p Panel, keys ...string) {
	t.Helper()
	for _, k := range keys {
		drive(t, p.Update, p.Update(key(k)))
	}
}

func testEnv() env {
	return env{
		ctx:    context.Background(),
		gen:    1,
		styles: ui.NewStyles(ui.LightTheme()),
		logger: zap.NewNop(),
	}
}

// fakeStore is an in-memory collection that counts every request.
type fakeStore[T directory.Record] struct {
	mu      sync.Mutex
	records []T
	listErr error
	mutErr  error

	lists   int
	created []T
	updated map[string]T
	deleted []string
	clears  int
}

func newFakeStore[T directory.Record](records ...T) *fakeStore[T] {
	return &fakeStore[T]{records: records, updated: make(map[string]T)}
}

func (s *fakeStore[T]) List(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]T(nil), s.records...), nil
}

func (s *fakeStore[T]) Create(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, record)
	if s.mutErr != nil {
		return s.mutErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *fakeStore[T]) Update(_ context.Context, id string, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated[id] = record
	return s.mutErr
}

func (s *fakeStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	if s.mutErr != nil {
		return s.mutErr
	}
	kept := s.records[:0]
	for _, r := range s.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *fakeStore[T]) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.mutErr != nil {
		return s.mutErr
	}
	s.records = nil
	return nil
}

// requests is the number of mutating calls seen so far.
func (s *fakeStore[T]) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created) + len(s.updated) + len(s.deleted) + s.clears
}
