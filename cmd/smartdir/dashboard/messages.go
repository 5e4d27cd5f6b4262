package dashboard

import (
	"context"

	"smartdir/internal/directory"
	"smartdir/internal/panel"

	tea "github.com/charmbracelet/bubbletea"
)

// Every message carries the generation of the panel that issued it. Switching
// tabs mounts a new panel with a new generation, so replies addressed to an
// unmounted panel are dropped.

// loadedMsg delivers the outcome of one GET.
type loadedMsg[T directory.Record] struct {
	gen     int
	seq     int
	records []T
	err     error
}

// mutatedMsg delivers the outcome of a POST/PUT/DELETE.
type mutatedMsg struct {
	gen int
	res panel.MutationResult
}

func loadCmd[T directory.Record](ctx context.Context, gen, seq int, l panel.Loader[T]) tea.Cmd {
	return func() tea.Msg {
		records, err := l.List(ctx)
		return loadedMsg[T]{gen: gen, seq: seq, records: records, err: err}
	}
}

func mutateCmd(gen int, fn func() panel.MutationResult) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{gen: gen, res: fn()}
	}
}
