package dashboard

import (
	"context"
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/directory"
	"smartdir/internal/logging"
	"smartdir/internal/panel"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Panel is one tab's content as the shell sees it.
type Panel interface {
	// Init issues the initial fetch.
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Capturing reports whether a dialog or form owns the keyboard.
	Capturing() bool
	// Help is the key hint line for the footer.
	Help() string
	// Status is the last error worth showing, or "".
	Status() string
}

// env is what the shell hands to every panel it mounts.
type env struct {
	ctx    context.Context
	gen    int
	styles ui.Styles
	logger *zap.Logger
	audit  *logging.AuditLogger
}

const deleteTagPrefix = "delete:"

// listPanel is the fetch → render → mutate → refetch cycle shared by every
// tab. Tabs embed it and add their own rendering and keys.
type listPanel[T directory.Record] struct {
	env
	title        string
	emptyLabel   string
	list         *panel.List[T]
	loader       panel.Loader[T]
	deleter      panel.Deleter
	deletePrompt string
	confirm      ui.ConfirmDialog
	spinner      spinner.Model
	mutationErr  error
	width        int
	height       int
}

func newListPanel[T directory.Record](e env, title string, loader panel.Loader[T]) listPanel[T] {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(e.styles.Spinner),
	)
	return listPanel[T]{
		env:        e,
		title:      title,
		emptyLabel: "SIN REGISTROS",
		list:       panel.New[T](),
		loader:     loader,
		confirm:    ui.NewConfirmDialog(e.styles),
		spinner:    sp,
		width:      ui.MinimumTerminalWidth,
		height:     ui.MinimumTerminalHeight,
	}
}

// withDelete enables per-row deletion behind a confirmation prompt.
func (p *listPanel[T]) withDelete(d panel.Deleter, prompt string) {
	p.deleter = d
	p.deletePrompt = prompt
}

// reload starts a fresh GET; any older load still in flight is ignored when
// it returns.
func (p *listPanel[T]) reload() tea.Cmd {
	seq := p.list.BeginLoad()
	return tea.Batch(p.spinner.Tick, loadCmd(p.ctx, p.gen, seq, p.loader))
}

// askDelete opens the confirmation. Nothing is sent until it is accepted.
func (p *listPanel[T]) askDelete(id string) {
	if p.deleter == nil || id == "" {
		return
	}
	p.confirm.Open(p.deletePrompt, deleteTagPrefix+id)
}

// mutate runs fn in the background; its result triggers a reload.
func (p *listPanel[T]) mutate(fn func() panel.MutationResult) tea.Cmd {
	p.mutationErr = nil
	return mutateCmd(p.gen, fn)
}

// handleCommon processes the messages every tab treats the same way.
func (p *listPanel[T]) handleCommon(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		if msg.gen != p.gen {
			return true, nil
		}
		if p.list.FinishLoad(msg.seq, msg.records, msg.err) && msg.err != nil {
			p.logger.Warn("load failed", zap.String("panel", p.title), zap.Error(msg.err))
		}
		return true, nil

	case mutatedMsg:
		if msg.gen != p.gen {
			return true, nil
		}
		p.mutationErr = msg.res.Err
		p.audit.Mutation(strings.ToLower(p.title), msg.res.Op, msg.res.ID, msg.res.Took, msg.res.Err)
		// Reload whatever happened; the list only ever shows backend state.
		return true, p.reload()

	case spinner.TickMsg:
		if !p.list.Loading() {
			return true, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return true, cmd

	case ui.ConfirmResult:
		id, ok := strings.CutPrefix(msg.Tag, deleteTagPrefix)
		if !ok {
			return false, nil
		}
		if !msg.Confirmed {
			return true, nil
		}
		d := p.deleter
		ctx := p.ctx
		return true, p.mutate(func() panel.MutationResult {
			return panel.Delete(ctx, d, id)
		})

	case tea.KeyMsg:
		if p.confirm.IsOpen() {
			var cmd tea.Cmd
			p.confirm, cmd = p.confirm.Update(msg)
			return true, cmd
		}
		if msg.String() == "r" {
			return true, p.reload()
		}
	}
	return false, nil
}

func (p *listPanel[T]) Init() tea.Cmd { return p.reload() }

func (p *listPanel[T]) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *listPanel[T]) Capturing() bool { return p.confirm.IsOpen() }

func (p *listPanel[T]) Status() string {
	if p.mutationErr != nil {
		return "Error: " + p.mutationErr.Error()
	}
	if err := p.list.Err(); err != nil {
		return "Error: " + err.Error()
	}
	return ""
}

// frame renders the title, then either the loading indicator or body, then
// the confirmation dialog if one is open.
func (p *listPanel[T]) frame(header string, body func() string) string {
	var sb strings.Builder
	if header == "" {
		header = p.styles.Title.Render(p.title)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	if p.list.Loading() {
		sb.WriteString(p.styles.Placeholder.Render(p.spinner.View() + " CARGANDO..."))
	} else {
		sb.WriteString(body())
	}

	if p.confirm.IsOpen() {
		sb.WriteString("\n\n")
		sb.WriteString(p.confirm.View())
	}
	return sb.String()
}

func (p *listPanel[T]) placeholder() string {
	return p.styles.Placeholder.Render(p.emptyLabel)
}
