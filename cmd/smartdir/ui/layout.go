package ui

// Shell chrome around the active panel, in terminal rows and columns.
const (
	ViewportHorizontalPadding = 4

	HeaderHeight    = 2
	TabBarHeight    = 2
	FooterHeight    = 2
	StatusBarHeight = 1

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24

	ModalWidth = 56
)

// LayoutConfig derives panel dimensions from the terminal size.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig clamps sizes below the minimum.
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  max(width, MinimumTerminalWidth),
		TerminalHeight: max(height, MinimumTerminalHeight),
	}
}

// PanelWidth returns the usable width for the active panel.
func (l LayoutConfig) PanelWidth() int {
	return l.TerminalWidth - ViewportHorizontalPadding
}

// PanelHeight returns the rows left for the active panel under the shell chrome.
func (l LayoutConfig) PanelHeight() int {
	return l.TerminalHeight - HeaderHeight - TabBarHeight - FooterHeight - StatusBarHeight
}
