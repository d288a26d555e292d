package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/render"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// Screen manages the tcell screen. It is also the render.Surface the grid
// is painted on.
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.GridTheme
	closeOnce   sync.Once

	// Clip and exclude state, see surface.go
	clip     render.Rect
	excludes []render.Rect
	saved    []surfaceState
}

// NewScreen creates and initialises a terminal screen
func NewScreen(t *theme.GridTheme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom wraps an existing tcell screen, for example a simulation
// screen in tests, and initialises it.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.GridTheme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	s := &Screen{tcellScreen: tcellScreen, Theme: t}
	s.Size()
	s.resetClip()
	return s, nil
}

// Close restores the terminal. PollEvent returns nil afterwards. Closing
// twice is a no-op.
func (s *Screen) Close() error {
	s.closeOnce.Do(s.tcellScreen.Fini)
	return nil
}

// Clear clears the entire screen and drops any clip state left over from
// the previous frame.
func (s *Screen) Clear() {
	s.Size()
	s.resetClip()
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position. Drawing outside the screen is
// ignored.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// GetCell returns the rune and style at the given position.
func (s *Screen) GetCell(x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.tcellScreen.GetContent(x, y)
	return r, style
}

// DrawString draws a string at the given position and returns the x after
// the last cell drawn. Wide runes take two cells.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints row y from x to the right edge.
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize.
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseMotionEvents)
}

// FontStyle applies a font description such as "bold" or "bold italic" to
// style. Unknown words are ignored.
func FontStyle(style tcell.Style, font string) tcell.Style {
	for _, word := range strings.Fields(font) {
		switch strings.ToLower(word) {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "dim":
			style = style.Dim(true)
		case "underline":
			style = style.Underline(true)
		case "reverse":
			style = style.Reverse(true)
		}
	}
	return style
}

// Theme-aware styles for the parts of the screen outside the grid

// StatusStyle returns the style of the status line
func (s *Screen) StatusStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.HeaderColor, s.Theme.HeaderBackgroundColor)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.BackgroundColor, s.Theme.SelectionOutlineColor).Bold(true)
}

// PromptStyle returns the style for the prompt character
func (s *Screen) PromptStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.SelectionOutlineColor, s.Theme.BackgroundColor).Bold(true)
}

// PromptTextStyle returns the style for prompt input
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.TextColor, s.Theme.BackgroundColor)
}

// PromptCursorStyle returns the style of the cursor in the prompt
func (s *Screen) PromptCursorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.BackgroundColor, s.Theme.TextColor)
}

// HelpStyle returns the style for help content
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.TextColor, s.Theme.HeaderBackgroundColor)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.TreeLineColor, s.Theme.HeaderBackgroundColor)
}

// HelpTitleStyle returns the style for the help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.HeaderColor, s.Theme.HeaderBackgroundColor).Bold(true)
}

