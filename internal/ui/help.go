package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen shows the key bindings in a box over the grid
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	offset      int
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.offset = 0
}

// Scroll moves the text by delta lines, keeping the last line reachable
func (h *HelpScreen) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, len(h.Lines())-1))
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted help text
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, kb := range h.keybindings {
		keyWidth = max(keyWidth, StringWidth(kb.GetKey()))
	}

	lines := []string{"Keys:", ""}
	for _, kb := range h.keybindings {
		lines = append(lines, fmt.Sprintf("  %s  %s", PadStringToWidth(kb.GetKey(), keyWidth), kb.GetDescription()))
	}
	lines = append(lines,
		"",
		"Commands:",
		"  :w [name]  Save the layout",
		"  :e name    Load a layout",
		"  :q         Quit",
		"",
		"Mouse:",
		"  Wheel      Scroll, shift+wheel scrolls sideways",
		"  Click      Select a cell, a row header or a column header",
	)
	return lines
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	width, height := screen.GetWidth(), screen.GetHeight()

	startX, startY := 4, 1
	boxWidth := width - 2*startX
	boxHeight := height - 2*startY
	if boxWidth < 10 || boxHeight < 4 {
		return
	}
	right, bottom := startX+boxWidth-1, startY+boxHeight-1

	for y := startY; y <= bottom; y++ {
		for x := startX; x <= right; x++ {
			screen.SetCell(x, y, ' ', contentStyle)
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(right, y, '│', borderStyle)
	}
	for x := startX + 1; x < right; x++ {
		screen.SetCell(x, startY, '─', borderStyle)
		screen.SetCell(x, bottom, '─', borderStyle)
	}
	screen.SetCell(startX, startY, '┌', borderStyle)
	screen.SetCell(right, startY, '┐', borderStyle)
	screen.SetCell(startX, bottom, '└', borderStyle)
	screen.SetCell(right, bottom, '┘', borderStyle)

	screen.DrawString(startX+2, startY, " Help (j/k scroll, ? to close) ", screen.HelpTitleStyle())

	y := startY + 1
	for _, line := range h.Lines()[h.offset:] {
		if y >= bottom {
			break
		}
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
}
