package ui

import (
	"time"
)

// MessageTimeout is how long a status message stays up.
const MessageTimeout = 5 * time.Second

// StatusLine is the bottom row: a mode, the cursor position and the last
// message.
type StatusLine struct {
	message string
	at      time.Time
	now     func() time.Time
}

// NewStatusLine creates an empty status line
func NewStatusLine() *StatusLine {
	return &StatusLine{now: time.Now}
}

// SetMessage shows text until MessageTimeout has passed
func (s *StatusLine) SetMessage(text string) {
	s.message = text
	s.at = s.now()
}

// Message returns the current message, empty once it timed out
func (s *StatusLine) Message() string {
	if s.message != "" && s.now().Sub(s.at) > MessageTimeout {
		s.message = ""
	}
	return s.message
}

// Render draws the status line on row y. position is drawn on the right.
func (s *StatusLine) Render(screen *Screen, y int, mode, position string) {
	style := screen.StatusStyle()
	screen.FillLine(0, y, style)

	x := 0
	if mode != "" {
		x = screen.DrawString(x, y, " "+mode+" ", screen.StatusModeStyle()) + 1
	}

	width := screen.GetWidth()
	posX := width - StringWidth(position) - 1
	screen.DrawStringLimited(x, y, s.Message(), posX-x-1, style)
	if posX > x {
		screen.DrawString(posX, y, position, style)
	}
}
