package ui

import (
	"log"
	"slices"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/history"
)

// PromptHistorySize is how many entries a prompt remembers.
const PromptHistorySize = 50

// Prompt is a one line input at the bottom of the screen, used for
// `:commands` and the `/` column finder.
type Prompt struct {
	prefix string
	active bool
	input  []rune
	cursor int

	entries  []string
	browsing int // index into entries, -1 when not browsing
	pending  string

	manager  *history.Manager
	filename string
}

// NewPrompt creates a prompt without history persistence
func NewPrompt(prefix string) *Prompt {
	return &Prompt{prefix: prefix, browsing: -1}
}

// NewPromptWithHistory creates a prompt whose history is loaded from and
// saved to filename. A history that cannot be loaded starts empty.
func NewPromptWithHistory(prefix string, manager *history.Manager, filename string) *Prompt {
	p := NewPrompt(prefix)
	p.manager = manager
	p.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		log.Printf("Failed to load %s history: %v", filename, err)
		return p
	}
	if len(entries) > PromptHistorySize {
		entries = entries[len(entries)-PromptHistorySize:]
	}
	p.entries = entries
	return p
}

// Start activates the prompt with empty input
func (p *Prompt) Start() {
	p.active = true
	p.input = p.input[:0]
	p.cursor = 0
	p.browsing = -1
	p.pending = ""
}

// StartWith activates the prompt with input filled in
func (p *Prompt) StartWith(input string) {
	p.Start()
	p.setInput(input)
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt takes input
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the current input
func (p *Prompt) Input() string {
	return strings.TrimSpace(string(p.input))
}

// History returns a copy of the remembered entries, oldest first.
func (p *Prompt) History() []string {
	return slices.Clone(p.entries)
}

func (p *Prompt) setInput(s string) {
	p.input = []rune(s)
	p.cursor = len(p.input)
}

func (p *Prompt) remember(entry string) {
	if entry == "" || (len(p.entries) > 0 && p.entries[len(p.entries)-1] == entry) {
		return
	}
	p.entries = append(p.entries, entry)
	if len(p.entries) > PromptHistorySize {
		p.entries = p.entries[len(p.entries)-PromptHistorySize:]
	}
	if p.manager != nil {
		if err := p.manager.Save(p.filename, p.entries); err != nil {
			log.Printf("Failed to save %s history: %v", p.filename, err)
		}
	}
}

func (p *Prompt) previous() {
	if len(p.entries) == 0 {
		return
	}
	if p.browsing < 0 {
		p.pending = string(p.input)
		p.browsing = len(p.entries)
	}
	p.browsing = max(0, p.browsing-1)
	p.setInput(p.entries[p.browsing])
}

func (p *Prompt) next() {
	if p.browsing < 0 {
		return
	}
	p.browsing++
	if p.browsing >= len(p.entries) {
		p.browsing = -1
		p.setInput(p.pending)
		return
	}
	p.setInput(p.entries[p.browsing])
}

// deleteWordBackwards deletes the word before the cursor
func (p *Prompt) deleteWordBackwards() {
	i := p.cursor
	for i > 0 && unicode.IsSpace(p.input[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(p.input[i-1]) {
		i--
	}
	p.input = slices.Delete(p.input, i, p.cursor)
	p.cursor = i
}

// HandleKey processes a key press. done is true when the prompt closed;
// input is the entered text, empty when it was cancelled.
func (p *Prompt) HandleKey(ev *tcell.EventKey) (input string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return "", true
	case tcell.KeyEnter:
		entered := p.Input()
		p.remember(entered)
		p.Stop()
		return entered, true
	case tcell.KeyUp:
		p.previous()
	case tcell.KeyDown:
		p.next()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) == 0 {
			p.Stop()
			return "", true
		}
		if p.cursor > 0 {
			p.input = slices.Delete(p.input, p.cursor-1, p.cursor)
			p.cursor--
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = slices.Delete(p.input, p.cursor, p.cursor+1)
		}
	case tcell.KeyLeft:
		p.cursor = max(0, p.cursor-1)
	case tcell.KeyRight:
		p.cursor = min(len(p.input), p.cursor+1)
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.input)
	case tcell.KeyCtrlW:
		p.deleteWordBackwards()
	case tcell.KeyCtrlU:
		p.input = slices.Delete(p.input, 0, p.cursor)
		p.cursor = 0
	case tcell.KeyCtrlK:
		p.input = p.input[:p.cursor]
	case tcell.KeyRune:
		p.input = slices.Insert(p.input, p.cursor, ev.Rune())
		p.cursor++
	}
	return "", false
}

// Render draws the prompt on row y
func (p *Prompt) Render(screen *Screen, y int) {
	if !p.active {
		return
	}

	textStyle := screen.PromptTextStyle()
	cursorStyle := screen.PromptCursorStyle()

	x := screen.DrawString(0, y, p.prefix, screen.PromptStyle())
	for i, r := range p.input {
		style := textStyle
		if i == p.cursor {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += max(1, RuneWidth(r))
	}
	if p.cursor >= len(p.input) {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}
	screen.FillLine(x, y, textStyle)
}
