package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/history"
	"github.com/pstuifzand/tui-grid/internal/layout"
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/render"
	"github.com/pstuifzand/tui-grid/internal/search"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/transform"
	"github.com/pstuifzand/tui-grid/internal/ui"
)

// Mode is what the keyboard currently drives
type Mode string

const (
	NormalMode  Mode = "NORMAL"
	CommandMode Mode = "COMMAND"
	FindMode    Mode = "FIND"
	EditMode    Mode = "EDIT"
)

// statusHeight is the number of rows below the grid
const statusHeight = 1

// Options configures an App
type Options struct {
	Theme *theme.GridTheme
	Model model.GridModel
	// Layouts stores layouts and prompt histories; nil disables :w and :e
	Layouts *history.Manager
	// Layout is the name of the layout loaded at start and saved by :w
	Layout string
	// SaveModel writes edits of the model; :w calls it before saving the
	// layout. Nil when edits are not stored.
	SaveModel func() error
	Debug     bool
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	theme    *theme.GridTheme
	model    model.GridModel
	calc     *layout.Calculator
	renderer *render.Renderer
	metrics  *metrics.Metrics

	// Scroll position in visible index space
	top, left int

	movedColumns []transform.MoveOperation
	movedRows    []transform.MoveOperation

	// Cursor and anchor are visible cells; the selection spans them
	cursor    gridrange.Cell
	anchor    gridrange.Cell
	selection []gridrange.Range

	mouse     *render.Point
	mouseDown bool

	command *ui.Prompt
	finder  *ui.Prompt
	editor  *ui.Prompt
	help    *ui.HelpScreen
	status  *ui.StatusLine

	findMatches []search.Match
	findIndex   int

	layouts    *history.Manager
	layoutName string
	dirty      bool

	saveModel func() error
	modified  bool

	keybindings []KeyBinding

	quit      bool
	debugMode bool
}

// NewApp creates an App drawing on screen. The layout named in opts is
// loaded when it exists.
func NewApp(screen *ui.Screen, opts Options) (*App, error) {
	if opts.Model == nil {
		return nil, fmt.Errorf("failed to create app: no model")
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}

	a := &App{
		screen:     screen,
		theme:      opts.Theme,
		model:      opts.Model,
		calc:       layout.NewCalculator(),
		renderer:   render.New(),
		command:    ui.NewPrompt(":"),
		finder:     ui.NewPrompt("/"),
		editor:     ui.NewPrompt("= "),
		help:       ui.NewHelpScreen(),
		status:     ui.NewStatusLine(),
		layouts:    opts.Layouts,
		layoutName: opts.Layout,
		saveModel:  opts.SaveModel,
		debugMode:  opts.Debug,
	}
	if a.layouts != nil {
		a.command = ui.NewPromptWithHistory(":", a.layouts, "command")
		a.finder = ui.NewPromptWithHistory("/", a.layouts, "find")
	}

	a.keybindings = a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	a.help.SetKeybindings(infos)

	if a.layouts != nil && a.layoutName != "" {
		if err := a.loadLayout(a.layoutName); err != nil {
			return nil, fmt.Errorf("failed to load layout %q: %w", a.layoutName, err)
		}
	}

	a.relayout()
	a.setCursor(a.firstCell(), false)
	a.status.SetMessage("Press ? for help")
	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	a.screen.EnableMouse()

	// The poller stops when the screen is closed, or when Run has stopped
	// reading events
	eventChan := make(chan tcell.Event)
	done := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		for {
			event := a.screen.PollEvent()
			select {
			case eventChan <- event:
			case <-done:
				return
			}
			if event == nil {
				return
			}
		}
	}()
	defer func() {
		close(done)
		a.Close()
		<-polled
	}()

	// Redraw regularly so status messages time out
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case <-ticker.C:
			a.render()
		}
	}
	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// layoutState is the input of the metric calculator for the current view
func (a *App) layoutState() *layout.State {
	width, height := a.screen.Size()
	return &layout.State{
		Left:         a.left,
		Top:          a.top,
		Width:        width,
		Height:       max(0, height-statusHeight),
		Theme:        a.theme,
		Model:        a.model,
		MovedColumns: a.movedColumns,
		MovedRows:    a.movedRows,
		Measure:      a.screen.MeasureText,
	}
}

// relayout clamps the scroll position and recomputes the metrics
func (a *App) relayout() {
	state := a.layoutState()
	a.top = clamp(a.top, 0, a.calc.GetLastTop(state))
	a.left = clamp(a.left, 0, a.calc.GetLastLeft(state))
	state.Top, state.Left = a.top, a.left
	a.metrics = a.calc.GetMetrics(state)
}

func (a *App) renderState() *render.State {
	state := &render.State{
		Theme:          a.theme,
		Model:          a.model,
		Metrics:        a.metrics,
		Mouse:          a.mouse,
		SelectedRanges: a.selection,
	}
	if a.hasCells() {
		cursor := a.cursor
		state.Cursor = &cursor
	}
	if a.editor.IsActive() {
		state.EditingCell = &render.EditingCell{
			Column: a.cursor.Column,
			Row:    a.cursor.Row,
			Value:  a.editor.Input(),
		}
	}
	return state
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	a.relayout()

	a.renderer.Paint(a.screen, a.renderState())

	y := a.screen.GetHeight() - 1
	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, y)
	case a.finder.IsActive():
		a.finder.Render(a.screen, y)
	case a.editor.IsActive():
		a.editor.Render(a.screen, y)
	default:
		a.status.Render(a.screen, y, string(a.Mode()), a.position())
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

// Mode returns what the keyboard currently drives
func (a *App) Mode() Mode {
	switch {
	case a.command.IsActive():
		return CommandMode
	case a.finder.IsActive():
		return FindMode
	case a.editor.IsActive():
		return EditMode
	}
	return NormalMode
}

// position describes the cursor for the status line
func (a *App) position() string {
	if !a.hasCells() {
		return ""
	}
	column := a.modelColumn(a.cursor.Column)
	row := a.modelRow(a.cursor.Row)
	pos := fmt.Sprintf("%s %d:%d", a.model.TextForColumnHeader(column), row+1, column+1)
	if cells := gridrange.CellCount(a.boundedSelection()); cells > 1 {
		pos = fmt.Sprintf("%.0f cells  %s", cells, pos)
	}
	if a.dirty || a.modified {
		pos += " [+]"
	}
	return pos
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.relayout()
	case *tcell.EventMouse:
		if !a.help.IsVisible() {
			a.handleMouse(ev)
		}
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch {
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	case a.finder.IsActive():
		if query, done := a.finder.HandleKey(ev); done && query != "" {
			a.findColumn(query)
		}
		return
	case a.editor.IsActive():
		if value, done := a.editor.HandleKey(ev); done && ev.Key() == tcell.KeyEnter {
			a.applyEdit(value)
		}
		return
	case a.help.IsVisible():
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q':
			a.help.Hide()
		case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
			a.help.Scroll(1)
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
			a.help.Scroll(-1)
		case ev.Key() == tcell.KeyPgDn:
			a.help.Scroll(a.screen.GetHeight() / 2)
		case ev.Key() == tcell.KeyPgUp:
			a.help.Scroll(-a.screen.GetHeight() / 2)
		}
		return
	}

	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
		log.Printf("key %v rune %q modifiers %v", ev.Key(), ev.Rune(), ev.Modifiers())
	}

	if kb := a.GetKeybindingForEvent(ev); kb != nil {
		kb.Handler(a)
		a.relayout()
	}
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.status.SetMessage(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
