package app

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/transform"
	"github.com/pstuifzand/tui-grid/internal/tree"
	"github.com/pstuifzand/tui-grid/internal/ui"
)

// newTestApp runs an app on an 80x24 simulation screen. Columns are 14
// cells wide, the grid starts at x 7 and y 1 and rows 0 to 20 fit.
func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	a, _ := newSimApp(t, opts)
	return a
}

func newSimApp(t *testing.T, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(80, 24)
	screen.Clear()
	t.Cleanup(func() { screen.Close() })

	if opts.Theme == nil {
		opts.Theme = theme.Default()
		opts.Theme.AutoSizeColumns = false
	}
	if opts.Model == nil {
		opts.Model = model.NewSample(model.SampleOptions{RowCount: 100, ColumnCount: 20})
	}
	a, err := NewApp(screen, opts)
	require.NoError(t, err)
	return a, sim
}

func newTreeApp(t *testing.T) (*App, *tree.Model) {
	t.Helper()
	m := tree.New(tree.Options{RowCount: 5, ColumnCount: 3, ChildRowCount: 2, MaxDepth: 2})
	return newTestApp(t, Options{Model: m}), m
}

func press(a *App, key tcell.Key, mod tcell.ModMask) {
	a.handleRawEvent(tcell.NewEventKey(key, 0, mod))
}

func typeString(a *App, s string) {
	for _, r := range s {
		a.handleRawEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// command types a : command and enters it
func command(a *App, cmd string) {
	typeString(a, ":"+cmd)
	press(a, tcell.KeyEnter, tcell.ModNone)
}

func clickAt(a *App, x, y int, mod tcell.ModMask) {
	a.handleRawEvent(tcell.NewEventMouse(x, y, tcell.Button1, mod))
	a.handleRawEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, mod))
}

func screenText(a *App) string {
	var b strings.Builder
	width, height := a.screen.Size()
	for y := range height {
		for x := range width {
			r, _ := a.screen.GetCell(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestNewAppRequiresModel(t *testing.T) {
	_, err := NewApp(nil, Options{})
	assert.Error(t, err)
}

func TestNewAppStartsAtFirstCell(t *testing.T) {
	a := newTestApp(t, Options{})

	assert.Equal(t, gridrange.Cell{}, a.cursor)
	assert.Equal(t, []gridrange.Range{gridrange.MakeCell(0, 0)}, a.selection)
	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, 20, a.metrics.BottomVisible)
	assert.Equal(t, 4, a.metrics.RightVisible)
}

func TestMoveCursor(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "jjjll")
	assert.Equal(t, gridrange.Cell{Column: 2, Row: 3}, a.cursor)
	assert.Equal(t, []gridrange.Range{gridrange.MakeCell(2, 3)}, a.selection)

	press(a, tcell.KeyUp, tcell.ModNone)
	press(a, tcell.KeyLeft, tcell.ModNone)
	assert.Equal(t, gridrange.Cell{Column: 1, Row: 2}, a.cursor)

	// The cursor stops at the edges
	typeString(a, "hhhkkk")
	assert.Equal(t, gridrange.Cell{}, a.cursor)

	typeString(a, "G")
	assert.Equal(t, 99, a.cursor.Row)
	typeString(a, "g")
	assert.Equal(t, 0, a.cursor.Row)
}

func TestExtendSelection(t *testing.T) {
	a := newTestApp(t, Options{})

	press(a, tcell.KeyRight, tcell.ModShift)
	press(a, tcell.KeyRight, tcell.ModShift)
	press(a, tcell.KeyDown, tcell.ModShift)

	assert.Equal(t, gridrange.Cell{Column: 2, Row: 1}, a.cursor)
	assert.Equal(t, gridrange.Cell{}, a.anchor)
	assert.Equal(t, []gridrange.Range{gridrange.NewBounded(0, 0, 2, 1)}, a.selection)
	assert.Contains(t, a.position(), "6 cells")

	// A plain move collapses the selection again
	typeString(a, "j")
	assert.Equal(t, []gridrange.Range{gridrange.MakeCell(2, 2)}, a.selection)
}

func TestNextSelectedCell(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, tcell.KeyRight, tcell.ModShift)
	press(a, tcell.KeyDown, tcell.ModShift)
	a.cursor = gridrange.Cell{}

	press(a, tcell.KeyTab, tcell.ModNone)
	assert.Equal(t, gridrange.Cell{Column: 1, Row: 0}, a.cursor)
	press(a, tcell.KeyTab, tcell.ModNone)
	assert.Equal(t, gridrange.Cell{Column: 0, Row: 1}, a.cursor)
	assert.Equal(t, []gridrange.Range{gridrange.NewBounded(0, 0, 1, 1)}, a.selection)

	// Without a selection Enter moves down
	typeString(a, "l")
	press(a, tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, gridrange.Cell{Column: 1, Row: 2}, a.cursor)
}

func TestScrollFollowsCursor(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, strings.Repeat("j", 21))
	assert.Equal(t, 21, a.cursor.Row)
	assert.Positive(t, a.top)
	assert.GreaterOrEqual(t, a.metrics.BottomVisible, 21)

	typeString(a, "g")
	assert.Equal(t, 0, a.top)

	typeString(a, strings.Repeat("l", 6))
	assert.Positive(t, a.left)
	assert.GreaterOrEqual(t, a.metrics.RightVisible, 6)
}

func TestFloatingRowsDoNotScroll(t *testing.T) {
	a := newTestApp(t, Options{Model: model.NewSample(model.SampleOptions{
		RowCount: 100, ColumnCount: 20, FloatingTopRowCount: 2,
	})})

	typeString(a, strings.Repeat("j", 30))
	top := a.top
	require.Positive(t, top)

	typeString(a, strings.Repeat("k", 29))
	assert.Equal(t, 1, a.cursor.Row)
	assert.Equal(t, 0, a.top)
	assert.True(t, transform.IsFloatingRow(a.cursor.Row, a.metrics))
}

func TestMoveColumns(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "L")
	assert.Equal(t, []transform.MoveOperation{{From: 0, To: 1}}, a.movedColumns)
	assert.Equal(t, 1, a.cursor.Column)
	assert.Equal(t, 0, a.modelColumn(1))
	assert.Equal(t, 1, a.modelColumn(0))
	assert.False(t, a.dirty, "no layouts, nothing to save")

	// Moving back cancels the move
	typeString(a, "H")
	assert.Empty(t, a.movedColumns)
	assert.Equal(t, 0, a.cursor.Column)

	// The first column cannot move further left
	typeString(a, "H")
	assert.Empty(t, a.movedColumns)
}

func TestMoveRowBlock(t *testing.T) {
	a := newTestApp(t, Options{})

	press(a, tcell.KeyDown, tcell.ModShift)
	press(a, tcell.KeyDown, tcell.ModShift)
	typeString(a, "J")

	assert.Equal(t, []gridrange.Range{gridrange.NewBounded(0, 1, 0, 3)}, a.selection)
	assert.Equal(t, 3, a.cursor.Row)
	assert.Equal(t, 3, a.modelRow(0))
	assert.Equal(t, 0, a.modelRow(1))
	assert.Equal(t, 2, a.modelRow(3))
}

func TestTreeRowsDoNotMove(t *testing.T) {
	a, _ := newTreeApp(t)

	typeString(a, "J")
	assert.Empty(t, a.movedRows)
	assert.Equal(t, "Row cannot be moved", a.status.Message())
}

func TestResizeColumn(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, ">")
	assert.Equal(t, metrics.ModelSizeMap{0: 15}, a.calc.UserColumnWidths())

	typeString(a, "<<")
	assert.Equal(t, metrics.ModelSizeMap{0: 13}, a.calc.UserColumnWidths())

	typeString(a, strings.Repeat("<", 20))
	assert.Equal(t, metrics.ModelSizeMap{0: a.theme.MinColumnWidth}, a.calc.UserColumnWidths())

	typeString(a, "=")
	assert.Empty(t, a.calc.UserColumnWidths())
}

func TestHideColumn(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "z")
	assert.Equal(t, metrics.ModelSizeMap{0: 0}, a.calc.UserColumnWidths())
	assert.Equal(t, 1, a.cursor.Column)

	// Hidden columns are skipped
	typeString(a, "h")
	assert.Equal(t, 1, a.cursor.Column)

	typeString(a, "Z")
	assert.Empty(t, a.calc.UserColumnWidths())
	typeString(a, "h")
	assert.Equal(t, 0, a.cursor.Column)
}

func TestToggleTreeRow(t *testing.T) {
	a, m := newTreeApp(t)

	typeString(a, " ")
	assert.Equal(t, 7, m.RowCount())
	assert.True(t, m.IsRowExpanded(0))

	typeString(a, " ")
	assert.Equal(t, 5, m.RowCount())
}

func TestExpandAndCollapseAll(t *testing.T) {
	a, m := newTreeApp(t)

	typeString(a, "E")
	assert.Greater(t, m.RowCount(), 7)

	typeString(a, "G")
	require.Equal(t, m.RowCount()-1, a.cursor.Row)

	typeString(a, "C")
	assert.Equal(t, 5, m.RowCount())
	assert.Equal(t, 4, a.cursor.Row)
}

func TestSampleHasNoTree(t *testing.T) {
	a := newTestApp(t, Options{})
	rows := a.model.RowCount()

	typeString(a, " EC")
	assert.Equal(t, rows, a.model.RowCount())
}

func TestEditCell(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "li")
	require.Equal(t, EditMode, a.Mode())
	assert.Equal(t, a.model.TextForCell(1, 0), a.editor.Input())

	press(a, tcell.KeyCtrlU, tcell.ModNone)
	typeString(a, "12.50")
	assert.Equal(t, "12.50", a.renderState().EditingCell.Value)
	press(a, tcell.KeyEnter, tcell.ModNone)

	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, "12.50", a.model.TextForCell(1, 0))
}

func TestEditRejectsInvalidValue(t *testing.T) {
	a := newTestApp(t, Options{})
	before := a.model.TextForCell(1, 0)

	typeString(a, "li")
	press(a, tcell.KeyCtrlU, tcell.ModNone)
	typeString(a, "abc")
	press(a, tcell.KeyEnter, tcell.ModNone)

	assert.Equal(t, before, a.model.TextForCell(1, 0))
	assert.Equal(t, `Invalid value "abc"`, a.status.Message())
}

func TestEditCancel(t *testing.T) {
	a := newTestApp(t, Options{})
	before := a.model.TextForCell(0, 0)

	typeString(a, "ix")
	press(a, tcell.KeyEscape, tcell.ModNone)

	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, before, a.model.TextForCell(0, 0))
}

func TestEditSelectionFollowsMovedColumns(t *testing.T) {
	a := newTestApp(t, Options{})

	// Column 3 is shown first, then select visible columns 0 and 1
	typeString(a, "lllHHH")
	press(a, tcell.KeyRight, tcell.ModShift)
	typeString(a, "i")
	press(a, tcell.KeyCtrlU, tcell.ModNone)
	typeString(a, "x")
	press(a, tcell.KeyEnter, tcell.ModNone)

	assert.Equal(t, "x", a.model.TextForCell(3, 0))
	assert.Equal(t, "x", a.model.TextForCell(0, 0))
	assert.NotEqual(t, "x", a.model.TextForCell(1, 0))
	assert.Equal(t, "2,0", a.model.TextForCell(2, 0))
}

func TestDeleteSelection(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "ll")
	press(a, tcell.KeyRight, tcell.ModShift)
	press(a, tcell.KeyDown, tcell.ModShift)
	typeString(a, "x")

	for _, c := range []gridrange.Cell{{Column: 2, Row: 0}, {Column: 3, Row: 0}, {Column: 2, Row: 1}, {Column: 3, Row: 1}} {
		assert.Empty(t, a.model.TextForCell(c.Column, c.Row), "cell %v", c)
	}
	assert.Equal(t, "4,0", a.model.TextForCell(4, 0))
	assert.Equal(t, "Deleted 4 cells", a.status.Message())
}

func TestReadOnlyModel(t *testing.T) {
	a, _ := newTreeApp(t)

	typeString(a, "x")
	assert.Equal(t, "Grid is read only", a.status.Message())
	typeString(a, "i")
	assert.Equal(t, NormalMode, a.Mode())
}

func TestSelectAll(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "a")
	assert.Equal(t, []gridrange.Range{gridrange.Full()}, a.selection)
	assert.Contains(t, a.position(), "2000 cells")
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, "?")
	assert.True(t, a.help.IsVisible())

	// Keys go to the help screen while it is open
	typeString(a, "j")
	assert.Equal(t, 0, a.cursor.Row)

	press(a, tcell.KeyEscape, tcell.ModNone)
	assert.False(t, a.help.IsVisible())
}

func TestKeybindingInfo(t *testing.T) {
	a := newTestApp(t, Options{})

	kb := a.GetKeybindingByKey('?')
	require.NotNil(t, kb)
	assert.Equal(t, "?", kb.GetKey())
	assert.Equal(t, "Toggle help", kb.GetDescription())

	kb = a.GetKeybindingByKey(' ')
	require.NotNil(t, kb)
	assert.Equal(t, "Space", kb.GetKey())

	assert.Nil(t, a.GetKeybindingByKey('§'))

	shiftUp := a.GetKeybindingForEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift))
	require.NotNil(t, shiftUp)
	assert.Equal(t, "Extend selection up", shiftUp.Description)
}

func TestMouseClick(t *testing.T) {
	a := newTestApp(t, Options{})

	clickAt(a, 7+2*14+1, 1+3, tcell.ModNone)
	assert.Equal(t, gridrange.Cell{Column: 2, Row: 3}, a.cursor)
	assert.Equal(t, []gridrange.Range{gridrange.MakeCell(2, 3)}, a.selection)

	clickAt(a, 7+3*14+1, 1+4, tcell.ModShift)
	assert.Equal(t, []gridrange.Range{gridrange.NewBounded(2, 3, 3, 4)}, a.selection)
}

func TestMouseHeaderClick(t *testing.T) {
	a := newTestApp(t, Options{})

	clickAt(a, 7+2*14+1, 0, tcell.ModNone)
	assert.Equal(t, []gridrange.Range{gridrange.MakeColumn(2)}, a.selection)

	clickAt(a, 2, 1+4, tcell.ModNone)
	assert.Equal(t, []gridrange.Range{gridrange.MakeRow(4)}, a.selection)

	clickAt(a, 2, 1+6, tcell.ModShift)
	assert.Equal(t, []gridrange.Range{gridrange.New(gridrange.Unbounded, gridrange.At(4), gridrange.Unbounded, gridrange.At(6))}, a.selection)
}

func TestMouseDrag(t *testing.T) {
	a := newTestApp(t, Options{})

	a.handleRawEvent(tcell.NewEventMouse(8, 1, tcell.Button1, tcell.ModNone))
	a.handleRawEvent(tcell.NewEventMouse(7+14+1, 2, tcell.Button1, tcell.ModNone))
	a.handleRawEvent(tcell.NewEventMouse(7+2*14+1, 4, tcell.Button1, tcell.ModNone))
	a.handleRawEvent(tcell.NewEventMouse(7+2*14+1, 4, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []gridrange.Range{gridrange.NewBounded(0, 0, 2, 3)}, a.selection)
	assert.False(t, a.mouseDown)
	require.NotNil(t, a.mouse)
	assert.Equal(t, 4, a.mouse.Y)
}

func TestMouseWheel(t *testing.T) {
	a := newTestApp(t, Options{})

	a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, WheelLines, a.top)

	a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelUp, tcell.ModNone))
	a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelUp, tcell.ModNone))
	assert.Equal(t, 0, a.top)

	a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelRight, tcell.ModNone))
	assert.Equal(t, 1, a.left)

	if runtime.GOOS != "darwin" {
		// Shift turns vertical scrolling horizontal
		a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelDown, tcell.ModShift))
		assert.Equal(t, 2, a.left)
		assert.Equal(t, 0, a.top)
	}
}

func TestMouseWheelStopsAtLastTop(t *testing.T) {
	a := newTestApp(t, Options{})

	for range 50 {
		a.handleRawEvent(tcell.NewEventMouse(20, 10, tcell.WheelDown, tcell.ModNone))
	}
	assert.Equal(t, a.metrics.LastTop, a.top)
}

func TestTreeMarkerClick(t *testing.T) {
	a, m := newTreeApp(t)

	// The marker of a top level row sits one cell into the first column
	clickAt(a, 7+1, 1, tcell.ModNone)
	assert.True(t, m.IsRowExpanded(0))
	assert.Equal(t, 7, m.RowCount())

	// Clicking the text selects instead
	clickAt(a, 7+5, 1, tcell.ModNone)
	assert.True(t, m.IsRowExpanded(0))
	assert.Equal(t, gridrange.Cell{}, a.cursor)
}

func TestRender(t *testing.T) {
	a := newTestApp(t, Options{})
	a.render()

	text := screenText(a)
	lines := strings.Split(text, "\n")
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[0], "Amount")
	assert.Contains(t, lines[1], "2,0")
	assert.Contains(t, lines[2], "2,1")
	assert.Contains(t, lines[23], "NORMAL")
	assert.Contains(t, lines[23], "Date 1:1")
}

func TestRenderPromptAndHelp(t *testing.T) {
	a := newTestApp(t, Options{})

	typeString(a, ":wq")
	a.render()
	lines := strings.Split(screenText(a), "\n")
	assert.True(t, strings.HasPrefix(lines[23], ":wq"))
	press(a, tcell.KeyEscape, tcell.ModNone)

	typeString(a, "?")
	a.render()
	assert.Contains(t, screenText(a), "Move up")
	assert.NotContains(t, screenText(a), "Toggle help")

	// The last bindings are reached by scrolling
	typeString(a, strings.Repeat("j", 25))
	a.render()
	assert.Contains(t, screenText(a), "Toggle help")
	assert.Equal(t, 0, a.cursor.Row)
}

func TestRunStopsOnQuit(t *testing.T) {
	a, sim := newSimApp(t, Options{})
	errc := make(chan error, 1)
	go func() { errc <- a.Run() }()

	sim.InjectKey(tcell.KeyRune, ':', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	// Run waits for the event poller before it returns
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after :q")
	}
	assert.True(t, a.quit)
	assert.NoError(t, a.Close())
}
