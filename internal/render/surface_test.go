package render

import (
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// call is one recorded drawing call.
type call struct {
	Op    string
	Rect  Rect
	Color theme.Color
	Text  string
	Font  string
}

// recordingSurface records every call instead of drawing.
type recordingSurface struct {
	width, height int
	calls         []call
}

func (s *recordingSurface) record(c call) {
	s.calls = append(s.calls, c)
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }
func (s *recordingSurface) Save()            { s.record(call{Op: "save"}) }
func (s *recordingSurface) Restore()         { s.record(call{Op: "restore"}) }
func (s *recordingSurface) Clip(r Rect)      { s.record(call{Op: "clip", Rect: r}) }
func (s *recordingSurface) Exclude(r Rect)   { s.record(call{Op: "exclude", Rect: r}) }

func (s *recordingSurface) FillRect(r Rect, c theme.Color) {
	s.record(call{Op: "fill", Rect: r, Color: c})
}

func (s *recordingSurface) StrokeRect(r Rect, c theme.Color) {
	s.record(call{Op: "stroke", Rect: r, Color: c})
}

func (s *recordingSurface) RoundRect(r Rect, c theme.Color) {
	s.record(call{Op: "round", Rect: r, Color: c})
}

func (s *recordingSurface) HLine(x1, x2, y int, c theme.Color) {
	s.record(call{Op: "hline", Rect: Rect{X: x1, Y: y, W: x2 - x1, H: 1}, Color: c})
}

func (s *recordingSurface) VLine(x, y1, y2 int, c theme.Color) {
	s.record(call{Op: "vline", Rect: Rect{X: x, Y: y1, W: 1, H: y2 - y1}, Color: c})
}

func (s *recordingSurface) FillText(x, y int, text string, c theme.Color, font string) {
	s.record(call{Op: "text", Rect: Rect{X: x, Y: y, W: utf8.RuneCountInString(text), H: 1}, Color: c, Text: text, Font: font})
}

func (s *recordingSurface) MeasureText(text, font string) int {
	return utf8.RuneCountInString(text)
}

// index returns the position of the first recorded call equal to c, or -1.
func (s *recordingSurface) index(c call) int {
	return slices.Index(s.calls, c)
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// textAt returns the text drawn with its left edge at x, y.
func (s *recordingSurface) textAt(x, y int) []string {
	var texts []string
	for _, c := range s.calls {
		if c.Op == "text" && c.Rect.X == x && c.Rect.Y == y {
			texts = append(texts, c.Text)
		}
	}
	return texts
}

// testModel is a plain grid showing "column,row" in every cell.
type testModel struct {
	model.Base
	rows, columns int
}

func (m *testModel) RowCount() int    { return m.rows }
func (m *testModel) ColumnCount() int { return m.columns }

func (m *testModel) TextForCell(column, row int) string {
	return strconv.Itoa(column) + "," + strconv.Itoa(row)
}

func (m *testModel) TextForColumnHeader(column int) string {
	return "Col " + strconv.Itoa(column)
}

func (m *testModel) TextForRowHeader(row int) string {
	return strconv.Itoa(row + 1)
}

// testMetrics lays out every row and column on screen with a four unit row
// header and a one unit column header.
func testMetrics(columns, rows, columnWidth int) *metrics.Metrics {
	m := &metrics.Metrics{
		RowHeight:          1,
		RowHeaderWidth:     4,
		ColumnHeaderHeight: 1,
		RowCount:           rows,
		ColumnCount:        columns,
		ColumnWidth:        columnWidth,
		GridX:              4,
		GridY:              1,
		Right:              columns - 1,
		Bottom:             rows - 1,
		RightVisible:       columns - 1,
		BottomVisible:      rows - 1,
		Width:              4 + columns*columnWidth,
		Height:             1 + rows,
		MaxX:               columns * columnWidth,
		MaxY:               rows,

		VisibleRowHeights:   metrics.SizeMap{},
		VisibleColumnWidths: metrics.SizeMap{},
		VisibleRowYs:        metrics.CoordinateMap{},
		VisibleColumnXs:     metrics.CoordinateMap{},
		ModelRows:           metrics.ModelIndexMap{},
		ModelColumns:        metrics.ModelIndexMap{},
		FontWidths:          map[string]float64{},
	}
	for column := range columns {
		m.VisibleColumns = append(m.VisibleColumns, column)
		m.VisibleColumnXs[column] = column * columnWidth
		m.VisibleColumnWidths[column] = columnWidth
		m.ModelColumns[column] = column
	}
	for row := range rows {
		m.VisibleRows = append(m.VisibleRows, row)
		m.VisibleRowYs[row] = row
		m.VisibleRowHeights[row] = 1
		m.ModelRows[row] = row
	}
	m.AllColumns = m.VisibleColumns
	m.AllRows = m.VisibleRows
	return m
}

func paint(state *State) *recordingSurface {
	s := &recordingSurface{width: state.Metrics.Width, height: state.Metrics.Height}
	New().Paint(s, state)
	return s
}
