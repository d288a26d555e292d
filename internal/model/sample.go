package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
)

// DefaultDateFormat is the strftime layout of the date column.
const DefaultDateFormat = "%Y-%m-%d %H:%M"

const (
	sampleDateColumn   = 0
	sampleAmountColumn = 1
)

// SampleOptions configures a Sample model.
type SampleOptions struct {
	RowCount    int
	ColumnCount int

	FloatingTopRowCount      int
	FloatingBottomRowCount   int
	FloatingLeftColumnCount  int
	FloatingRightColumnCount int

	// DateFormat is a strftime layout; empty uses DefaultDateFormat
	DateFormat string
	// Start is the date of row 0. Each row is one hour later.
	Start time.Time
}

// Sample is a large virtual table. Values are computed from the cell
// position; edits are kept in memory on top of them.
type Sample struct {
	Base
	opts   SampleOptions
	edited map[gridrange.Cell]string
}

// NewSample creates a sample model.
func NewSample(opts SampleOptions) *Sample {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.Start.IsZero() {
		opts.Start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Sample{
		opts:   opts,
		edited: make(map[gridrange.Cell]string),
	}
}

func (s *Sample) RowCount() int    { return s.opts.RowCount }
func (s *Sample) ColumnCount() int { return s.opts.ColumnCount }

func (s *Sample) FloatingTopRowCount() int      { return s.opts.FloatingTopRowCount }
func (s *Sample) FloatingBottomRowCount() int   { return s.opts.FloatingBottomRowCount }
func (s *Sample) FloatingLeftColumnCount() int  { return s.opts.FloatingLeftColumnCount }
func (s *Sample) FloatingRightColumnCount() int { return s.opts.FloatingRightColumnCount }

func (s *Sample) dateForRow(row int) time.Time {
	return s.opts.Start.Add(time.Duration(row) * time.Hour)
}

func amountForRow(row int) int {
	return (row*7919+13)%200001 - 100000
}

func (s *Sample) TextForCell(column, row int) string {
	if text, ok := s.edited[gridrange.Cell{Column: column, Row: row}]; ok {
		return text
	}

	switch column {
	case sampleDateColumn:
		return strftime.Format(s.opts.DateFormat, s.dateForRow(row))
	case sampleAmountColumn:
		amount := amountForRow(row)
		sign := ""
		if amount < 0 {
			sign = "-"
			amount = -amount
		}
		return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
	}
	return fmt.Sprintf("%d,%d", column, row)
}

func (s *Sample) TextAlignForCell(column, row int) Align {
	if column == sampleAmountColumn {
		return AlignRight
	}
	return AlignLeft
}

func (s *Sample) TextForColumnHeader(column int) string {
	switch column {
	case sampleDateColumn:
		return "Date"
	case sampleAmountColumn:
		return "Amount"
	}
	return fmt.Sprintf("Column %d", column)
}

func (s *Sample) TextForRowHeader(row int) string {
	return strconv.Itoa(row + 1)
}

// DateFormat returns the strftime layout used by the date column.
func (s *Sample) DateFormat() string {
	return s.opts.DateFormat
}

func (s *Sample) IsEditable() bool {
	return true
}

func (s *Sample) IsEditableRange(r gridrange.Range) bool {
	return r.IsBounded()
}

func (s *Sample) EditValueForCell(column, row int) string {
	return s.TextForCell(column, row)
}

func (s *Sample) IsValidForCell(column, row int, value string) bool {
	if column != sampleAmountColumn {
		return true
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func (s *Sample) SetValueForCell(column, row int, value string) error {
	if column < 0 || column >= s.opts.ColumnCount || row < 0 || row >= s.opts.RowCount {
		return fmt.Errorf("cell %d,%d is outside the table", column, row)
	}
	if !s.IsValidForCell(column, row, value) {
		return fmt.Errorf("invalid value %q for %s", value, s.TextForColumnHeader(column))
	}
	s.edited[gridrange.Cell{Column: column, Row: row}] = value
	return nil
}

func (s *Sample) SetValueForRanges(ranges []gridrange.Range, value string) error {
	for _, r := range ranges {
		if !s.IsEditableRange(r) {
			return fmt.Errorf("range %s is not editable", r)
		}
	}
	for _, r := range ranges {
		var err error
		r.ForEach(func(column, row, _ int) {
			if err == nil {
				err = s.SetValueForCell(column, row, value)
			}
		}, gridrange.Right)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Sample) IsDeletable() bool {
	return true
}

// DeleteRanges clears the cells of ranges. Unbounded ranges are limited to
// the table first.
func (s *Sample) DeleteRanges(ranges []gridrange.Range) error {
	bounded := gridrange.BoundedRanges(ranges, s.opts.ColumnCount, s.opts.RowCount)
	return s.SetValueForRanges(bounded, "")
}
