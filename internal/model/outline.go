package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
)

// Item is a single node of an outline document
type Item struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Children []*Item   `json:"children,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Parent   *Item     `json:"-"`
	Expanded bool      `json:"-"`
}

// Metadata holds the extra fields shown as columns
type Metadata struct {
	Tags     []string  `json:"tags,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// Outline is an outline document
type Outline struct {
	Items []*Item `json:"items"`
}

// NewItem creates an item with a generated ID
func NewItem(text string) *Item {
	now := time.Now()
	return &Item{
		ID:       generateID(now),
		Text:     text,
		Children: make([]*Item, 0),
		Metadata: &Metadata{Created: now, Modified: now},
	}
}

// NewOutline creates an empty outline
func NewOutline() *Outline {
	return &Outline{Items: make([]*Item, 0)}
}

// AddChild adds a child item to this item
func (i *Item) AddChild(child *Item) {
	child.Parent = i
	i.Children = append(i.Children, child)
}

// Walk calls fn for every item depth first. Returning false skips the
// children of that item.
func (o *Outline) Walk(fn func(item *Item, depth int) bool) {
	var walk func(items []*Item, depth int)
	walk = func(items []*Item, depth int) {
		for _, item := range items {
			if fn(item, depth) {
				walk(item.Children, depth+1)
			}
		}
	}
	walk(o.Items, 0)
}

func generateID(now time.Time) string {
	return "item_" + now.Format("20060102150405") + "_" + randomString(now, 8)
}

func randomString(now time.Time, length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range length {
		result[i] = chars[int(now.UnixNano()+int64(i))%len(chars)]
	}
	return string(result)
}

// Outline grid columns
const (
	OutlineTextColumn = iota
	OutlineTagsColumn
	OutlineCreatedColumn
	OutlineModifiedColumn
	OutlineNotesColumn
	outlineColumnCount
)

var outlineColumnNames = [outlineColumnCount]string{"Text", "Tags", "Created", "Modified", "Notes"}

type outlineRow struct {
	item  *Item
	depth int
}

// OutlineModel shows an outline as a tree grid. Each row is an item whose
// ancestors are all expanded.
type OutlineModel struct {
	Base
	outline    *Outline
	dateFormat string
	rows       []outlineRow
}

// NewOutlineModel creates a grid model over outline. Dates are formatted
// with the strftime layout dateFormat.
func NewOutlineModel(outline *Outline, dateFormat string) *OutlineModel {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	m := &OutlineModel{outline: outline, dateFormat: dateFormat}
	m.rebuild()
	return m
}

func (m *OutlineModel) rebuild() {
	m.rows = m.rows[:0]
	m.outline.Walk(func(item *Item, depth int) bool {
		m.rows = append(m.rows, outlineRow{item: item, depth: depth})
		return item.Expanded
	})
}

// ItemForRow returns the item shown at row.
func (m *OutlineModel) ItemForRow(row int) (*Item, bool) {
	if row < 0 || row >= len(m.rows) {
		return nil, false
	}
	return m.rows[row].item, true
}

func (m *OutlineModel) RowCount() int    { return len(m.rows) }
func (m *OutlineModel) ColumnCount() int { return outlineColumnCount }

func (m *OutlineModel) formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strftime.Format(m.dateFormat, t)
}

func (m *OutlineModel) TextForCell(column, row int) string {
	item, ok := m.ItemForRow(row)
	if !ok {
		return ""
	}
	if column == OutlineTextColumn {
		return item.Text
	}
	meta := item.Metadata
	if meta == nil {
		return ""
	}
	switch column {
	case OutlineTagsColumn:
		return strings.Join(meta.Tags, " ")
	case OutlineCreatedColumn:
		return m.formatDate(meta.Created)
	case OutlineModifiedColumn:
		return m.formatDate(meta.Modified)
	case OutlineNotesColumn:
		return strings.ReplaceAll(meta.Notes, "\n", " ")
	}
	return ""
}

func (m *OutlineModel) TextForColumnHeader(column int) string {
	if column < 0 || column >= outlineColumnCount {
		return ""
	}
	return outlineColumnNames[column]
}

func (m *OutlineModel) TextForRowHeader(row int) string {
	return fmt.Sprint(row + 1)
}

// The text column holds the tree, so it stays in front.
func (m *OutlineModel) IsColumnMovable(column int) bool {
	return column != OutlineTextColumn
}

// Rows are ordered by the outline.
func (m *OutlineModel) IsRowMovable(row int) bool {
	return false
}

func (m *OutlineModel) HasExpandableRows() bool {
	return true
}

func (m *OutlineModel) IsRowExpandable(row int) bool {
	item, ok := m.ItemForRow(row)
	return ok && len(item.Children) > 0
}

func (m *OutlineModel) IsRowExpanded(row int) bool {
	item, ok := m.ItemForRow(row)
	return ok && item.Expanded
}

func (m *OutlineModel) DepthForRow(row int) int {
	if row < 0 || row >= len(m.rows) {
		return 0
	}
	return m.rows[row].depth
}

func setExpandedRecursive(item *Item, expanded bool) {
	if len(item.Children) == 0 {
		return
	}
	item.Expanded = expanded
	for _, child := range item.Children {
		setExpandedRecursive(child, expanded)
	}
}

func (m *OutlineModel) SetRowExpanded(row int, expanded, expandDescendants bool) {
	item, ok := m.ItemForRow(row)
	if !ok || len(item.Children) == 0 {
		return
	}
	if expandDescendants {
		setExpandedRecursive(item, expanded)
	} else {
		item.Expanded = expanded
	}
	m.rebuild()
}

func (m *OutlineModel) ExpandAll() {
	for _, item := range m.outline.Items {
		setExpandedRecursive(item, true)
	}
	m.rebuild()
}

func (m *OutlineModel) CollapseAll() {
	for _, item := range m.outline.Items {
		setExpandedRecursive(item, false)
	}
	m.rebuild()
}

func (m *OutlineModel) IsEditable() bool {
	return true
}

// Only the text and notes can be edited; dates are kept by the model.
func (m *OutlineModel) IsEditableRange(r gridrange.Range) bool {
	if !r.IsBounded() {
		return false
	}
	for column := r.StartColumn.MustValue(); column <= r.EndColumn.MustValue(); column++ {
		if column != OutlineTextColumn && column != OutlineNotesColumn && column != OutlineTagsColumn {
			return false
		}
	}
	return true
}

func (m *OutlineModel) EditValueForCell(column, row int) string {
	if column == OutlineNotesColumn {
		if item, ok := m.ItemForRow(row); ok && item.Metadata != nil {
			return item.Metadata.Notes
		}
	}
	return m.TextForCell(column, row)
}

func (m *OutlineModel) IsValidForCell(column, row int, value string) bool {
	if column == OutlineTextColumn {
		return strings.TrimSpace(value) != ""
	}
	return true
}

func (m *OutlineModel) SetValueForCell(column, row int, value string) error {
	item, ok := m.ItemForRow(row)
	if !ok {
		return fmt.Errorf("row %d is outside the outline", row)
	}
	if !m.IsEditableRange(gridrange.MakeCell(column, row)) {
		return fmt.Errorf("column %s is read-only", m.TextForColumnHeader(column))
	}
	if !m.IsValidForCell(column, row, value) {
		return fmt.Errorf("invalid value %q for %s", value, m.TextForColumnHeader(column))
	}
	if item.Metadata == nil {
		item.Metadata = &Metadata{Created: time.Now()}
	}
	switch column {
	case OutlineTextColumn:
		item.Text = value
	case OutlineTagsColumn:
		item.Metadata.Tags = strings.Fields(value)
	case OutlineNotesColumn:
		item.Metadata.Notes = value
	}
	item.Metadata.Modified = time.Now()
	return nil
}

func (m *OutlineModel) SetValueForRanges(ranges []gridrange.Range, value string) error {
	bounded := gridrange.BoundedRanges(ranges, outlineColumnCount, len(m.rows))
	for _, r := range bounded {
		if !m.IsEditableRange(r) {
			return fmt.Errorf("range %s is read-only", r)
		}
	}

	var err error
	gridrange.ForEachCell(bounded, func(column, row, _ int) {
		if err == nil {
			err = m.SetValueForCell(column, row, value)
		}
	}, gridrange.Right)
	return err
}
