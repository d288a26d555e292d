package app

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/history"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/search"
	"github.com/pstuifzand/tui-grid/internal/transform"
)

// parseCommand splits a command line into words. Single or double quotes
// group words and a backslash escapes the next character.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	inWord := false
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	if row, err := strconv.Atoi(parts[0]); err == nil {
		a.setCursor(gridrange.Cell{Column: a.cursor.Column, Row: row - 1}, false)
		return
	}

	switch parts[0] {
	case "q", "quit":
		if a.dirty || a.modified {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		a.write(parts[1:])
	case "wq":
		if a.write(parts[1:]) {
			a.quit = true
		}
	case "e", "edit":
		if len(parts) < 2 {
			a.SetStatus("Usage: :e name")
			return
		}
		if err := a.loadLayout(parts[1]); err != nil {
			a.SetStatus("Failed to load layout: " + err.Error())
			return
		}
		a.SetStatus(fmt.Sprintf("Loaded layout %q", parts[1]))
	case "layouts":
		a.listLayouts()
	case "reset":
		a.movedColumns = nil
		a.movedRows = nil
		a.calc.SetUserColumnWidths(nil)
		a.layoutChanged()
		a.setCursor(a.cursor, false)
		a.SetStatus("Layout reset")
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// write saves the model edits and the layout under the name given, or the
// current one. Without a layout name only the model is saved.
func (a *App) write(args []string) bool {
	if a.saveModel != nil {
		if err := a.saveModel(); err != nil {
			log.Printf("Failed to save: %v", err)
			a.SetStatus("Failed to save: " + err.Error())
			return false
		}
		a.modified = false
	}

	name := a.layoutName
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		if a.saveModel != nil {
			a.SetStatus("Saved")
			return true
		}
		a.SetStatus("No layout name, use :w name")
		return false
	}
	if err := a.saveLayout(name); err != nil {
		a.SetStatus("Failed to save layout: " + err.Error())
		return false
	}
	a.SetStatus(fmt.Sprintf("Saved layout %q", name))
	return true
}

var errNoLayouts = errors.New("layouts are not available")

// saveLayout stores the moves and column widths as layout name
func (a *App) saveLayout(name string) error {
	if a.layouts == nil {
		return errNoLayouts
	}
	l := &history.Layout{MovedColumns: a.movedColumns, MovedRows: a.movedRows}
	l.SetWidths(a.calc.UserColumnWidths())
	if err := a.layouts.SaveLayout(name, l); err != nil {
		return err
	}
	a.layoutName = name
	a.dirty = false
	return nil
}

// loadLayout replaces the moves and column widths with layout name. An
// unknown name starts an empty layout.
func (a *App) loadLayout(name string) error {
	if a.layouts == nil {
		return errNoLayouts
	}
	l, err := a.layouts.LoadLayout(name)
	if err != nil {
		return err
	}

	a.movedColumns = l.MovedColumns
	a.movedRows = l.MovedRows
	a.calc.SetUserColumnWidths(l.Widths())
	a.layoutName = name
	a.dirty = false

	a.clampCursor()
	return nil
}

func (a *App) listLayouts() {
	if a.layouts == nil {
		a.SetStatus(errNoLayouts.Error())
		return
	}
	names, err := a.layouts.Layouts()
	if err != nil {
		a.SetStatus("Failed to list layouts: " + err.Error())
		return
	}
	if len(names) == 0 {
		a.SetStatus("No saved layouts")
		return
	}
	a.SetStatus("Layouts: " + strings.Join(names, ", "))
}

// findColumn jumps to the column whose header best matches query
func (a *App) findColumn(query string) {
	headers := make([]string, a.model.ColumnCount())
	for i := range headers {
		headers[i] = a.model.TextForColumnHeader(i)
	}

	matches, err := search.FindColumns(query, headers)
	if err != nil {
		a.SetStatus("Invalid query: " + err.Error())
		return
	}
	if len(matches) == 0 {
		a.findMatches = nil
		a.SetStatus("No columns match: " + query)
		return
	}

	a.findMatches = matches
	a.findIndex = 0
	a.jumpToMatch()
}

// nextMatch moves to the next or previous column found by the last query
func (a *App) nextMatch(step int) {
	if len(a.findMatches) == 0 {
		a.SetStatus("No column search")
		return
	}
	a.findIndex = (a.findIndex + step + len(a.findMatches)) % len(a.findMatches)
	a.jumpToMatch()
}

func (a *App) jumpToMatch() {
	match := a.findMatches[a.findIndex]
	if transform.CheckColumnHidden(match.Index, a.calc.UserColumnWidths()) {
		a.calc.ResetColumnWidth(match.Index)
		a.layoutChanged()
	}
	column := transform.GetVisibleIndex(match.Index, a.movedColumns)
	a.setCursor(gridrange.Cell{Column: column, Row: a.cursor.Row}, false)
	a.SetStatus(fmt.Sprintf("%s (%d of %d)", match.Header, a.findIndex+1, len(a.findMatches)))
}

// startEdit opens the editor with the value of the cursor cell
func (a *App) startEdit() {
	e, ok := model.AsEditable(a.model)
	if !ok || !a.hasCells() {
		a.SetStatus("Grid is read only")
		return
	}
	a.editor.StartWith(e.EditValueForCell(a.modelColumn(a.cursor.Column), a.modelRow(a.cursor.Row)))
}

// applyEdit sets value on the cursor cell, or on every selected cell when
// more than one is selected
func (a *App) applyEdit(value string) {
	e, ok := model.AsEditable(a.model)
	if !ok {
		return
	}
	column, row := a.modelColumn(a.cursor.Column), a.modelRow(a.cursor.Row)
	if !e.IsValidForCell(column, row, value) {
		a.SetStatus(fmt.Sprintf("Invalid value %q", value))
		return
	}

	var err error
	if gridrange.CellCount(a.boundedSelection()) > 1 {
		err = e.SetValueForRanges(a.modelSelection(), value)
	} else {
		err = e.SetValueForCell(column, row, value)
	}
	if err != nil {
		log.Printf("Failed to set value: %v", err)
		a.SetStatus("Failed to set value: " + err.Error())
	}
	a.markModified()
}

// markModified records an edit that :w has to save
func (a *App) markModified() {
	a.modified = a.saveModel != nil
}

// modelSelection is the selection in model index space, limited to the grid
func (a *App) modelSelection() []gridrange.Range {
	ranges := transform.GetModelRanges(a.boundedSelection(), a.movedColumns, a.movedRows)
	return gridrange.Consolidate(ranges)
}

// deleteSelection clears the selected cells
func (a *App) deleteSelection() {
	d, ok := model.AsDeletable(a.model)
	if !ok || !a.hasCells() {
		a.SetStatus("Grid is read only")
		return
	}
	if err := d.DeleteRanges(a.modelSelection()); err != nil {
		log.Printf("Failed to delete: %v", err)
		a.SetStatus("Failed to delete: " + err.Error())
		return
	}
	a.markModified()
	a.SetStatus(fmt.Sprintf("Deleted %.0f cells", gridrange.CellCount(a.boundedSelection())))
}
