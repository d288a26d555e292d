package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/gridrange"
)

// KeyBinding represents a key binding with its description and handler.
// Bindings with Key tcell.KeyRune match on Rune; the others on Key and the
// shift modifier.
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Shift       bool
	Name        string
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding as shown in the help
func (kb *KeyBinding) GetKey() string {
	if kb.Name != "" {
		return kb.Name
	}
	return string(kb.Rune)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// Matches reports whether ev triggers this binding
func (kb *KeyBinding) Matches(ev *tcell.EventKey) bool {
	if kb.Key == tcell.KeyRune {
		return ev.Key() == tcell.KeyRune && ev.Rune() == kb.Rune
	}
	shift := ev.Modifiers()&tcell.ModShift != 0
	return ev.Key() == kb.Key && shift == kb.Shift
}

func runeKey(r rune, description string, handler func(*App)) KeyBinding {
	return KeyBinding{Key: tcell.KeyRune, Rune: r, Description: description, Handler: handler}
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: tcell.KeyUp, Name: "↑", Description: "Move up", Handler: func(app *App) { app.moveCursor(0, -1, false) }},
		{Key: tcell.KeyDown, Name: "↓", Description: "Move down", Handler: func(app *App) { app.moveCursor(0, 1, false) }},
		{Key: tcell.KeyLeft, Name: "←", Description: "Move left", Handler: func(app *App) { app.moveCursor(-1, 0, false) }},
		{Key: tcell.KeyRight, Name: "→", Description: "Move right", Handler: func(app *App) { app.moveCursor(1, 0, false) }},
		{Key: tcell.KeyUp, Shift: true, Name: "S-↑", Description: "Extend selection up", Handler: func(app *App) { app.moveCursor(0, -1, true) }},
		{Key: tcell.KeyDown, Shift: true, Name: "S-↓", Description: "Extend selection down", Handler: func(app *App) { app.moveCursor(0, 1, true) }},
		{Key: tcell.KeyLeft, Shift: true, Name: "S-←", Description: "Extend selection left", Handler: func(app *App) { app.moveCursor(-1, 0, true) }},
		{Key: tcell.KeyRight, Shift: true, Name: "S-→", Description: "Extend selection right", Handler: func(app *App) { app.moveCursor(1, 0, true) }},
		runeKey('j', "Move down", func(app *App) { app.moveCursor(0, 1, false) }),
		runeKey('k', "Move up", func(app *App) { app.moveCursor(0, -1, false) }),
		runeKey('h', "Move left", func(app *App) { app.moveCursor(-1, 0, false) }),
		runeKey('l', "Move right", func(app *App) { app.moveCursor(1, 0, false) }),
		{Key: tcell.KeyPgDn, Name: "PgDn", Description: "Page down", Handler: func(app *App) { app.page(1) }},
		{Key: tcell.KeyPgUp, Name: "PgUp", Description: "Page up", Handler: func(app *App) { app.page(-1) }},
		runeKey('g', "Go to first row", func(app *App) {
			app.setCursor(gridrange.Cell{Column: app.cursor.Column, Row: 0}, false)
		}),
		runeKey('G', "Go to last row", func(app *App) {
			app.setCursor(gridrange.Cell{Column: app.cursor.Column, Row: app.model.RowCount() - 1}, false)
		}),
		{Key: tcell.KeyTab, Name: "Tab", Description: "Next cell in selection", Handler: func(app *App) { app.nextSelectedCell(gridrange.Right) }},
		{Key: tcell.KeyBacktab, Name: "S-Tab", Description: "Previous cell in selection", Handler: func(app *App) { app.nextSelectedCell(gridrange.Left) }},
		{Key: tcell.KeyEnter, Name: "Enter", Description: "Next cell down in selection", Handler: func(app *App) { app.nextSelectedCell(gridrange.Down) }},
		runeKey('H', "Move column left", func(app *App) { app.moveColumns(-1) }),
		runeKey('L', "Move column right", func(app *App) { app.moveColumns(1) }),
		runeKey('K', "Move row up", func(app *App) { app.moveRows(-1) }),
		runeKey('J', "Move row down", func(app *App) { app.moveRows(1) }),
		runeKey('<', "Narrow column", func(app *App) { app.resizeColumn(-1) }),
		runeKey('>', "Widen column", func(app *App) { app.resizeColumn(1) }),
		runeKey('=', "Reset column width", func(app *App) { app.resetColumnWidth() }),
		runeKey('z', "Hide column", func(app *App) { app.hideColumn() }),
		runeKey('Z', "Show hidden columns", func(app *App) { app.showColumns() }),
		{Key: tcell.KeyRune, Rune: ' ', Name: "Space", Description: "Expand/collapse row", Handler: func(app *App) { app.toggleRow() }},
		runeKey('E', "Expand all rows", func(app *App) { app.setAllExpanded(true) }),
		runeKey('C', "Collapse all rows", func(app *App) { app.setAllExpanded(false) }),
		runeKey('a', "Select all", func(app *App) {
			app.selection = []gridrange.Range{gridrange.Full()}
		}),
		runeKey('i', "Edit cell", func(app *App) { app.startEdit() }),
		runeKey('x', "Delete selection", func(app *App) { app.deleteSelection() }),
		runeKey('/', "Find column", func(app *App) { app.finder.Start() }),
		runeKey('n', "Next found column", func(app *App) { app.nextMatch(1) }),
		runeKey('N', "Previous found column", func(app *App) { app.nextMatch(-1) }),
		runeKey(':', "Command", func(app *App) { app.command.Start() }),
		runeKey('?', "Toggle help", func(app *App) { app.help.Toggle() }),
	}
}

// GetKeybindingForEvent returns the keybinding triggered by ev
func (a *App) GetKeybindingForEvent(ev *tcell.EventKey) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Matches(ev) {
			return &a.keybindings[i]
		}
	}
	return nil
}

// GetKeybindingByKey returns the rune keybinding for key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == tcell.KeyRune && a.keybindings[i].Rune == key {
			return &a.keybindings[i]
		}
	}
	return nil
}
