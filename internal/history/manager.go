// Package history persists what the user did to a grid between sessions:
// named layouts (moved rows and columns, column widths) and the entries of
// the prompt histories.
package history

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-grid/internal/metrics"
)

// Manager handles loading and saving layouts and prompt histories as TOML
// files.
type Manager struct {
	layoutDir  string
	historyDir string
}

// Layout is the host owned state of a grid that can be restored later.
type Layout struct {
	MovedColumns []metrics.MoveOperation `toml:"moved_columns"`
	MovedRows    []metrics.MoveOperation `toml:"moved_rows"`
	ColumnWidths []ColumnWidth           `toml:"column_widths"`
}

// ColumnWidth is a user set width of a model column. Zero hides the column.
type ColumnWidth struct {
	Column int `toml:"column"`
	Width  int `toml:"width"`
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// ErrInvalidName is returned for layout names that are not a plain file
// name.
var ErrInvalidName = errors.New("invalid layout name")

// NewManager creates a manager storing files under
// ~/.local/share/tui-grid/.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(homeDir, ".local", "share", "tui-grid"))
}

// NewManagerAt creates a manager storing files under dir.
func NewManagerAt(dir string) (*Manager, error) {
	m := &Manager{
		layoutDir:  filepath.Join(dir, "layouts"),
		historyDir: filepath.Join(dir, "history"),
	}
	for _, d := range []string{m.layoutDir, m.historyDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return m, nil
}

func (m *Manager) layoutPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(m.layoutDir, name+".toml"), nil
}

// LoadLayout reads the layout saved under name. A layout that was never
// saved is empty.
func (m *Manager) LoadLayout(name string) (*Layout, error) {
	path, err := m.layoutPath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Layout{}, nil
		}
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	var layout Layout
	if err := toml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return &layout, nil
}

// SaveLayout writes layout under name.
func (m *Manager) SaveLayout(name string, layout *Layout) error {
	path, err := m.layoutPath(name)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	log.Printf("Saved layout %q to %s", name, path)
	return nil
}

// Layouts lists the names of the saved layouts.
func (m *Manager) Layouts() ([]string, error) {
	entries, err := os.ReadDir(m.layoutDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	return names, nil
}

// Widths converts the layout's column widths to a size map.
func (l *Layout) Widths() metrics.ModelSizeMap {
	widths := make(metrics.ModelSizeMap, len(l.ColumnWidths))
	for _, w := range l.ColumnWidths {
		widths[w.Column] = w.Width
	}
	return widths
}

// SetWidths stores widths in the layout, ordered by column.
func (l *Layout) SetWidths(widths metrics.ModelSizeMap) {
	l.ColumnWidths = l.ColumnWidths[:0]
	for _, column := range slices.Sorted(maps.Keys(widths)) {
		l.ColumnWidths = append(l.ColumnWidths, ColumnWidth{Column: column, Width: widths[column]})
	}
}

// Load loads history entries from a TOML file
func (m *Manager) Load(filename string) ([]string, error) {
	filePath := filepath.Join(m.historyDir, filename)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		// A corrupted history is dropped, not fatal
		log.Printf("Ignoring history %s: %v", filePath, err)
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644)
}
