// Package storage reads and writes outline documents shown by the outline
// grid model.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-grid/internal/model"
)

// JSONStore keeps an outline in a JSON file
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{FilePath: filePath}
}

// Load reads the outline. A file that does not exist yet is an empty
// outline.
func (s *JSONStore) Load() (*model.Outline, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewOutline(), nil
		}
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}

	var outline model.Outline
	if err := json.Unmarshal(data, &outline); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.FilePath, err)
	}
	for _, item := range outline.Items {
		linkParents(item)
	}
	return &outline, nil
}

// linkParents sets the Parent pointers, which are not stored
func linkParents(item *model.Item) {
	for _, child := range item.Children {
		child.Parent = item
		linkParents(child)
	}
}

// Save writes the outline next to the file and renames it into place, so
// a failed write keeps the old file.
func (s *JSONStore) Save(outline *model.Outline) error {
	dir := filepath.Dir(s.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(outline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode outline: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.FilePath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write outline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write outline: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.FilePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.FilePath, err)
	}
	log.Printf("Saved outline to %s", s.FilePath)
	return nil
}

// FileExists checks if the outline file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
