package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-grid", "themes"),
			filepath.Join(home, ".local", "share", "tui-grid", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// builtin returns a built-in theme by name.
func builtin(name string) (*GridTheme, bool) {
	switch name {
	case "default":
		return Default(), true
	case "tokyo-night", "tokyonight":
		return TokyoNight(), true
	}
	return nil, false
}

// ParseTheme overlays the options present in data onto base. Options missing
// from data keep the base value. A color that does not parse is an error.
func ParseTheme(data []byte, base *GridTheme) (*GridTheme, error) {
	theme := base.Clone()

	var header struct {
		Base string `toml:"base"`
	}
	if err := toml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if header.Base != "" {
		b, ok := builtin(header.Base)
		if !ok {
			return nil, fmt.Errorf("unknown base theme: %s", header.Base)
		}
		theme = b
	}

	if err := toml.Unmarshal(data, theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	for _, field := range theme.colorFields() {
		if !field.IsSet() {
			continue
		}
		parsed := ParseColorString(string(*field))
		if !parsed.IsSet() {
			return nil, fmt.Errorf("invalid color %q", string(*field))
		}
		*field = parsed
	}

	for _, list := range []*string{&theme.RowBackgroundColors, &theme.FloatingRowBackgroundColors} {
		colors := ParseColorList(*list)
		parts := make([]string, len(colors))
		for i, c := range colors {
			parts[i] = string(c)
		}
		*list = strings.Join(parts, " ")
	}

	return theme, nil
}

// LoadThemeFromFile loads a theme from a TOML file on top of Tokyo Night
func LoadThemeFromFile(filePath string) (*GridTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	theme, err := ParseTheme(data, TokyoNight())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if theme.Name == TokyoNight().Name {
		theme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	return theme, nil
}

// LoadTheme loads a theme by name. Built-in names are resolved first, then
// the standard theme directories are searched.
func LoadTheme(themeName string) (*GridTheme, error) {
	if theme, ok := builtin(themeName); ok {
		return theme, nil
	}

	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *GridTheme {
	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}
	return theme
}
