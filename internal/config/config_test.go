package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionOverridesSettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings["rows"] = "10"

	assert.Equal(t, "10", cfg.Get("rows"))
	cfg.SetSession("rows", "20")
	assert.Equal(t, "20", cfg.Get("rows"))
	assert.Equal(t, "10", cfg.Settings["rows"])
	assert.Equal(t, "", cfg.Get("nonexistent"))
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "", cfg.Get("key"))

	cfg.SetSession("key", "value")
	assert.Equal(t, "value", cfg.Get("key"))
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings["a"] = "1"
	cfg.SetSession("a", "2")
	cfg.SetSession("b", "3")

	all := cfg.GetAll()
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, all)

	all["a"] = "modified"
	assert.Equal(t, "2", cfg.Get("a"))
}

func TestTypedGetters(t *testing.T) {
	cfg := defaultConfig()
	cfg.SetSession("n", "12")
	cfg.SetSession("bad", "twelve")
	cfg.SetSession("flag", "true")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", cfg.GetInt("n", 1), 12},
		{"unset int", cfg.GetInt("missing", 7), 7},
		{"invalid int", cfg.GetInt("bad", 3), 3},
		{"bool", cfg.GetBool("flag", false), true},
		{"invalid bool", cfg.GetBool("bad", true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestGridSettings(t *testing.T) {
	cfg := defaultConfig()
	g := cfg.Grid()
	assert.Equal(t, DefaultRows, g.Rows)
	assert.Equal(t, DefaultColumns, g.Columns)
	assert.Zero(t, g.FloatingTop)
	assert.Empty(t, g.DateFormat)
	assert.False(t, g.Tree)

	cfg.Settings[KeyFloatingTop] = "2"
	cfg.Settings[KeyFloatingRight] = "-3"
	cfg.Settings[KeyDateFormat] = "%d/%m"
	cfg.SetSession(KeyTree, "true")
	g = cfg.Grid()
	assert.Equal(t, 2, g.FloatingTop)
	assert.Zero(t, g.FloatingRight)
	assert.Equal(t, "%d/%m", g.DateFormat)
	assert.True(t, g.Tree)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"tokyo-night\"\n\n[settings]\nrows = \"500\"\n"), 0644))
	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 500, cfg.Grid().Rows)

	require.NoError(t, os.WriteFile(path, []byte("theme = "), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveToFileSkipsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := defaultConfig()
	cfg.Settings["rows"] = "5"
	cfg.SetSession("columns", "9")

	require.NoError(t, cfg.SaveToFile(path))
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5", loaded.Get("rows"))
	assert.Equal(t, "", loaded.Get("columns"))
}
