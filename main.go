package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pstuifzand/tui-grid/internal/app"
	"github.com/pstuifzand/tui-grid/internal/config"
	"github.com/pstuifzand/tui-grid/internal/history"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/storage"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/tree"
	"github.com/pstuifzand/tui-grid/internal/ui"
)

// Size of the blocks shown when a row of the tree model is expanded
const (
	treeChildRows = 3
	treeMaxDepth  = 3
)

func main() {
	logFile, err := os.Create("tui-grid.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	themeName := flag.String("theme", "", "Theme name or file, overrides the config")
	layoutName := flag.String("layout", "", "Layout to load at start and save with :w")
	treeGrid := flag.Bool("tree", false, "Show the expandable tree grid")
	outlinePath := flag.String("outline", "", "Show and edit an outline JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *treeGrid {
		cfg.SetSession(config.KeyTree, "true")
	}

	name := cfg.Theme
	if *themeName != "" {
		name = *themeName
	}
	gridTheme := theme.LoadThemeOrDefault(name)
	log.Printf("Using theme %s", gridTheme.Name)

	opts := app.Options{
		Theme:  gridTheme,
		Layout: *layoutName,
		Debug:  *debug,
	}
	if err := setModel(&opts, cfg.Grid(), *outlinePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Layouts are optional, the grid works without them
	if layouts, err := history.NewManager(); err != nil {
		log.Printf("Layouts disabled: %v", err)
	} else {
		opts.Layouts = layouts
	}

	screen, err := ui.NewScreen(gridTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application, err := app.NewApp(screen, opts)
	if err != nil {
		screen.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// setModel picks the grid model: an outline file, the tree grid or the
// sample grid.
func setModel(opts *app.Options, grid config.GridSettings, outlinePath string) error {
	switch {
	case outlinePath != "":
		store := storage.NewJSONStore(outlinePath)
		outline, err := store.Load()
		if err != nil {
			return err
		}
		opts.Model = model.NewOutlineModel(outline, grid.DateFormat)
		opts.SaveModel = func() error { return store.Save(outline) }
	case grid.Tree:
		opts.Model = tree.New(tree.Options{
			RowCount:      grid.Rows,
			ColumnCount:   grid.Columns,
			ChildRowCount: treeChildRows,
			MaxDepth:      treeMaxDepth,
		})
	default:
		opts.Model = model.NewSample(model.SampleOptions{
			RowCount:                 grid.Rows,
			ColumnCount:              grid.Columns,
			FloatingTopRowCount:      grid.FloatingTop,
			FloatingBottomRowCount:   grid.FloatingBottom,
			FloatingLeftColumnCount:  grid.FloatingLeft,
			FloatingRightColumnCount: grid.FloatingRight,
			DateFormat:               grid.DateFormat,
		})
	}
	return nil
}
