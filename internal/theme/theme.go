package theme

// GridTheme holds every option the grid renderer reads. Sizes are in surface
// units; for the terminal surface that is one cell.
type GridTheme struct {
	Name string `toml:"name"`

	AllowColumnResize bool `toml:"allow_column_resize"`
	AllowRowResize    bool `toml:"allow_row_resize"`
	// Select the full row or column when a cell is selected
	AutoSelectRow    bool `toml:"auto_select_row"`
	AutoSelectColumn bool `toml:"auto_select_column"`
	AutoSizeColumns  bool `toml:"auto_size_columns"`
	AutoSizeRows     bool `toml:"auto_size_rows"`

	BackgroundColor Color `toml:"background_color"`
	TextColor       Color `toml:"text_color"`
	Black           Color `toml:"black"`
	White           Color `toml:"white"`

	CellHorizontalPadding   int    `toml:"cell_horizontal_padding"`
	HeaderHorizontalPadding int    `toml:"header_horizontal_padding"`
	Font                    string `toml:"font"`

	GridColumnColor Color `toml:"grid_column_color"`
	GridRowColor    Color `toml:"grid_row_color"`

	HeaderBackgroundColor           Color  `toml:"header_background_color"`
	HeaderSeparatorColor            Color  `toml:"header_separator_color"`
	HeaderSeparatorHoverColor       Color  `toml:"header_separator_hover_color"`
	HeaderSeparatorHandleSize       int    `toml:"header_separator_handle_size"`
	HeaderHiddenSeparatorSize       int    `toml:"header_hidden_separator_size"`
	HeaderHiddenSeparatorHoverColor Color  `toml:"header_hidden_separator_hover_color"`
	HeaderColor                     Color  `toml:"header_color"`
	HeaderFont                      string `toml:"header_font"`

	ColumnHoverBackgroundColor         Color `toml:"column_hover_background_color"`
	SelectedColumnHoverBackgroundColor Color `toml:"selected_column_hover_background_color"`
	RowHoverBackgroundColor            Color `toml:"row_hover_background_color"`
	SelectedRowHoverBackgroundColor    Color `toml:"selected_row_hover_background_color"`

	// Space separated list, alternating per row
	RowBackgroundColors string `toml:"row_background_colors"`

	MinScrollHandleSize           int   `toml:"min_scroll_handle_size"`
	ScrollBarBackgroundColor      Color `toml:"scroll_bar_background_color"`
	ScrollBarHoverBackgroundColor Color `toml:"scroll_bar_hover_background_color"`
	ScrollBarCasingColor          Color `toml:"scroll_bar_casing_color"`
	ScrollBarCornerColor          Color `toml:"scroll_bar_corner_color"`
	ScrollBarColor                Color `toml:"scroll_bar_color"`
	ScrollBarHoverColor           Color `toml:"scroll_bar_hover_color"`
	ScrollBarActiveColor          Color `toml:"scroll_bar_active_color"`
	ScrollBarSize                 int   `toml:"scroll_bar_size"`
	ScrollBarHoverSize            int   `toml:"scroll_bar_hover_size"`
	ScrollBarCasingWidth          int   `toml:"scroll_bar_casing_width"`
	ScrollSnapToColumn            bool  `toml:"scroll_snap_to_column"`
	ScrollSnapToRow               bool  `toml:"scroll_snap_to_row"`

	ScrollBarSelectionTick            bool  `toml:"scroll_bar_selection_tick"`
	ScrollBarSelectionTickColor       Color `toml:"scroll_bar_selection_tick_color"`
	ScrollBarActiveSelectionTickColor Color `toml:"scroll_bar_active_selection_tick_color"`

	SelectionColor        Color `toml:"selection_color"`
	SelectionOutlineColor Color `toml:"selection_outline_color"`

	ShadowBlur  int   `toml:"shadow_blur"`
	ShadowColor Color `toml:"shadow_color"`

	// Number of darkened row background shades for nested rows
	MaxDepth              int   `toml:"max_depth"`
	TreeDepthIndent       int   `toml:"tree_depth_indent"`
	TreeHorizontalPadding int   `toml:"tree_horizontal_padding"`
	TreeLineColor         Color `toml:"tree_line_color"`
	TreeMarkerColor       Color `toml:"tree_marker_color"`
	TreeMarkerHoverColor  Color `toml:"tree_marker_hover_color"`

	RowHeight          int `toml:"row_height"`
	ColumnWidth        int `toml:"column_width"`
	MinRowHeight       int `toml:"min_row_height"`
	MinColumnWidth     int `toml:"min_column_width"`
	ColumnHeaderHeight int `toml:"column_header_height"`
	RowHeaderWidth     int `toml:"row_header_width"`
	RowFooterWidth     int `toml:"row_footer_width"`

	// Resizing snaps to the content width within this many units
	HeaderResizeSnapThreshold       int `toml:"header_resize_snap_threshold"`
	HeaderResizeHiddenSnapThreshold int `toml:"header_resize_hidden_snap_threshold"`

	AllowColumnReorder bool `toml:"allow_column_reorder"`
	AllowRowReorder    bool `toml:"allow_row_reorder"`
	ReorderOffset      int  `toml:"reorder_offset"`

	FloatingGridColumnColor     Color  `toml:"floating_grid_column_color"`
	FloatingGridRowColor        Color  `toml:"floating_grid_row_color"`
	FloatingRowBackgroundColors string `toml:"floating_row_background_colors"`
	FloatingDividerOuterColor   Color  `toml:"floating_divider_outer_color"`
	FloatingDividerInnerColor   Color  `toml:"floating_divider_inner_color"`
}

// Default returns the default dark grid theme sized for a terminal.
func Default() *GridTheme {
	return &GridTheme{
		Name: "default",

		AllowColumnResize: true,
		AllowRowResize:    false,
		AutoSizeColumns:   true,

		BackgroundColor: "#000000",
		TextColor:       "#ffffff",
		Black:           "#000000",
		White:           "#ffffff",

		CellHorizontalPadding:   1,
		HeaderHorizontalPadding: 1,
		HeaderFont:              "bold",

		GridColumnColor: "#8f8f8f66",
		GridRowColor:    "",

		HeaderBackgroundColor:           "#222222",
		HeaderSeparatorColor:            "#000000",
		HeaderSeparatorHoverColor:       "#888888",
		HeaderSeparatorHandleSize:       2,
		HeaderHiddenSeparatorSize:       1,
		HeaderHiddenSeparatorHoverColor: "#8888ff",
		HeaderColor:                     "#d5d5d5",

		ColumnHoverBackgroundColor:         "#444444",
		SelectedColumnHoverBackgroundColor: "#494949",
		RowHoverBackgroundColor:            "#444444",
		SelectedRowHoverBackgroundColor:    "#494949",

		RowBackgroundColors: "#333333 #222222",

		MinScrollHandleSize:           2,
		ScrollBarBackgroundColor:      "#111111",
		ScrollBarHoverBackgroundColor: "#333333",
		ScrollBarCasingColor:          "#000000",
		ScrollBarCornerColor:          "#000000",
		ScrollBarColor:                "#555555",
		ScrollBarHoverColor:           "#888888",
		ScrollBarActiveColor:          "#aaaaaa",
		ScrollBarSize:                 1,
		ScrollBarHoverSize:            1,

		ScrollBarSelectionTick:            true,
		ScrollBarSelectionTickColor:       "#4286f433",
		ScrollBarActiveSelectionTickColor: "#4286f480",

		SelectionColor:        "#4286f433",
		SelectionOutlineColor: "#4286f4",

		ShadowBlur:  1,
		ShadowColor: "#000000",

		MaxDepth:              6,
		TreeDepthIndent:       2,
		TreeHorizontalPadding: 1,
		TreeLineColor:         "#888888",
		TreeMarkerColor:       "#cccccc",
		TreeMarkerHoverColor:  "#ffffff",

		RowHeight:          1,
		ColumnWidth:        14,
		MinRowHeight:       1,
		MinColumnWidth:     4,
		ColumnHeaderHeight: 1,
		RowHeaderWidth:     7,
		RowFooterWidth:     0,

		HeaderResizeSnapThreshold:       2,
		HeaderResizeHiddenSnapThreshold: 1,

		AllowColumnReorder: true,
		AllowRowReorder:    true,
		ReorderOffset:      1,

		FloatingGridColumnColor:     "#8f8f8f66",
		FloatingGridRowColor:        "",
		FloatingRowBackgroundColors: "#393939 #292929",
		FloatingDividerOuterColor:   "#000000",
		FloatingDividerInnerColor:   "#cccccc",
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *GridTheme {
	t := Default()
	t.Name = "tokyo-night"

	// Tokyo Night palette
	t.BackgroundColor = "#1a1b26"
	t.TextColor = "#c0caf5"
	t.Black = "#15161e"
	t.White = "#c0caf5"
	t.GridColumnColor = "#3b4261"
	t.FloatingGridColumnColor = "#3b4261"

	t.HeaderBackgroundColor = "#16161e"
	t.HeaderSeparatorColor = "#15161e"
	t.HeaderSeparatorHoverColor = "#7dcfff"
	t.HeaderHiddenSeparatorHoverColor = "#bb9af7"
	t.HeaderColor = "#bb9af7"

	t.ColumnHoverBackgroundColor = "#292e42"
	t.SelectedColumnHoverBackgroundColor = "#2f3549"
	t.RowHoverBackgroundColor = "#292e42"
	t.SelectedRowHoverBackgroundColor = "#2f3549"
	t.RowBackgroundColors = "#1f2335 #1a1b26"
	t.FloatingRowBackgroundColors = "#24283b #1f2335"

	t.ScrollBarBackgroundColor = "#16161e"
	t.ScrollBarHoverBackgroundColor = "#1f2335"
	t.ScrollBarCasingColor = "#15161e"
	t.ScrollBarCornerColor = "#15161e"
	t.ScrollBarColor = "#414868"
	t.ScrollBarHoverColor = "#565f89"
	t.ScrollBarActiveColor = "#7aa2f7"
	t.ScrollBarSelectionTickColor = "#7aa2f755"
	t.ScrollBarActiveSelectionTickColor = "#7aa2f7aa"

	t.SelectionColor = "#7aa2f733"
	t.SelectionOutlineColor = "#7aa2f7"
	t.ShadowColor = "#15161e"

	t.TreeLineColor = "#565f89"
	t.TreeMarkerColor = "#7dcfff"
	t.TreeMarkerHoverColor = "#c0caf5"

	t.FloatingDividerOuterColor = "#15161e"
	t.FloatingDividerInnerColor = "#7dcfff"

	return t
}

// colorFields lists every single-color option so they can be normalized
// after loading.
func (t *GridTheme) colorFields() []*Color {
	return []*Color{
		&t.BackgroundColor, &t.TextColor, &t.Black, &t.White,
		&t.GridColumnColor, &t.GridRowColor,
		&t.HeaderBackgroundColor, &t.HeaderSeparatorColor, &t.HeaderSeparatorHoverColor,
		&t.HeaderHiddenSeparatorHoverColor, &t.HeaderColor,
		&t.ColumnHoverBackgroundColor, &t.SelectedColumnHoverBackgroundColor,
		&t.RowHoverBackgroundColor, &t.SelectedRowHoverBackgroundColor,
		&t.ScrollBarBackgroundColor, &t.ScrollBarHoverBackgroundColor, &t.ScrollBarCasingColor,
		&t.ScrollBarCornerColor, &t.ScrollBarColor, &t.ScrollBarHoverColor, &t.ScrollBarActiveColor,
		&t.ScrollBarSelectionTickColor, &t.ScrollBarActiveSelectionTickColor,
		&t.SelectionColor, &t.SelectionOutlineColor,
		&t.ShadowColor,
		&t.TreeLineColor, &t.TreeMarkerColor, &t.TreeMarkerHoverColor,
		&t.FloatingGridColumnColor, &t.FloatingGridRowColor,
		&t.FloatingDividerOuterColor, &t.FloatingDividerInnerColor,
	}
}

// Clone returns a copy that can be changed without affecting t.
func (t *GridTheme) Clone() *GridTheme {
	c := *t
	return &c
}
