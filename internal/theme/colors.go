package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a theme color in #RRGGBB or #RRGGBBAA form. The empty Color is
// unset: a drawing pass given an unset color is skipped.
type Color string

// IsSet reports whether the color has a value.
func (c Color) IsSet() bool {
	return c != ""
}

// RGBA returns the color and its alpha in [0, 1]. ok is false for an unset
// or malformed color.
func (c Color) RGBA() (colorful.Color, float64, bool) {
	hex := strings.TrimPrefix(string(c), "#")
	alpha := 1.0

	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return colorful.Color{}, 0, false
	}

	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, 0, false
	}
	return rgb, alpha, true
}

// Alpha returns the opacity of the color, 0 for unset colors.
func (c Color) Alpha() float64 {
	_, alpha, ok := c.RGBA()
	if !ok {
		return 0
	}
	return alpha
}

// Tcell converts the color to a terminal color, ignoring alpha.
func (c Color) Tcell() tcell.Color {
	rgb, _, ok := c.RGBA()
	if !ok {
		return tcell.ColorDefault
	}
	r, g, b := rgb.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// FromColorful builds a Color from an RGB color and an alpha in [0, 1]. An
// opaque color is written without the alpha byte.
func FromColorful(rgb colorful.Color, alpha float64) Color {
	hex := rgb.Clamped().Hex()
	if alpha >= 1 {
		return Color(hex)
	}
	a := int(max(0, alpha)*255 + 0.5)
	return Color(fmt.Sprintf("%s%02x", hex, a))
}

// HexToColor converts #RGB, #RRGGBB or #RRGGBBAA to a Color. Anything else
// gives an unset color.
func HexToColor(hexColor string) Color {
	hexColor = strings.ToLower(strings.TrimPrefix(hexColor, "#"))

	if len(hexColor) == 3 {
		hexColor = string(hexColor[0]) + string(hexColor[0]) +
			string(hexColor[1]) + string(hexColor[1]) +
			string(hexColor[2]) + string(hexColor[2])
	}

	c := Color("#" + hexColor)
	if _, _, ok := c.RGBA(); !ok {
		return ""
	}
	return c
}

// RGBToColor converts RGB values to a Color.
func RGBToColor(r, g, b int) Color {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return ""
	}
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// ParseColorString handles #RRGGBB, #RGB, #RRGGBBAA, rgb(r,g,b),
// rgba(r,g,b,a) and terminal color names such as "red" or "darkslategray".
func ParseColorString(colorStr string) Color {
	colorStr = strings.TrimSpace(colorStr)

	if strings.HasPrefix(colorStr, "#") {
		return HexToColor(colorStr)
	}

	if inner, ok := strings.CutPrefix(colorStr, "rgba("); ok && strings.HasSuffix(inner, ")") {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 4 {
			return ""
		}
		c := parseRGB(parts[:3])
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if c == "" || err != nil {
			return ""
		}
		return WithAlpha(c, alpha)
	}

	if inner, ok := strings.CutPrefix(colorStr, "rgb("); ok && strings.HasSuffix(inner, ")") {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 3 {
			return ""
		}
		return parseRGB(parts)
	}

	if named := tcell.GetColor(strings.ToLower(colorStr)); named != tcell.ColorDefault && named.Valid() {
		r, g, b := named.RGB()
		if r >= 0 {
			return RGBToColor(int(r), int(g), int(b))
		}
	}

	return ""
}

func parseRGB(parts []string) Color {
	r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return RGBToColor(r, g, b)
}

// ParseColorList splits a space separated list such as the row background
// colors. Entries that do not parse are dropped.
func ParseColorList(list string) []Color {
	var colors []Color
	for _, field := range strings.Fields(list) {
		if c := ParseColorString(field); c.IsSet() {
			colors = append(colors, c)
		}
	}
	return colors
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c Color, alpha float64) Color {
	rgb, _, ok := c.RGBA()
	if !ok {
		return ""
	}
	return FromColorful(rgb, alpha)
}

// Darken reduces the lightness of c by the given fraction, keeping alpha.
func Darken(c Color, fraction float64) Color {
	rgb, alpha, ok := c.RGBA()
	if !ok {
		return ""
	}
	h, s, l := rgb.Hsl()
	return FromColorful(colorful.Hsl(h, s, l*(1-fraction)), alpha)
}

// DarkenForDepth darkens a row background for a row nested depth levels
// deep, reaching its darkest at maxDepth.
func DarkenForDepth(c Color, depth, maxDepth int) Color {
	if depth <= 0 || maxDepth <= 0 {
		return c
	}
	return Darken(c, float64(min(depth, maxDepth))/float64(maxDepth)*DepthDarkenFactor)
}

// DepthDarkenFactor is the fraction of lightness removed at the deepest
// level.
const DepthDarkenFactor = 0.5

// IsDark reports whether c is dark enough that light text reads better on
// it. Unset colors count as dark since terminals default to dark
// backgrounds.
func IsDark(c Color) bool {
	rgb, _, ok := c.RGBA()
	if !ok {
		return true
	}
	r, g, b := rgb.RGB255()
	return (int(r)*299+int(g)*587+int(b)*114)/1000 < 128
}

// Blend paints fg over bg and returns the opaque result. An unset bg is
// treated as black.
func Blend(bg, fg Color) Color {
	front, alpha, ok := fg.RGBA()
	if !ok {
		return bg
	}
	back, _, ok := bg.RGBA()
	if !ok {
		back = colorful.Color{}
	}
	return FromColorful(back.BlendRgb(front, alpha), 1)
}

// ColorToStyle creates a style with a specific foreground color.
func ColorToStyle(fg Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg.Tcell())
}

// ColorPairToStyle creates a style with foreground and background colors.
// Unset colors keep the terminal default.
func ColorPairToStyle(fg, bg Color) tcell.Style {
	style := tcell.StyleDefault
	if fg.IsSet() {
		style = style.Foreground(fg.Tcell())
	}
	if bg.IsSet() {
		style = style.Background(bg.Tcell())
	}
	return style
}
