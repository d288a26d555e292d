package transform

import (
	"math"
	"runtime"
)

// PixelsPerLine converts line mode wheel deltas on non-Mac platforms. It
// matches the 100 units per 3 lines most platforms scroll by.
const PixelsPerLine = 100.0 / 3.0

// Default page and line sizes for GetScrollDelta.
const (
	DefaultPageWidth  = 1024
	DefaultPageHeight = 768
	DefaultLineWidth  = 20
	DefaultLineHeight = 20
)

// DeltaMode is the unit a wheel delta is reported in.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// WheelEvent is a scroll wheel event as delivered by the host.
type WheelEvent struct {
	DeltaX, DeltaY float64
	DeltaMode      DeltaMode
	Shift          bool
}

// isMacPlatform is a variable so tests can exercise both conventions.
var isMacPlatform = runtime.GOOS == "darwin"

// GetScrollDelta normalizes a wheel event to surface units. Holding shift
// scrolls horizontally on platforms where the event does not already swap
// the axes. Only a purely vertical delta is swapped, so diagonal trackpad
// motion is left alone.
func GetScrollDelta(event WheelEvent, pageWidth, pageHeight, lineWidth, lineHeight float64) (deltaX, deltaY float64) {
	deltaX, deltaY = event.DeltaX, event.DeltaY

	if !isMacPlatform && event.Shift && event.DeltaX == 0 && event.DeltaY != 0 {
		deltaX, deltaY = event.DeltaY, event.DeltaX
	}

	switch event.DeltaMode {
	case DeltaPage:
		deltaX *= pageWidth
		deltaY *= pageHeight
	case DeltaLine:
		if isMacPlatform {
			deltaX = math.Round(deltaX * lineWidth)
			deltaY = math.Round(deltaY * lineHeight)
		} else {
			deltaX = math.Round(deltaX * PixelsPerLine)
			deltaY = math.Round(deltaY * PixelsPerLine)
		}
	}

	return deltaX, deltaY
}
