package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withPlatform(t *testing.T, mac bool) {
	t.Helper()
	previous := isMacPlatform
	isMacPlatform = mac
	t.Cleanup(func() { isMacPlatform = previous })
}

func TestGetScrollDelta(t *testing.T) {
	tests := []struct {
		name       string
		mac        bool
		event      WheelEvent
		expectedDX float64
		expectedDY float64
	}{
		{"pixels", false, WheelEvent{DeltaX: 3, DeltaY: 4}, 3, 4},
		{"shift swaps axes", false, WheelEvent{DeltaY: 5, Shift: true}, 5, 0},
		{"shift ignored for diagonal", false, WheelEvent{DeltaX: 1, DeltaY: 5, Shift: true}, 1, 5},
		{"shift already swapped on mac", true, WheelEvent{DeltaY: 5, Shift: true}, 0, 5},
		{"pages", false, WheelEvent{DeltaX: 1, DeltaY: 2, DeltaMode: DeltaPage}, 1024, 1536},
		{"lines", false, WheelEvent{DeltaY: 3, DeltaMode: DeltaLine}, 0, 100},
		{"single line", false, WheelEvent{DeltaY: -1, DeltaMode: DeltaLine}, 0, -33},
		{"lines on mac", true, WheelEvent{DeltaX: 2, DeltaY: 3, DeltaMode: DeltaLine}, 40, 60},
		{"shifted lines", false, WheelEvent{DeltaY: 3, DeltaMode: DeltaLine, Shift: true}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withPlatform(t, tt.mac)

			dx, dy := GetScrollDelta(tt.event, DefaultPageWidth, DefaultPageHeight, DefaultLineWidth, DefaultLineHeight)
			assert.Equal(t, tt.expectedDX, dx)
			assert.Equal(t, tt.expectedDY, dy)
		})
	}
}
