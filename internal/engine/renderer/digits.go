package renderer

import (
	gomath "refsketch/pkg/math"
)

// Seven segment bits, named after the usual clockwise layout.
const (
	segA = 1 << iota // top
	segB             // top right
	segC             // bottom right
	segD             // bottom
	segE             // bottom left
	segF             // top left
	segG             // middle
)

var digitSegments = map[rune]uint8{
	'0': segA | segB | segC | segD | segE | segF,
	'1': segB | segC,
	'2': segA | segB | segG | segE | segD,
	'3': segA | segB | segG | segC | segD,
	'4': segF | segG | segB | segC,
	'5': segA | segF | segG | segC | segD,
	'6': segA | segF | segG | segE | segC | segD,
	'7': segA | segB | segC,
	'8': segA | segB | segC | segD | segE | segF | segG,
	'9': segA | segB | segC | segD | segF | segG,
	'-': segG,
}

// segmentLines maps each segment bit to its line in a unit cell of width 1
// and height 2, y growing downward.
var segmentLines = [7][4]float32{
	{0, 0, 1, 0}, // A
	{1, 0, 1, 1}, // B
	{1, 1, 1, 2}, // C
	{0, 2, 1, 2}, // D
	{0, 1, 0, 2}, // E
	{0, 0, 0, 1}, // F
	{0, 1, 1, 1}, // G
}

// Readout lays out text as seven segment style digits and returns the
// line endpoints, in pairs, ready for DrawOverlayLines. The text is
// anchored at (x, y) top left with digits of the given height. Runes
// without a segment form advance the cursor without drawing.
func Readout(text string, x, y, height float32) []gomath.Vec2 {
	cellW := height / 2
	gap := cellW * 0.4
	cursor := x

	var points []gomath.Vec2
	for _, r := range text {
		if r == '.' {
			// A short tick on the baseline.
			points = append(points,
				gomath.Vec2{X: cursor, Y: y + height},
				gomath.Vec2{X: cursor + gap/2, Y: y + height},
			)
			cursor += gap * 1.5
			continue
		}

		mask, ok := digitSegments[r]
		if ok {
			for bit, line := range segmentLines {
				if mask&(1<<bit) == 0 {
					continue
				}
				points = append(points,
					gomath.Vec2{X: cursor + line[0]*cellW, Y: y + line[1]*height/2},
					gomath.Vec2{X: cursor + line[2]*cellW, Y: y + line[3]*height/2},
				)
			}
		}
		cursor += cellW + gap
	}
	return points
}

// ReadoutWidth returns the width the text occupies when laid out by
// Readout with the given height.
func ReadoutWidth(text string, height float32) float32 {
	cellW := height / 2
	gap := cellW * 0.4

	var width float32
	for _, r := range text {
		if r == '.' {
			width += gap * 1.5
		} else {
			width += cellW + gap
		}
	}
	if width > gap {
		width -= gap
	}
	return width
}
