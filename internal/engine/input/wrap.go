package input

import (
	gomath "refsketch/pkg/math"
)

// WrappingCursor teleports the cursor to the opposite window edge when it
// gets close to one, so long drags never run out of screen. Only whole
// window wrapping is supported.
type WrappingCursor struct {
	// Threshold is the distance to an edge at which the cursor wraps.
	// Must be greater than zero.
	Threshold float32
	// Padding is added to Threshold for the distance the new position
	// keeps from the opposite edge.
	Padding float32
}

// DefaultWrappingCursor returns the standard wrap distances.
func DefaultWrappingCursor() WrappingCursor {
	return WrappingCursor{Threshold: 1, Padding: 1}
}

// Apply computes the wrapped cursor position for a window of the given
// size. It reports whether the position changed; the caller is expected
// to warp the cursor and suppress the resulting motion delta.
func (w WrappingCursor) Apply(pos gomath.Vec2, width, height float32) (gomath.Vec2, bool) {
	next := pos

	switch {
	case width-pos.X < w.Threshold:
		next.X = w.Threshold + w.Padding
	case pos.X < w.Threshold:
		next.X = width - w.Threshold - w.Padding
	}

	switch {
	case height-pos.Y < w.Threshold:
		next.Y = w.Threshold + w.Padding
	case pos.Y < w.Threshold:
		next.Y = height - w.Threshold - w.Padding
	}

	return next, next != pos
}
