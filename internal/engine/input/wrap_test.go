package input

import (
	"testing"

	gomath "refsketch/pkg/math"
)

func TestWrappingCursorNoWrapInInterior(t *testing.T) {
	w := DefaultWrappingCursor()

	pos := gomath.Vec2{X: 400, Y: 300}
	next, wrapped := w.Apply(pos, 800, 600)
	if wrapped {
		t.Fatal("interior position should not wrap")
	}
	if next != pos {
		t.Errorf("position changed without wrap: %+v", next)
	}
}

func TestWrappingCursorRightEdge(t *testing.T) {
	w := DefaultWrappingCursor()

	next, wrapped := w.Apply(gomath.Vec2{X: 799.5, Y: 300}, 800, 600)
	if !wrapped {
		t.Fatal("expected wrap near right edge")
	}
	if next.X != w.Threshold+w.Padding {
		t.Errorf("expected x near left edge %v, got %v", w.Threshold+w.Padding, next.X)
	}
	if next.Y != 300 {
		t.Errorf("y should be untouched, got %v", next.Y)
	}
}

func TestWrappingCursorLeftEdge(t *testing.T) {
	w := DefaultWrappingCursor()

	next, wrapped := w.Apply(gomath.Vec2{X: 0.5, Y: 300}, 800, 600)
	if !wrapped {
		t.Fatal("expected wrap near left edge")
	}
	want := 800 - w.Threshold - w.Padding
	if next.X != want {
		t.Errorf("expected x near right edge %v, got %v", want, next.X)
	}
}

func TestWrappingCursorVertical(t *testing.T) {
	w := DefaultWrappingCursor()

	next, wrapped := w.Apply(gomath.Vec2{X: 400, Y: 0.2}, 800, 600)
	if !wrapped {
		t.Fatal("expected wrap near top edge")
	}
	want := 600 - w.Threshold - w.Padding
	if next.Y != want {
		t.Errorf("expected y near bottom edge %v, got %v", want, next.Y)
	}

	next, wrapped = w.Apply(gomath.Vec2{X: 400, Y: 599.5}, 800, 600)
	if !wrapped {
		t.Fatal("expected wrap near bottom edge")
	}
	if next.Y != w.Threshold+w.Padding {
		t.Errorf("expected y near top edge, got %v", next.Y)
	}
}

func TestWrappingCursorCorner(t *testing.T) {
	w := DefaultWrappingCursor()

	// Both axes wrap independently.
	next, wrapped := w.Apply(gomath.Vec2{X: 0.5, Y: 599.5}, 800, 600)
	if !wrapped {
		t.Fatal("expected wrap in corner")
	}
	if next.X != 800-w.Threshold-w.Padding {
		t.Errorf("unexpected x %v", next.X)
	}
	if next.Y != w.Threshold+w.Padding {
		t.Errorf("unexpected y %v", next.Y)
	}
}

func TestWrappedPositionIsStable(t *testing.T) {
	w := DefaultWrappingCursor()

	// A freshly wrapped position must not immediately wrap again.
	next, _ := w.Apply(gomath.Vec2{X: 799.5, Y: 300}, 800, 600)
	if _, again := w.Apply(next, 800, 600); again {
		t.Errorf("wrapped position %+v wrapped again", next)
	}
}
