package math

import (
	gomath "math"
	"testing"
)

func TestIdentityTransform(t *testing.T) {
	p := [3]float32{1, 2, 3}
	got := Identity().TransformPoint(p)
	if got != p {
		t.Errorf("Identity().TransformPoint(%v) = %v", p, got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint([3]float32{1, 2, 3})
	want := [3]float32{11, 22, 33}
	if got != want {
		t.Errorf("Translate().TransformPoint() = %v, want %v", got, want)
	}
}

func TestMulOrder(t *testing.T) {
	// Scale then translate: point (1,1,1) scaled by 2 then moved by (5,0,0).
	m := Translate(5, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint([3]float32{1, 1, 1})
	want := [3]float32{7, 2, 2}
	if got != want {
		t.Errorf("Mul order wrong: got %v, want %v", got, want)
	}
}

func TestLookAtOrigin(t *testing.T) {
	// Camera at +Z looking at origin maps the origin in front of the camera.
	view := LookAt(Vec3{0, 0, 8}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformPoint([3]float32{0, 0, 0})
	want := [3]float32{0, 0, -8}
	for i := range got {
		if gomath.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Fatalf("LookAt view transform = %v, want %v", got, want)
		}
	}
}
