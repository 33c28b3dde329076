// Package refs manages the rotation of reference models shown during
// a sketching session.
package refs

import (
	"math"
	"math/rand"

	"refsketch/pkg/lineart"
	gomath "refsketch/pkg/math"
	"refsketch/pkg/mesh"
)

// Reference is a single loaded model together with its derived geometry.
type Reference struct {
	Name     string
	Mesh     *mesh.Mesh
	Outline  *mesh.Mesh
	Edges    []lineart.Segment
	Rotation gomath.Quat
}

// Set holds the loaded references and tracks which one is on screen.
type Set struct {
	references []*Reference
	current    int // -1 when nothing is shown yet
	disabled   map[int]bool
}

// NewSet creates an empty reference set.
func NewSet() *Set {
	return &Set{
		current:  -1,
		disabled: make(map[int]bool),
	}
}

// Add appends a reference and returns its index.
func (s *Set) Add(ref *Reference) int {
	s.references = append(s.references, ref)
	return len(s.references) - 1
}

// Len returns the number of references.
func (s *Set) Len() int {
	return len(s.references)
}

// At returns the reference at index i.
func (s *Set) At(i int) *Reference {
	return s.references[i]
}

// Current returns the reference currently on screen, or nil.
func (s *Set) Current() *Reference {
	if s.current < 0 {
		return nil
	}
	return s.references[s.current]
}

// CurrentIndex returns the index of the current reference, or -1.
func (s *Set) CurrentIndex() int {
	return s.current
}

// Next returns the index of the next enabled reference after the current
// one, wrapping around. It reports false when every reference is disabled
// or the set is empty.
func (s *Set) Next() (int, bool) {
	n := len(s.references)
	if n == 0 || len(s.disabled) == n {
		return -1, false
	}

	start := 0
	if s.current >= 0 {
		start = s.current + 1
	}

	for off := 0; off < n; off++ {
		i := (start + off) % n
		if !s.disabled[i] {
			return i, true
		}
	}
	return -1, false
}

// SetCurrent marks the reference at index as the one on screen.
func (s *Set) SetCurrent(index int) {
	s.current = index
}

// SetActive enables or disables a reference for cycling.
func (s *Set) SetActive(index int, active bool) {
	if active {
		delete(s.disabled, index)
	} else {
		s.disabled[index] = true
	}
}

// Active reports whether the reference at index is enabled.
func (s *Set) Active(index int) bool {
	return !s.disabled[index]
}

// RandomRotation returns a uniform-per-axis Euler XYZ rotation, used to
// present each reference from an unfamiliar viewpoint.
func RandomRotation(rng *rand.Rand) gomath.Quat {
	return gomath.QuatFromEuler(
		rng.Float32()*2*math.Pi,
		rng.Float32()*2*math.Pi,
		rng.Float32()*2*math.Pi,
	)
}
