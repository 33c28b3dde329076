package mesh

import "math"

// PositionKey identifies a vertex position by the exact bit patterns of its
// three float32 components. Two positions map to the same key iff they are
// bit-for-bit equal; near-duplicate (epsilon-different) positions are never
// merged. This is a deliberate scope limitation of the vertex-sharing model:
// seams only fuse where exporters emit identical coordinates.
type PositionKey [3]uint32

// MakePositionKey builds the key for a position.
func MakePositionKey(p [3]float32) PositionKey {
	return PositionKey{
		math.Float32bits(p[0]),
		math.Float32bits(p[1]),
		math.Float32bits(p[2]),
	}
}

// Position returns the coordinates the key was built from.
func (k PositionKey) Position() [3]float32 {
	return [3]float32{
		math.Float32frombits(k[0]),
		math.Float32frombits(k[1]),
		math.Float32frombits(k[2]),
	}
}

// Less imposes a total order over keys (lexicographic over component bit
// patterns). The order carries no geometric meaning; it only canonicalizes
// unordered vertex pairs so an edge hashes identically from both directions.
func (k PositionKey) Less(other PositionKey) bool {
	for i := 0; i < 3; i++ {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}
