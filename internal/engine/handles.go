package engine

import "math"

// Handles are opaque 64-bit identifiers packing a slot index and a
// generation counter. Destroying an object bumps its slot's generation,
// so a handle held across a destruction fails validity checks instead of
// resolving to a recycled object.

// BodyID identifies a rigid body. The zero value is never valid.
type BodyID uint64

// ShapeID identifies a fixture attached to a body. The zero value is never valid.
type ShapeID uint64

// JointID identifies a joint. The zero value is never valid.
type JointID uint64

// packHandle combines a slot index and generation into one handle value.
// Generation starts at 1 so that the zero handle is always invalid.
func packHandle(slot uint32, gen uint32) uint64 {
	return uint64(gen)<<32 | uint64(slot)
}

func handleSlot(h uint64) uint32 {
	return uint32(h)
}

func handleGen(h uint64) uint32 {
	return uint32(h >> 32)
}

// Vec2 is a 2D vector in world units (meters).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
