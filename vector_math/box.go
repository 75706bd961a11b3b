package vector_math

import "math"

// Box is an axis-aligned bounding box grown one point at a time. A fresh box
// is seeded with Min=+Inf and Max=-Inf so the first Extend defines it exactly,
// whatever range the coordinates fall in.
type Box struct {
	Min Vec3
	Max Vec3
}

func NewBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows the box so that it contains p. A NaN coordinate never compares
// less or greater and leaves its axis untouched.
func (b *Box) Extend(p Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Empty reports whether no point has been added yet.
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the midpoint of the box, or the origin for an empty box.
func (b Box) Center() Vec3 {
	if b.Empty() {
		return Vec3{}
	}
	return b.Min.Mid(b.Max)
}

// Size returns the extent of the box along each axis, zero for an empty box.
func (b Box) Size() Vec3 {
	if b.Empty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, borders included.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
