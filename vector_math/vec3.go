package vector_math

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: (v.Y * w.Z) - (v.Z * w.Y),
		Y: (v.Z * w.X) - (v.X * w.Z),
		Z: (v.X * w.Y) - (v.Y * w.X),
	}
}

func (v Vec3) Dot(w Vec3) float32 {
	return (v.X * w.X) + (v.Y * w.Y) + (v.Z * w.Z)
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{
		X: v.X - w.X,
		Y: v.Y - w.Y,
		Z: v.Z - w.Z,
	}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{
		X: v.X + w.X,
		Y: v.Y + w.Y,
		Z: v.Z + w.Z,
	}
}

func (v Vec3) ScalarMul(factor float32) Vec3 {
	return Vec3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Mul multiplies elementwise, mostly used to scale an offset per axis.
func (v Vec3) Mul(w Vec3) Vec3 {
	return Vec3{
		X: v.X * w.X,
		Y: v.Y * w.Y,
		Z: v.Z * w.Z,
	}
}

// Min returns the elementwise minimum of v and w, NaN if either component is NaN.
func (v Vec3) Min(w Vec3) Vec3 {
	return Vec3{
		X: min(v.X, w.X),
		Y: min(v.Y, w.Y),
		Z: min(v.Z, w.Z),
	}
}

// Max returns the elementwise maximum of v and w, NaN if either component is NaN.
func (v Vec3) Max(w Vec3) Vec3 {
	return Vec3{
		X: max(v.X, w.X),
		Y: max(v.Y, w.Y),
		Z: max(v.Z, w.Z),
	}
}

// Mid returns the point halfway between v and w on every axis. It is computed as
// v + (w-v)/2 so that large coordinates of equal sign do not overflow float32.
func (v Vec3) Mid(w Vec3) Vec3 {
	return Vec3{
		X: v.X + (w.X-v.X)/2,
		Y: v.Y + (w.Y-v.Y)/2,
		Z: v.Z + (w.Z-v.Z)/2,
	}
}

// SqDist returns the squared euclidean distance between v and w. The sum is
// accumulated in float64 to keep the precision needed for radius comparisons.
func (v Vec3) SqDist(w Vec3) float64 {
	dx := float64(w.X) - float64(v.X)
	dy := float64(w.Y) - float64(v.Y)
	dz := float64(w.Z) - float64(v.Z)
	return dx*dx + dy*dy + dz*dz
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))))
}

func (v Vec3) Norm() Vec3 {
	l := v.Len()
	return Vec3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}
}
