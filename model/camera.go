package model

import (
	lin "github.com/xlab/linmath"
	vm "local/vector_math"
	"log"
	"math"
	"stl_viewer/config"
	"unsafe"
)

var mat4Size = unsafe.Sizeof(lin.Mat4x4{})

// Camera looks at a mesh from outside its bounding sphere. All distances are
// derived from the sphere radius so that models of any scale end up filling
// the view with the same clip plane ratio.
type Camera struct {
	Fov  float32 // vertical, in degree
	Near float32
	Far  float32

	Pos    vm.Vec3
	Target vm.Vec3
	Up     vm.Vec3
}

// NewFramingCamera positions a camera at center + f.EyeOffset*radius looking at
// center with +Z up. A zero radius (empty or single point mesh) is framed like
// a unit sphere to keep the projection well defined.
func NewFramingCamera(center vm.Vec3, radius float32, f config.Framing) *Camera {
	if radius <= 0 {
		log.Printf("Bounding radius is %f, framing a unit sphere instead.", radius)
		radius = 1
	}
	offset := f.EyeOffset.Vec3().ScalarMul(radius)
	up := vm.Vec3{Z: 1}
	if offset.Cross(up).Len() == 0 {
		up = vm.Vec3{Y: 1}
	}
	return &Camera{
		Fov:    f.Fov,
		Near:   f.NearFactor * radius,
		Far:    f.FarFactor * radius,
		Pos:    center.Add(offset),
		Target: center,
		Up:     up,
	}
}

// Distance between the eye and the looked at point.
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Pos).Len()
}

func (c *Camera) GetView() lin.Mat4x4 {
	eye := toLin(c.Pos)
	target := toLin(c.Target)
	up := toLin(c.Up)
	var m lin.Mat4x4
	m.LookAt(&eye, &target, &up)
	return m
}

// GetProjection returns a perspective projection for the given viewport aspect (width / height).
// Fov applies to the shorter side of the viewport, so portrait viewports widen the vertical angle
// instead of cropping the model. Y is flipped to match Vulkan's clip space.
func (c *Camera) GetProjection(aspect float32) lin.Mat4x4 {
	fovy := vm.ToRad(float64(c.Fov))
	if aspect < 1 {
		fovy = 2 * math.Atan(math.Tan(fovy/2)/float64(aspect))
	}
	var m lin.Mat4x4
	m.Perspective(float32(fovy), aspect, c.Near, c.Far)
	m[1][1] *= -1
	return m
}

func (c *Camera) GetMVP(aspect float32) lin.Mat4x4 {
	proj := c.GetProjection(aspect)
	view := c.GetView()
	var mvp lin.Mat4x4
	mvp.Mult(&proj, &view)
	return mvp
}

// MVPBytes returns GetMVP as raw bytes ready to be pushed as constants, see ModelPushConstantRange.
func (c *Camera) MVPBytes(aspect float32) []byte {
	return rawBytes(c.GetMVP(aspect))
}

func toLin(v vm.Vec3) lin.Vec3 {
	return lin.Vec3{v.X, v.Y, v.Z}
}
