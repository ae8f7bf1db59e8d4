// Package vmath provides the fixed-size vector and matrix types shared by
// every other package in this module: tile geometry, collision primitives,
// the camera/frustum build and the selection raycast.
//
// It is a thin, spec-shaped wrapper over github.com/go-gl/mathgl/mgl32
// rather than a hand-rolled linear algebra library: mgl32 already supplies
// correctly-tested Vec2/Vec3/Vec4, Mat3/Mat4, quaternions, Perspective/
// Ortho/LookAt and matrix inversion, which is exactly what §2 of the
// specification asks for.
package vmath

import "github.com/go-gl/mathgl/mgl32"

// Vec2, Vec3 and Vec4 are fixed-width floating point vectors.
type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
)

// Mat3 and Mat4 are square matrices in column-major order, matching mgl32's
// (and OpenGL's) convention.
type (
	Mat3 = mgl32.Mat3
	Mat4 = mgl32.Mat4
)

// Quat is a unit quaternion used for camera/entity orientation.
type Quat = mgl32.Quat

// Epsilon32 is the smallest step representable around 1.0 in float32,
// used as the base scale for approximate-equality comparisons.
var Epsilon32 = mgl32.Epsilon

// ApproxEqual reports whether a and b are close enough to be considered
// equal, scaling the tolerance by the operands' magnitude the way
// f32math.go's Approxf32Equal in the original detour port does.
func ApproxEqual(a, b float32) bool {
	eps := Epsilon32 * 100
	d := a - b
	if d < 0 {
		d = -d
	}
	scale := float32(1.0)
	amag, bmag := a, b
	if amag < 0 {
		amag = -amag
	}
	if bmag < 0 {
		bmag = -bmag
	}
	if amag > scale {
		scale = amag
	}
	if bmag > scale {
		scale = bmag
	}
	return d < eps*scale
}

// Perspective builds a right-handed perspective projection matrix.
// fovy is in radians, matching spec.md's "default FOV π/4" convention.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(fovy, aspect, near, far)
}

// Ortho builds an orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	return mgl32.Ortho(left, right, bottom, top, near, far)
}

// LookAt builds a view matrix from an eye position, a target and an up
// vector.
func LookAt(eye, target, up Vec3) Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

// Inverse returns the inverse of m. Callers needing to unproject screen
// coordinates through view*proj use this on the combined matrix.
func Inverse(m Mat4) Mat4 {
	return m.Inv()
}

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return mgl32.Ident4()
}

// BilinearInterp interpolates the four corner values of a unit square at
// fractional coordinates (u, v) in [0, 1]. Corner ordering is
// (00, 10, 01, 11) i.e. (low,low), (high,low), (low,high), (high,high).
func BilinearInterp(v00, v10, v01, v11, u, v float32) float32 {
	top := v00 + (v10-v00)*u
	bot := v01 + (v11-v01)*u
	return top + (bot-top)*v
}

// Cross2D returns the 2D cross product (determinant) of (bx-ax, bz-az) and
// (cx-ax, cz-az), used throughout the xz-plane (ground-plane) geometry
// routines for orientation/side tests. Positive means C is to the left of
// the directed line AB.
func Cross2D(ax, az, bx, bz, cx, cz float32) float32 {
	return (bx-ax)*(cz-az) - (bz-az)*(cx-ax)
}

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
