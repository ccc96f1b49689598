package math3d

import "math"

// Angles holds the three rotation angles of the cube in radians.
// Values are never wrapped; they are only consumed through sin and cos.
type Angles struct {
	Pitch float64 `json:"pitch"` // rotation about X
	Yaw   float64 `json:"yaw"`   // rotation about Y
	Roll  float64 `json:"roll"`  // rotation about Z
}

// Add returns the component-wise sum a + b.
func (a Angles) Add(b Angles) Angles {
	return Angles{a.Pitch + b.Pitch, a.Yaw + b.Yaw, a.Roll + b.Roll}
}

// IsFinite reports whether all three angles are finite numbers.
func (a Angles) IsFinite() bool {
	return isFinite(a.Pitch) && isFinite(a.Yaw) && isFinite(a.Roll)
}

// Matrix returns the rotation that applies roll first, then pitch, then yaw.
// The order is fixed: changing it changes how the cube tumbles.
func (a Angles) Matrix() Mat4 {
	return RotateY(a.Yaw).Mul(RotateX(a.Pitch)).Mul(RotateZ(a.Roll))
}

// FacingMatrix returns the rotation used to decide which sides face the
// camera. Roll is left out on purpose; culling only follows pitch and yaw.
func (a Angles) FacingMatrix() Mat4 {
	return RotateY(a.Yaw).Mul(RotateX(a.Pitch))
}

// Rotate applies the three rotations to v one after another.
// It matches Matrix().MulVec3Dir(v) up to rounding.
func (a Angles) Rotate(v Vec3) Vec3 {
	sr, cr := math.Sincos(a.Roll)
	sp, cp := math.Sincos(a.Pitch)
	sy, cy := math.Sincos(a.Yaw)

	// roll, about Z
	x1 := v.X*cr - v.Y*sr
	y1 := v.X*sr + v.Y*cr
	z1 := v.Z

	// pitch, about X
	y2 := y1*cp - z1*sp
	z2 := y1*sp + z1*cp

	// yaw, about Y
	z3 := z2*cy - x1*sy
	x3 := z2*sy + x1*cy

	return Vec3{x3, y2, z3}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
