package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// quarterTurn is the magnitude of a full-deflection control axis (pi/4).
const quarterTurn = math.Pi / 4

// lerp interpolates from a to b. t is not clamped, so t > 1 overshoots.
func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// isZero reports whether every component of v is exactly zero.
func isZero(v mgl32.Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// normalizeOrZero returns v scaled to unit length, or the zero vector when v
// has no length. mgl32's Normalize divides by zero and yields NaN.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// clampLength scales v down so its magnitude does not exceed max.
func clampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	l := v.Len()
	if l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// steer turns an accumulated direction into a "desired minus current"
// velocity change capped at maxForce. Zero directions produce no steering.
func steer(dir, velocity mgl32.Vec3, maxSpeed, maxForce float32) mgl32.Vec3 {
	if isZero(dir) {
		return mgl32.Vec3{}
	}
	desired := normalizeOrZero(dir).Mul(maxSpeed)
	return clampLength(desired.Sub(velocity), maxForce)
}
