package quatjulia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func isFinite(x float32) bool { return !math32.IsInf(x, 0) && !math32.IsNaN(x) }

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// clampVec01 clamps each channel to [0,1].
func clampVec01(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{clamp01(v[0]), clamp01(v[1]), clamp01(v[2])}
}

// normalize returns the unit vector and false when v has zero length,
// in which case v is returned unchanged.
func normalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l == 0 || !isFinite(l) {
		return v, false
	}
	return v.Mul(1 / l), true
}

// reflect mirrors I about the unit normal N.
func reflect(I, N mgl32.Vec3) mgl32.Vec3 {
	return I.Sub(N.Mul(2 * I.Dot(N)))
}
