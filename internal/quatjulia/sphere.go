package quatjulia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// intersectSphere solves |O + tD| = radius for a unit D, returning the
// entry and exit parameters (t0 <= t1). ok is false when the ray misses or
// the sphere lies entirely behind the origin.
func intersectSphere(O, D mgl32.Vec3, radius float32) (t0, t1 float32, ok bool) {
	b := O.Dot(D)
	c := O.Dot(O) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, 0, false
	}
	s := math32.Sqrt(disc)
	t0, t1 = -b-s, -b+s
	if t1 < 0 {
		return 0, 0, false
	}
	return t0, t1, true
}
