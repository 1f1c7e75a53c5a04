package quatjulia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntersectSphere(t *testing.T) {
	fwd := mgl32.Vec3{0, 0, 1}
	t0, t1, ok := intersectSphere(mgl32.Vec3{0, 0, -3}, fwd, 1)
	if !ok || !near(t0, 2, 1e-6) || !near(t1, 4, 1e-6) {
		t.Fatalf("front hit: %g %g %v", t0, t1, ok)
	}
	t0, t1, ok = intersectSphere(mgl32.Vec3{}, fwd, 1)
	if !ok || !near(t0, -1, 1e-6) || !near(t1, 1, 1e-6) {
		t.Fatalf("inside: %g %g %v", t0, t1, ok)
	}
	if _, _, ok := intersectSphere(mgl32.Vec3{0, 0, 3}, fwd, 1); ok {
		t.Fatal("sphere behind origin reported as hit")
	}
	if _, _, ok := intersectSphere(mgl32.Vec3{2, 2, -3}, fwd, 1); ok {
		t.Fatal("miss reported as hit")
	}
}
