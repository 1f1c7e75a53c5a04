package quatjulia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func sphereField(p mgl32.Vec3) (float32, bool) { return p.Len() - 1, false }

func TestFiniteDifferenceNormalSphere(t *testing.T) {
	n, ok := finiteDifferenceNormal(sphereField, mgl32.Vec3{2, 0, 0}, 0.01)
	if !ok || !nearVec(n, mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Fatalf("normal = %v ok=%v", n, ok)
	}
	n, ok = finiteDifferenceNormal(sphereField, mgl32.Vec3{0, -1.5, 0}, 0.01)
	if !ok || !nearVec(n, mgl32.Vec3{0, -1, 0}, 1e-4) {
		t.Fatalf("normal = %v ok=%v", n, ok)
	}
}

func TestFiniteDifferenceNormalDegenerate(t *testing.T) {
	flat := func(mgl32.Vec3) (float32, bool) { return 0.5, false }
	if n, ok := finiteDifferenceNormal(flat, mgl32.Vec3{1, 2, 3}, 0.01); ok || n != (mgl32.Vec3{}) {
		t.Fatalf("constant field must give a degenerate normal, got %v %v", n, ok)
	}
}

func TestAnalyticNormalOnAxes(t *testing.T) {
	c := mgl32.Quat{}
	n, ok := analyticNormal(mgl32.Vec3{1.5, 0, 0}, c, 0, 12, 4)
	if !ok || !nearVec(n, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("x axis normal = %v %v", n, ok)
	}
	n, ok = analyticNormal(mgl32.Vec3{0, 1.5, 0}, c, 0, 12, 4)
	if !ok || !nearVec(n, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("y axis normal = %v %v", n, ok)
	}
}

func TestAnalyticMatchesFiniteDifference(t *testing.T) {
	p := DefaultParams()
	p.C = mgl32.Quat{}
	pt := mgl32.Vec3{0.9, 0.4, -0.5}
	want := pt.Normalize()

	p.Normals = NormalsAnalytic
	a, ok := EstimateNormal(pt, &p)
	if !ok || a.Dot(want) < 0.99 {
		t.Fatalf("analytic normal %v, want ~%v", a, want)
	}
	p.Normals = NormalsFiniteDifference
	f, ok := EstimateNormal(pt, &p)
	if !ok || f.Dot(want) < 0.99 {
		t.Fatalf("finite difference normal %v, want ~%v", f, want)
	}
}

func TestUseAnalytic(t *testing.T) {
	p := DefaultParams()
	if useAnalytic(&p) {
		t.Fatal("quadratic defaults to finite differences")
	}
	p.Kernel = KernelCrane
	if !useAnalytic(&p) {
		t.Fatal("crane defaults to analytic normals")
	}
	p.Normals = NormalsFiniteDifference
	if useAnalytic(&p) {
		t.Fatal("explicit finite differences ignored")
	}
	p.Kernel, p.Normals = KernelCubic, NormalsAnalytic
	if useAnalytic(&p) {
		t.Fatal("cubic has no analytic normal")
	}
}
