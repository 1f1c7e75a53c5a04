package quatjulia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	white = mgl32.Vec3{1, 1, 1}
	up    = mgl32.Vec3{0, 0, 1}
)

func mustPoint(t *testing.T, pos mgl32.Vec3, diffuse, specular float32, model ReflectionModel) Light {
	t.Helper()
	L, err := NewPointLight(pos, white, diffuse, specular, 16, model)
	if err != nil {
		t.Fatal(err)
	}
	return L
}

func TestPointLightHeadOn(t *testing.T) {
	// Light 2 units above the surface: attenuation 1/4.
	for _, model := range []ReflectionModel{Phong, BlinnPhong} {
		L := mustPoint(t, mgl32.Vec3{0, 0, 2}, 2, 2, model)
		d, s := Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, []Light{L}, CombineSum)
		if !nearVec(d, mgl32.Vec3{0.5, 0.5, 0.5}, 1e-6) || !nearVec(s, mgl32.Vec3{0.5, 0.5, 0.5}, 1e-6) {
			t.Fatalf("model %d: diffuse=%v specular=%v", model, d, s)
		}
	}
}

func TestLightBehindSurface(t *testing.T) {
	L := mustPoint(t, mgl32.Vec3{0, 0, -2}, 4, 4, BlinnPhong)
	d, s := Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, []Light{L}, CombineSum)
	if d != (mgl32.Vec3{}) || s != (mgl32.Vec3{}) {
		t.Fatalf("back-facing light contributed: %v %v", d, s)
	}
}

func TestCombineAverageAndSum(t *testing.T) {
	L := mustPoint(t, mgl32.Vec3{0, 0, 2}, 2, 0, BlinnPhong)
	lights := []Light{L, L}
	avg, _ := Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, lights, CombineAverage)
	sum, _ := Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, lights, CombineSum)
	if !nearVec(avg, mgl32.Vec3{0.5, 0.5, 0.5}, 1e-6) {
		t.Fatalf("average = %v", avg)
	}
	if !nearVec(sum, mgl32.Vec3{1, 1, 1}, 1e-6) {
		t.Fatalf("sum = %v", sum)
	}
}

func TestClampAfterCombination(t *testing.T) {
	// Each light alone saturates; clamping happens once, after averaging.
	hot := mustPoint(t, mgl32.Vec3{0, 0, 2}, 8, 0, BlinnPhong)
	off := mustPoint(t, mgl32.Vec3{0, 0, 2}, 0, 0, BlinnPhong)
	d, _ := Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, []Light{hot, off}, CombineAverage)
	if !nearVec(d, white, 1e-6) {
		t.Fatalf("average of 2.0 and skipped light = %v, want 1 after clamp", d)
	}
	raw, _ := shadeRaw(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, []Light{hot, off}, CombineAverage)
	if !near(raw[0], 1, 1e-6) {
		t.Fatalf("skipped light must still count in the average: %v", raw)
	}
	d, _ = Shade(mgl32.Vec3{}, up, mgl32.Vec3{0, 0, 2}, []Light{hot}, CombineSum)
	if !nearVec(d, white, 0) {
		t.Fatalf("sum not clamped: %v", d)
	}
}

func TestDirectionalLightHasNoFalloff(t *testing.T) {
	L, err := NewDirectionalLight(mgl32.Vec3{0, 0, -3}, white, 0.5, 0, 8, Phong)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []mgl32.Vec3{{}, {0, 0, -100}, {5, 5, 5}} {
		d, _ := Shade(p, up, p.Add(up), []Light{L}, CombineSum)
		if !nearVec(d, mgl32.Vec3{0.5, 0.5, 0.5}, 1e-6) {
			t.Fatalf("at %v diffuse = %v", p, d)
		}
	}
	if _, err := NewDirectionalLight(mgl32.Vec3{}, white, 1, 1, 1, Phong); err == nil {
		t.Fatal("zero direction accepted")
	}
}

func TestLightTransformed(t *testing.T) {
	M := Transform{Translate: mgl32.Vec3{1, 0, 0}}.Inverse()
	L := mustPoint(t, mgl32.Vec3{1, 2, 3}, 1, 1, Phong).transformed(M)
	if !nearVec(L.Position, mgl32.Vec3{0, 2, 3}, 1e-6) {
		t.Fatalf("position = %v", L.Position)
	}
	D, _ := NewDirectionalLight(mgl32.Vec3{0, 0, 1}, white, 1, 1, 1, Phong)
	rot := Transform{RotateDeg: mgl32.Vec3{0, 90, 0}}.Inverse()
	if got := D.transformed(rot).Direction; !near(got.Len(), 1, 1e-5) {
		t.Fatalf("direction not unit: %v", got)
	}
}

func TestParseLightEnums(t *testing.T) {
	if m, err := ParseReflectionModel("Phong"); err != nil || m != Phong {
		t.Fatalf("phong: %v %v", m, err)
	}
	if c, err := ParseCombine("sum"); err != nil || c != CombineSum {
		t.Fatalf("sum: %v %v", c, err)
	}
	if _, err := ParseCombine("max"); err == nil {
		t.Fatal("unknown combine accepted")
	}
}

func TestSumOfCopiesScalesSingleLight(t *testing.T) {
	L := mustPoint(t, mgl32.Vec3{0, 0, 2}, 1, 0.5, BlinnPhong)
	view := mgl32.Vec3{0, 0, 2}
	d1, s1 := shadeRaw(mgl32.Vec3{}, up, view, []Light{L}, CombineSum)
	d3, s3 := shadeRaw(mgl32.Vec3{}, up, view, []Light{L, L, L}, CombineSum)
	if !nearVec(d3, d1.Mul(3), 1e-6) || !nearVec(s3, s1.Mul(3), 1e-6) {
		t.Fatalf("3 copies: %v %v, single: %v %v", d3, s3, d1, s1)
	}
	if d3[0] >= 1 || s3[0] >= 1 {
		t.Fatalf("values must stay below the clamp: %v %v", d3, s3)
	}
	a3, _ := shadeRaw(mgl32.Vec3{}, up, view, []Light{L, L, L}, CombineAverage)
	if !nearVec(a3, d1, 1e-6) {
		t.Fatalf("average of copies %v, single %v", a3, d1)
	}
}
