package quatjulia

import (
	"encoding/json"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestEstimateDistanceFiniteNonNegative(t *testing.T) {
	for k := Kernel(0); k < numKernels; k++ {
		p := DefaultParams()
		p.Kernel = k
		dist := k.distance(&p)
		for x := float32(-2); x <= 2; x += 0.5 {
			for y := float32(-2); y <= 2; y += 0.5 {
				for z := float32(-2); z <= 2; z += 0.5 {
					d, _ := dist(mgl32.Vec3{x, y, z})
					if !isFinite(d) || d < 0 {
						t.Fatalf("%s: distance at (%g,%g,%g) = %g", k, x, y, z, d)
					}
				}
			}
		}
	}
}

func TestEstimateDistanceOutsideIsPositive(t *testing.T) {
	for _, k := range []Kernel{KernelQuadratic, KernelCubic, KernelInglesQuadratic, KernelInglesCubic, KernelCrane} {
		p := DefaultParams()
		p.Kernel = k
		if d := EstimateDistance(mgl32.Vec3{3, 0, 0}, &p); !(d > 0) {
			t.Fatalf("%s: expected positive distance outside the set, got %g", k, d)
		}
	}
}

func TestQuadraticUnitSphere(t *testing.T) {
	// With c=0 the set is the unit ball and the estimate is r*ln(r).
	c := mgl32.Quat{}
	d, rescued := quadraticDistance(toQuat(mgl32.Vec3{2, 0, 0}, 0), c, 12, 4)
	if rescued || !near(d, 2*math32.Log(2), 1e-5) {
		t.Fatalf("got %g rescued=%v, want %g", d, rescued, 2*math32.Log(2))
	}
	d, _ = quadraticDistance(toQuat(mgl32.Vec3{0.5, 0, 0}, 0), c, 12, 4)
	if d != 0 {
		t.Fatalf("inside point must clamp to 0, got %g", d)
	}
}

func TestRescue(t *testing.T) {
	cases := []struct {
		in      float32
		want    float32
		rescued bool
	}{
		{math32.NaN(), 0, true},
		{math32.Inf(1), 0, true},
		{math32.Inf(-1), 0, true},
		{-1, 0, false},
		{2, 2, false},
	}
	for _, c := range cases {
		got, r := rescue(c.in)
		if got != c.want || r != c.rescued {
			t.Fatalf("rescue(%g) = %g,%v want %g,%v", c.in, got, r, c.want, c.rescued)
		}
	}
}

func TestOverflowIsRescued(t *testing.T) {
	d, rescued := quadraticDistance(toQuat(mgl32.Vec3{10, 0, 0}, 0), mgl32.Quat{}, 50, math32.MaxFloat32)
	if d != 0 || !rescued {
		t.Fatalf("overflow not rescued: %g %v", d, rescued)
	}
}

func TestParseKernel(t *testing.T) {
	for k := Kernel(0); k < numKernels; k++ {
		got, err := ParseKernel(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKernel(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKernel("mandelbulb"); err == nil {
		t.Fatal("expected error for unknown kernel")
	}
	var cfg struct {
		Kernel Kernel `json:"kernel"`
	}
	if err := json.Unmarshal([]byte(`{"kernel":"Sierpinski-Octa"}`), &cfg); err != nil || cfg.Kernel != KernelSierpinskiOcta {
		t.Fatalf("json kernel: %v %v", cfg.Kernel, err)
	}
}

func TestIFSFoldScalesFromVertex(t *testing.T) {
	p := DefaultParams()
	p.Kernel = KernelSierpinskiTetra
	f := newIFS(p.Kernel, &p)
	// A vertex is a fixed point of its own fold.
	v := tetraVertices[0]
	if got := f.fold(v); !nearVec(got, v, 1e-6) {
		t.Fatalf("vertex moved: %v -> %v", v, got)
	}
	if got := f.fold(mgl32.Vec3{0.5, 0.5, 0.5}); !nearVec(got, mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Fatalf("fold towards (1,1,1) failed: %v", got)
	}
}

func TestKernelEstimatesOnUnitBall(t *testing.T) {
	// For c=0 every family reduces to a multiple of r*ln(r); at r=2 the
	// quadratic and cubic forms give 2ln2, the half-scaled forms ln2.
	c := mgl32.Quat{}
	q := toQuat(mgl32.Vec3{2, 0, 0}, 0)
	ln2 := math32.Log(2)
	cases := []struct {
		name string
		fn   func(q, c mgl32.Quat, iters int, bailout float32) (float32, bool)
		want float32
	}{
		{"cubic", cubicDistance, 2 * ln2},
		{"ingles-quadratic", inglesQuadraticDistance, ln2},
		{"ingles-cubic", inglesCubicDistance, ln2},
		{"crane", craneDistance, ln2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, rescued := tc.fn(q, c, 12, 4)
			if rescued || !near(d, tc.want, 1e-5) {
				t.Fatalf("got %g rescued=%v, want %g", d, rescued, tc.want)
			}
		})
	}
}

func TestIFSDistance(t *testing.T) {
	p := DefaultParams()
	p.Kernel = KernelSierpinskiTetra
	f := newIFS(p.Kernel, &p)

	// A vertex never escapes: |z| * s^-iters.
	d, rescued := f.distance(tetraVertices[0])
	want := math32.Sqrt(3) * math32.Pow(2, -float32(p.Iterations))
	if rescued || !near(d, want, 1e-9) {
		t.Fatalf("vertex: got %g, want %g", d, want)
	}
	// (10,0,0) folds once to (19,-1,-1) and escapes: |z|/s.
	d, _ = f.distance(mgl32.Vec3{10, 0, 0})
	if want := math32.Sqrt(363) / 2; !near(d, want, 1e-4) {
		t.Fatalf("far point: got %g, want %g", d, want)
	}
}
