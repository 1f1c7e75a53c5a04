package quatjulia

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Kernel identifies a distance-field family. The renderer switches on it once
// per render and keeps the resulting closure for every pixel.
type Kernel uint8

const (
	KernelQuadratic Kernel = iota
	KernelCubic
	KernelInglesQuadratic
	KernelInglesCubic
	KernelSierpinskiTetra
	KernelSierpinskiOcta
	KernelCrane
	numKernels
)

var kernelNames = [numKernels]string{
	"quadratic",
	"cubic",
	"ingles-quadratic",
	"ingles-cubic",
	"sierpinski-tetra",
	"sierpinski-octa",
	"crane",
}

func (k Kernel) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kernel(%d)", uint8(k))
	}
	return kernelNames[k]
}

func (k Kernel) Valid() bool { return k < numKernels }

// IsIFS reports the folding (Sierpinski) families.
func (k Kernel) IsIFS() bool { return k == KernelSierpinskiTetra || k == KernelSierpinskiOcta }

// HasAnalyticNormal reports kernels iterating q^2+c, for which the Jacobian
// normal is available.
func (k Kernel) HasAnalyticNormal() bool {
	return k == KernelQuadratic || k == KernelInglesQuadratic || k == KernelCrane
}

// EmitsColor reports kernels that produce final RGBA per pixel instead of a
// palette index.
func (k Kernel) EmitsColor() bool {
	return k == KernelCrane || k == KernelInglesQuadratic || k == KernelInglesCubic
}

// ParseKernel maps a config name to a Kernel.
func ParseKernel(s string) (Kernel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kernelNames {
		if n == s {
			return Kernel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kernel %q", s)
}

func (k Kernel) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown kernel %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kernel) UnmarshalText(b []byte) error {
	v, err := ParseKernel(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// distanceFunc estimates the distance from p to the surface. rescued is true
// when the iteration went non-finite and 0 was substituted.
type distanceFunc func(p mgl32.Vec3) (d float32, rescued bool)

// distance builds the estimator for the kernel. All state captured is
// read-only, so the result is safe for concurrent use.
func (k Kernel) distance(p *RenderParams) distanceFunc {
	c, slice, iters, bailout := p.C, p.Slice, p.Iterations, p.Bailout
	switch k {
	case KernelQuadratic:
		return func(x mgl32.Vec3) (float32, bool) { return quadraticDistance(toQuat(x, slice), c, iters, bailout) }
	case KernelCubic:
		return func(x mgl32.Vec3) (float32, bool) { return cubicDistance(toQuat(x, slice), c, iters, bailout) }
	case KernelInglesQuadratic:
		return func(x mgl32.Vec3) (float32, bool) { return inglesQuadraticDistance(toQuat(x, slice), c, iters, bailout) }
	case KernelInglesCubic:
		return func(x mgl32.Vec3) (float32, bool) { return inglesCubicDistance(toQuat(x, slice), c, iters, bailout) }
	case KernelSierpinskiTetra, KernelSierpinskiOcta:
		return newIFS(k, p).distance
	case KernelCrane:
		return func(x mgl32.Vec3) (float32, bool) { return craneDistance(toQuat(x, slice), c, iters, bailout) }
	}
	panic(fmt.Sprintf("quatjulia: no distance estimator for %s", k))
}

// EstimateDistance evaluates the kernel selected in params at p. Non-finite
// estimates are reported as 0.
func EstimateDistance(p mgl32.Vec3, params *RenderParams) float32 {
	d, _ := params.Kernel.distance(params)(p)
	return d
}

// toQuat lifts a 3-D point into the quaternion (x + yi + zj + slice*k).
func toQuat(p mgl32.Vec3, slice float32) mgl32.Quat {
	return mgl32.Quat{W: p[0], V: mgl32.Vec3{p[1], p[2], slice}}
}

func sqrStep(q, c mgl32.Quat) mgl32.Quat  { return q.Mul(q).Add(c) }
func cubeStep(q, c mgl32.Quat) mgl32.Quat { return q.Mul(q).Mul(q).Add(c) }

// rescue applies the single NaN policy shared by every kernel: non-finite
// values become 0 (and are flagged), negative estimates clamp to 0.
func rescue(d float32) (float32, bool) {
	if !isFinite(d) {
		return 0, true
	}
	if d < 0 {
		return 0, false
	}
	return d, false
}

// logDistance is ln(r)*r/dr, 0 when either norm is exactly 0.
func logDistance(r, dr float32) (float32, bool) {
	if r == 0 || dr == 0 {
		return 0, false
	}
	return rescue(math32.Log(r) * r / dr)
}

func quadraticDistance(q, c mgl32.Quat, iters int, bailout float32) (float32, bool) {
	r, dr := q.Len(), float32(1)
	for i := 0; i < iters && r <= bailout; i++ {
		dr = 2 * r * dr
		q = sqrStep(q, c)
		r = q.Len()
		if !isFinite(r) || !isFinite(dr) {
			return 0, true
		}
	}
	return logDistance(r, dr)
}

func cubicDistance(q, c mgl32.Quat, iters int, bailout float32) (float32, bool) {
	r, dr := q.Len(), float32(1)
	for i := 0; i < iters && r <= bailout; i++ {
		dr = 3 * r * r * dr
		q = cubeStep(q, c)
		r = q.Len()
		if !isFinite(r) || !isFinite(dr) {
			return 0, true
		}
	}
	return logDistance(r, dr)
}

// inglesQuadraticDistance carries the full quaternion derivative.
func inglesQuadraticDistance(q, c mgl32.Quat, iters int, bailout float32) (float32, bool) {
	dq := mgl32.Quat{W: 1}
	m2 := q.Dot(q)
	b2 := bailout * bailout
	for i := 0; i < iters && m2 <= b2; i++ {
		dq = q.Mul(dq).Scale(2)
		q = sqrStep(q, c)
		m2 = q.Dot(q)
		if !isFinite(m2) {
			return 0, true
		}
	}
	ld := dq.Len()
	if m2 == 0 || ld == 0 {
		return 0, false
	}
	if !isFinite(ld) {
		return 0, true
	}
	return rescue(0.25 * math32.Log(m2) * math32.Sqrt(m2) / ld)
}

func inglesCubicDistance(q, c mgl32.Quat, iters int, bailout float32) (float32, bool) {
	dz := float32(1)
	m2 := q.Dot(q)
	b2 := bailout * bailout
	for i := 0; i < iters && m2 <= b2; i++ {
		dz = 3 * m2 * dz
		q = cubeStep(q, c)
		m2 = q.Dot(q)
		if !isFinite(m2) || !isFinite(dz) {
			return 0, true
		}
	}
	if m2 == 0 || dz == 0 {
		return 0, false
	}
	return rescue(0.25 * math32.Log(m2) * math32.Sqrt(m2) / dz)
}

// craneDistance propagates q' <- 2*q*q' next to q <- q^2+c.
func craneDistance(q, c mgl32.Quat, iters int, bailout float32) (float32, bool) {
	qp := mgl32.Quat{W: 1}
	b2 := bailout * bailout
	for i := 0; i < iters; i++ {
		qp = q.Mul(qp).Scale(2)
		q = sqrStep(q, c)
		m2 := q.Dot(q)
		if !isFinite(m2) {
			return 0, true
		}
		if m2 > b2 {
			break
		}
	}
	r, rp := q.Len(), qp.Len()
	if r == 0 || rp == 0 {
		return 0, false
	}
	if !isFinite(rp) {
		return 0, true
	}
	return rescue(0.5 * r * math32.Log(r) / rp)
}
