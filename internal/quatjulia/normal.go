package quatjulia

import "github.com/go-gl/mathgl/mgl32"

// normalFunc returns the unit surface normal at p; ok is false for a
// degenerate (zero-length) gradient, in which case the raw vector is returned.
type normalFunc func(p mgl32.Vec3) (n mgl32.Vec3, ok bool)

func useAnalytic(p *RenderParams) bool {
	switch p.Normals {
	case NormalsAnalytic:
		return p.Kernel.HasAnalyticNormal()
	case NormalsAuto:
		return p.Kernel == KernelCrane
	}
	return false
}

func newNormalFunc(p *RenderParams, dist distanceFunc) normalFunc {
	if useAnalytic(p) {
		c, slice, iters, bailout := p.C, p.Slice, p.Iterations, p.Bailout
		return func(x mgl32.Vec3) (mgl32.Vec3, bool) {
			return analyticNormal(x, c, slice, iters, bailout)
		}
	}
	delta := p.NormalDistance
	return func(x mgl32.Vec3) (mgl32.Vec3, bool) {
		return finiteDifferenceNormal(dist, x, delta)
	}
}

// EstimateNormal returns the surface normal at p for the kernel in params.
func EstimateNormal(p mgl32.Vec3, params *RenderParams) (mgl32.Vec3, bool) {
	return newNormalFunc(params, params.Kernel.distance(params))(p)
}

// finiteDifferenceNormal takes the central difference of the field on each axis.
func finiteDifferenceNormal(dist distanceFunc, p mgl32.Vec3, delta float32) (mgl32.Vec3, bool) {
	at := func(dx, dy, dz float32) float32 {
		d, _ := dist(mgl32.Vec3{p[0] + dx, p[1] + dy, p[2] + dz})
		return d
	}
	g := mgl32.Vec3{
		at(delta, 0, 0) - at(-delta, 0, 0),
		at(0, delta, 0) - at(0, -delta, 0),
		at(0, 0, delta) - at(0, 0, -delta),
	}
	return normalize(g)
}

// jacobianRow advances one row of the q^2+c Jacobian (the constant factor 2
// is dropped since the result is normalized).
func jacobianRow(J, z, cz mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		J.Dot(cz),
		J[0]*z[1] + J[1]*z[0],
		J[0]*z[2] + J[2]*z[0],
		J[0]*z[3] + J[3]*z[0],
	}
}

func qsqr4(a mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		a[0]*a[0] - a[1]*a[1] - a[2]*a[2] - a[3]*a[3],
		2 * a[0] * a[1],
		2 * a[0] * a[2],
		2 * a[0] * a[3],
	}
}

// analyticNormal propagates three Jacobian rows with the orbit and projects
// them onto the final iterate.
func analyticNormal(p mgl32.Vec3, c mgl32.Quat, slice float32, iters int, bailout float32) (mgl32.Vec3, bool) {
	z := mgl32.Vec4{p[0], p[1], p[2], slice}
	cv := mgl32.Vec4{c.W, c.V[0], c.V[1], c.V[2]}
	J0 := mgl32.Vec4{1, 0, 0, 0}
	J1 := mgl32.Vec4{0, 1, 0, 0}
	J2 := mgl32.Vec4{0, 0, 1, 0}
	b2 := bailout * bailout
	for i := 0; i < iters; i++ {
		cz := mgl32.Vec4{z[0], -z[1], -z[2], -z[3]}
		J0 = jacobianRow(J0, z, cz)
		J1 = jacobianRow(J1, z, cz)
		J2 = jacobianRow(J2, z, cz)
		z = qsqr4(z).Add(cv)
		m2 := z.Dot(z)
		if !isFinite(m2) {
			return mgl32.Vec3{}, false
		}
		if m2 > b2 {
			break
		}
	}
	return normalize(mgl32.Vec3{J0.Dot(z), J1.Dot(z), J2.Dot(z)})
}
