package quatjulia

import "github.com/go-gl/mathgl/mgl32"

// Transform places the fractal in world space: scale, then rotate about
// X, Y, Z (degrees), then translate.
type Transform struct {
	Translate mgl32.Vec3 `json:"translate"`
	RotateDeg mgl32.Vec3 `json:"rotateDeg"`
	Scale     float32    `json:"scale,omitempty"` // 0 means 1
}

// Compose rotation from angles, applied X first.
func rotFromDegrees(r mgl32.Vec3) mgl32.Mat4 {
	R := mgl32.Ident4()
	R = mgl32.HomogRotate3DX(mgl32.DegToRad(r[0])).Mul4(R)
	R = mgl32.HomogRotate3DY(mgl32.DegToRad(r[1])).Mul4(R)
	R = mgl32.HomogRotate3DZ(mgl32.DegToRad(r[2])).Mul4(R)
	return R
}

// Matrix returns the local->world matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	T := mgl32.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2])
	return T.Mul4(rotFromDegrees(t.RotateDeg)).Mul4(mgl32.Scale3D(s, s, s))
}

// Inverse returns the world->local matrix.
func (t Transform) Inverse() mgl32.Mat4 {
	return t.Matrix().Inv()
}

func transformPoint(M mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return M.Mul4x1(p.Vec4(1)).Vec3()
}

func transformDir(M mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return M.Mul4x1(d.Vec4(0)).Vec3()
}
