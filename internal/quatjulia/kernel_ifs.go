package quatjulia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	tetraVertices = []mgl32.Vec3{
		{1, 1, 1}, {-1, -1, 1}, {1, -1, -1}, {-1, 1, -1},
	}
	octaVertices = []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	}
)

// ifs is a Sierpinski-style fold: rotate, scale towards the nearest vertex,
// rotate again.
type ifs struct {
	scale     float32
	pre, post mgl32.Mat3
	verts     []mgl32.Vec3
	iters     int
	bailout   float32
}

func rot3FromDegrees(r mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Rotate3DZ(mgl32.DegToRad(r[2])).
		Mul3(mgl32.Rotate3DY(mgl32.DegToRad(r[1]))).
		Mul3(mgl32.Rotate3DX(mgl32.DegToRad(r[0])))
}

func newIFS(k Kernel, p *RenderParams) *ifs {
	verts := tetraVertices
	if k == KernelSierpinskiOcta {
		verts = octaVertices
	}
	return &ifs{
		scale:   p.IFS.Scale,
		pre:     rot3FromDegrees(p.IFS.PreRotateDeg),
		post:    rot3FromDegrees(p.IFS.PostRotateDeg),
		verts:   verts,
		iters:   p.Iterations,
		bailout: p.Bailout,
	}
}

// fold scales z away from the closest vertex.
func (f *ifs) fold(z mgl32.Vec3) mgl32.Vec3 {
	best := f.verts[0]
	bestD := z.Sub(best).LenSqr()
	for _, v := range f.verts[1:] {
		if d := z.Sub(v).LenSqr(); d < bestD {
			best, bestD = v, d
		}
	}
	return z.Mul(f.scale).Sub(best.Mul(f.scale - 1))
}

func (f *ifs) distance(p mgl32.Vec3) (float32, bool) {
	z := p
	n := 0
	for n < f.iters {
		z = f.post.Mul3x1(f.fold(f.pre.Mul3x1(z)))
		n++
		r := z.Len()
		if !isFinite(r) {
			return 0, true
		}
		if r > f.bailout {
			break
		}
	}
	return rescue(z.Len() * math32.Pow(f.scale, -float32(n)))
}
