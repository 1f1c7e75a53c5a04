package quatjulia

import "github.com/go-gl/mathgl/mgl32"

// camera turns pixel coordinates into rays in fractal-local space.
type camera struct {
	fromX, stepX float32
	toY, stepY   float32
	z            float32
	aim          bool
	inv          mgl32.Mat4
}

func newCamera(p *RenderParams) camera {
	return camera{
		fromX: p.FromX,
		stepX: (p.ToX - p.FromX) / float32(p.Width),
		toY:   p.ToY,
		stepY: (p.ToY - p.FromY) / float32(p.Height),
		z:     p.FromZ,
		aim:   p.AimToOrigin,
		inv:   p.Transform.Inverse(),
	}
}

// worldRay is the ray through the centre of pixel (x, y); row 0 is the top.
func (c *camera) worldRay(x, y int) (origin, dir mgl32.Vec3) {
	origin = mgl32.Vec3{
		c.fromX + (float32(x)+0.5)*c.stepX,
		c.toY - (float32(y)+0.5)*c.stepY,
		c.z,
	}
	dir = mgl32.Vec3{0, 0, 1}
	if c.aim {
		if d, ok := normalize(origin.Mul(-1)); ok {
			dir = d
		}
	}
	return
}

// ray is worldRay mapped through the inverse transform.
func (c *camera) ray(x, y int) (origin, dir mgl32.Vec3) {
	o, d := c.worldRay(x, y)
	origin = transformPoint(c.inv, o)
	dir, ok := normalize(transformDir(c.inv, d))
	if !ok {
		dir = mgl32.Vec3{0, 0, 1}
	}
	return origin, dir
}
