package quatjulia

import (
	"context"
	"image/color"
)

// scene is everything derived from RenderParams once per render: the kernel
// closure, normal estimator, camera and lights in fractal-local space.
// It is read-only while tiles run.
type scene struct {
	params *RenderParams
	cam    camera
	march  marcher
	normal normalFunc
	lights []Light
	direct bool
}

func newScene(p *RenderParams) *scene {
	dist := p.Kernel.distance(p)
	inv := p.Transform.Inverse()
	lights := make([]Light, len(p.Lights))
	for i, L := range p.Lights {
		lights[i] = L.transformed(inv)
	}
	s := &scene{
		params: p,
		cam:    newCamera(p),
		march:  newMarcher(p, dist),
		normal: newNormalFunc(p, dist),
		lights: lights,
		direct: p.Kernel.EmitsColor(),
	}
	DebugLog("Prepared scene kernel=%s size=%dx%d iterations=%d bailout=%g lights=%d analyticNormals=%v",
		p.Kernel, p.Width, p.Height, p.Iterations, p.Bailout, len(lights), useAnalytic(p))
	return s
}

// shadePixel marches the ray through (x, y) and lights it on a hit.
func (s *scene) shadePixel(x, y int, stats *MarchStats) (Pixel, MarchResult) {
	o, d := s.cam.ray(x, y)
	res := s.march.march(o, d)
	stats.record(res)

	px := Pixel{
		Index: s.params.PaletteIndex(res.Penetration),
		Hit:   res.State == MarchHit,
	}
	if px.Hit {
		if n, ok := s.normal(res.Point); ok {
			px.Diffuse, px.Specular = Shade(res.Point, n, o, s.lights, s.params.Combine)
		} else {
			stats.DegenerateNormals++
			DebugLogOnce("Degenerate gradient at %v, pixel (%d,%d) left unlit", res.Point, x, y)
		}
	}
	if s.direct {
		px.Color = s.directColor(px)
	}
	return px, res
}

func (s *scene) directColor(px Pixel) color.NRGBA {
	if !px.Hit {
		return s.params.Background
	}
	return ApplyLight(s.params.SurfaceColor, s.params.Ambient, px.Diffuse, px.Specular)
}

// renderTile fills one tile row by row, checking ctx before each row.
// A cancelled tile returns ctx.Err() and its partial buffer is discarded.
func (s *scene) renderTile(ctx context.Context, t Tile) (*tileBuffer, error) {
	b := newTileBuffer(t, s.params.Height)
	tw := t.Width()
	for y := 0; y < s.params.Height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := b.pixels[y*tw : (y+1)*tw]
		for x := t.FromWidth; x <= t.ToWidth; x++ {
			row[x-t.FromWidth], _ = s.shadePixel(x, y, &b.stats)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Trace marches and shades a single pixel of params; useful for probing a
// scene without a full render.
func Trace(params *RenderParams, x, y int) (MarchResult, Pixel) {
	var st MarchStats
	px, res := newScene(params).shadePixel(x, y, &st)
	return res, px
}
