package quatjulia

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Stop is one gradient key; Pos is in [0,1].
type Stop struct {
	Pos   float32
	Color color.NRGBA
}

// Palette is a linear gradient sampled at a fixed number of colours.
type Palette struct {
	n     int
	stops []Stop
}

// NewPalette builds an n-colour palette from at least one stop. Stops are
// sorted by position; a single stop gives a flat palette.
func NewPalette(n int, stops ...Stop) (*Palette, error) {
	if n < 1 {
		return nil, fmt.Errorf("palette needs at least one colour, got %d", n)
	}
	if len(stops) == 0 {
		return nil, errors.New("palette needs at least one stop")
	}
	s := make([]Stop, len(stops))
	copy(s, stops)
	for _, st := range s {
		if st.Pos < 0 || st.Pos > 1 || math32.IsNaN(st.Pos) {
			return nil, fmt.Errorf("stop position must be in [0,1], got %g", st.Pos)
		}
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Pos < s[j].Pos })
	return &Palette{n: n, stops: s}, nil
}

// GrayPalette runs from black to white.
func GrayPalette(n int) *Palette {
	p, _ := NewPalette(n,
		Stop{Pos: 0, Color: color.NRGBA{A: 255}},
		Stop{Pos: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	)
	return p
}

// NumberOfColors is the palette size.
func (p *Palette) NumberOfColors() int { return p.n }

// ColorAt returns colour i; out of range indices are clamped.
func (p *Palette) ColorAt(i int) color.NRGBA {
	if i < 0 {
		i = 0
	}
	if i > p.n-1 {
		i = p.n - 1
	}
	var f float32
	if p.n > 1 {
		f = float32(i) / float32(p.n-1)
	}
	first, last := p.stops[0], p.stops[len(p.stops)-1]
	if f <= first.Pos {
		return first.Color
	}
	if f >= last.Pos {
		return last.Color
	}
	k := sort.Search(len(p.stops), func(j int) bool { return p.stops[j].Pos >= f })
	a, b := p.stops[k-1], p.stops[k]
	t := (f - a.Pos) / (b.Pos - a.Pos)
	return color.NRGBA{
		R: lerp8(a.Color.R, b.Color.R, t),
		G: lerp8(a.Color.G, b.Color.G, t),
		B: lerp8(a.Color.B, b.Color.B, t),
		A: lerp8(a.Color.A, b.Color.A, t),
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t)
}

// ApplyLight lights one palette colour: base*(ambient+diffuse) + 255*specular
// per channel, truncated and clamped. Alpha is kept.
func ApplyLight(base color.NRGBA, ambient float32, diffuse, specular mgl32.Vec3) color.NRGBA {
	ch := func(c uint8, i int) uint8 {
		v := float32(c)*(ambient+diffuse[i]) + 255*specular[i]
		switch {
		case !(v > 0):
			return 0
		case v >= 255:
			return 255
		}
		return uint8(v)
	}
	return color.NRGBA{R: ch(base.R, 0), G: ch(base.G, 1), B: ch(base.B, 2), A: base.A}
}

// ToNRGBA maps the raster through pal. Images from colour-emitting kernels
// already carry final colours and ignore pal.
func (r *RawImage) ToNRGBA(pal *Palette, ambient float32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			px := r.At(x, y)
			if r.Direct {
				img.SetNRGBA(x, y, px.Color)
				continue
			}
			img.SetNRGBA(x, y, ApplyLight(pal.ColorAt(px.Index), ambient, px.Diffuse, px.Specular))
		}
	}
	return img
}
