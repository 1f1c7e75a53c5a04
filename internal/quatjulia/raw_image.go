package quatjulia

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

// Pixel is one cell of the raw raster.
type Pixel struct {
	Index    int        // palette index, 0..PaletteSize-1
	Diffuse  mgl32.Vec3 // clamped diffuse intensity
	Specular mgl32.Vec3 // clamped specular intensity
	Color    color.NRGBA
	Hit      bool
}

// Light is the accumulated intensity (diffuse+specular).
func (p Pixel) Light() mgl32.Vec3 { return p.Diffuse.Add(p.Specular) }

// RawImage is the assembled render. Pixels are row-major; Direct images
// carry final colours in Pixel.Color.
type RawImage struct {
	Width, Height int
	Direct        bool
	Pixels        []Pixel
}

// NewRawImage allocates a zeroed raster.
func NewRawImage(width, height int, direct bool) *RawImage {
	if width <= 0 || height <= 0 {
		panic("raw image size must be positive")
	}
	return &RawImage{
		Width:  width,
		Height: height,
		Direct: direct,
		Pixels: make([]Pixel, width*height),
	}
}

func (r *RawImage) idx(x, y int) int { return y*r.Width + x }

// At returns the pixel at column x, row y.
func (r *RawImage) At(x, y int) Pixel { return r.Pixels[r.idx(x, y)] }

// tileBuffer is the private output of one worker.
type tileBuffer struct {
	tile   Tile
	height int
	pixels []Pixel // row-major, tile.Width() columns
	stats  MarchStats
}

func newTileBuffer(t Tile, height int) *tileBuffer {
	return &tileBuffer{tile: t, height: height, pixels: make([]Pixel, t.Width()*height)}
}

// assemble copies each tile into the full raster at its column offset.
func assemble(width, height int, direct bool, tiles []*tileBuffer) *RawImage {
	img := NewRawImage(width, height, direct)
	for _, b := range tiles {
		tw := b.tile.Width()
		for y := 0; y < height; y++ {
			dst := img.Pixels[img.idx(b.tile.FromWidth, y) : img.idx(b.tile.ToWidth, y)+1]
			copy(dst, b.pixels[y*tw:(y+1)*tw])
		}
	}
	return img
}

// rawPixel is the fixed-size on-disk form of Pixel.
type rawPixel struct {
	Index    int32
	Diffuse  [3]float32
	Specular [3]float32
	Color    [4]uint8
	Hit      uint8
}

const (
	rawPixelSize = 4 + 12 + 12 + 4 + 1
	rawReadChunk = 4096
	maxRawPixels = 1 << 28
)

// SaveRaw writes the raster as little-endian binary: int32 width, int32
// height, uint8 direct flag, then one record per pixel.
func (r *RawImage) SaveRaw(path string) error {
	if len(r.Pixels) != r.Width*r.Height {
		return fmt.Errorf("pixel count mismatch: got %d, expected %d (%dx%d)", len(r.Pixels), r.Width*r.Height, r.Width, r.Height)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var direct uint8
	if r.Direct {
		direct = 1
	}
	for _, v := range []interface{}{int32(r.Width), int32(r.Height), direct} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	recs := make([]rawPixel, len(r.Pixels))
	for i, p := range r.Pixels {
		recs[i] = rawPixel{
			Index:    int32(p.Index),
			Diffuse:  p.Diffuse,
			Specular: p.Specular,
			Color:    [4]uint8{p.Color.R, p.Color.G, p.Color.B, p.Color.A},
		}
		if p.Hit {
			recs[i].Hit = 1
		}
	}
	if err := binary.Write(w, binary.LittleEndian, recs); err != nil {
		return err
	}
	return w.Flush()
}

// ReadRaw is the inverse of SaveRaw.
func ReadRaw(rd io.Reader) (*RawImage, error) {
	br := bufio.NewReader(rd)
	var w, h int32
	var direct uint8
	for _, v := range []interface{}{&w, &h, &direct} {
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if w <= 0 || h <= 0 || int64(w)*int64(h) > maxRawPixels {
		return nil, fmt.Errorf("bad raw header %dx%d", w, h)
	}
	// Records are read in chunks so a lying header cannot force a huge
	// allocation before the data runs out.
	n := int(w) * int(h)
	recs := make([]rawPixel, 0, min(n, rawReadChunk))
	chunk := make([]rawPixel, rawReadChunk)
	for len(recs) < n {
		c := chunk[:min(rawReadChunk, n-len(recs))]
		if err := binary.Read(br, binary.LittleEndian, c); err != nil {
			return nil, fmt.Errorf("raw body after %d of %d pixels: %w", len(recs), n, err)
		}
		recs = append(recs, c...)
	}
	img := NewRawImage(int(w), int(h), direct != 0)
	for i, rp := range recs {
		img.Pixels[i] = Pixel{
			Index:    int(rp.Index),
			Diffuse:  rp.Diffuse,
			Specular: rp.Specular,
			Color:    color.NRGBA{R: rp.Color[0], G: rp.Color[1], B: rp.Color[2], A: rp.Color[3]},
			Hit:      rp.Hit != 0,
		}
	}
	return img, nil
}
