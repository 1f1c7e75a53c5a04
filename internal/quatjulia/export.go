package quatjulia

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// SaveImage writes img as PNG or BMP depending on the extension of path.
func SaveImage(img image.Image, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return SavePNG(img, path)
	case ".bmp":
		return SaveBMP(img, path)
	default:
		return fmt.Errorf("unsupported image extension %q", ext)
	}
}

// SavePNG writes a lossless PNG.
func SavePNG(img image.Image, path string) error {
	return writeFile(path, func(f *os.File) error {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(f, img)
	})
}

// SaveBMP writes an uncompressed BMP.
func SaveBMP(img image.Image, path string) error {
	return writeFile(path, func(f *os.File) error { return bmp.Encode(f, img) })
}

func writeFile(path string, encode func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	DebugLog("Saved %s", path)
	return nil
}

// Downsample shrinks a supersampled image by factor in each axis with a
// Catmull-Rom filter. factor <= 1 returns src unchanged.
func Downsample(src *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
