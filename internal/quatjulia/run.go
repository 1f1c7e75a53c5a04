package quatjulia

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Run renders the scene described by the JSON file at cfgPath and writes
// the picture (and optionally the raw raster) to disk.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	pal, err := cfg.Palette.Build()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, Timeout)
		defer cancel()
	}

	// Stretch probing and the render share the progress range 0..100.
	renderStart := 0.0
	if cfg.AutoStretch {
		lo, hi, err := EstimateStretch(ctx, params, cfg.ProbeStride*cfg.Antialias)
		if err != nil {
			return err
		}
		params.MinStretchDistance, params.MaxStretchDistance = lo, hi
		renderStart = 5
		fmt.Printf("[PROGRESS] %.2f%%\n", renderStart)
	}

	r := NewRenderer(
		WithWorkers(Workers),
		WithTileWidth(cfg.TileWidth*cfg.Antialias),
		WithProgress(func(pct float64) { fmt.Printf("[PROGRESS] %.2f%%\n", pct) }),
	)
	res, err := r.Render(ctx, params, renderStart, 100-renderStart)
	if err != nil {
		return err
	}
	if res.Cancelled() {
		return fmt.Errorf("render cancelled after %s: %w", res.Elapsed, ctx.Err())
	}
	if Stats {
		Logger().Info("march stats",
			"rays", res.Stats.Rays(), "hits", res.Stats.Hits,
			"diverged", res.Stats.Diverged, "exhausted", res.Stats.Exhausted,
			"rescues", res.Stats.Rescues, "degenerateNormals", res.Stats.DegenerateNormals)
	}

	img := Downsample(res.Image.ToNRGBA(pal, params.Ambient), cfg.Antialias)
	if err := SaveImage(img, cfg.Out); err != nil {
		return err
	}
	if RAW {
		rawPath := strings.TrimSuffix(cfg.Out, filepath.Ext(cfg.Out)) + ".raw"
		if err := res.Image.SaveRaw(rawPath); err != nil {
			return err
		}
		DebugLog("Saved raw image: %s", rawPath)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Rendered %s %dx%d (x%d AA): %d rays, %d hits, %d ms -> %s\n",
		params.Kernel, cfg.Width, cfg.Height, cfg.Antialias,
		res.Stats.Rays(), res.Stats.Hits, res.ElapsedMs(), cfg.Out)
	return nil
}
