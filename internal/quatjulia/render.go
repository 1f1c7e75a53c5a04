package quatjulia

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers caps concurrently rendered tiles; <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option { return func(r *Renderer) { r.workers = n } }

// WithTileWidth sets the tile width hint in pixels.
func WithTileWidth(px int) Option { return func(r *Renderer) { r.tileWidth = px } }

// WithProgress installs a progress sink.
func WithProgress(fn ProgressFunc) Option { return func(r *Renderer) { r.progress = fn } }

// Renderer runs tiled renders. It holds no per-render state and may be
// used for several renders at once.
type Renderer struct {
	workers   int
	tileWidth int
	progress  ProgressFunc
}

// NewRenderer returns a renderer with NumCPU workers and 40 px tiles unless
// overridden.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{tileWidth: DefaultTileWidth}
	for _, o := range opts {
		o(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.NumCPU()
	}
	return r
}

// RenderResult is self-describing: it carries the parameters it was made
// from. Image is nil when the render was cancelled.
type RenderResult struct {
	Params  RenderParams
	Image   *RawImage
	Elapsed time.Duration
	Stats   MarchStats
}

// Cancelled reports whether the render stopped before producing an image.
func (r *RenderResult) Cancelled() bool { return r.Image == nil }

// ElapsedMs is the wall-clock render time in milliseconds.
func (r *RenderResult) ElapsedMs() int64 { return r.Elapsed.Milliseconds() }

// AsyncResult is delivered by RenderAsync.
type AsyncResult struct {
	Result *RenderResult
	Err    error
}

// Render traces params over the whole raster. Progress runs from
// startProgress to startProgress+sumProgress. Cancelling ctx makes Render
// return a result without an image and a nil error; only invalid params
// produce an error.
func (r *Renderer) Render(ctx context.Context, params RenderParams, startProgress, sumProgress float64) (*RenderResult, error) {
	began := time.Now()
	p := params.Clone()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	tiles, err := PartitionTiles(p.Width, r.tileWidth)
	if err != nil {
		return nil, err
	}
	s := newScene(&p)

	prog := newProgress(ctx, r.progress, startProgress, sumProgress, len(tiles))
	bufs := make([]*tileBuffer, len(tiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, t := range tiles {
		i, t := i, t
		g.Go(func() error {
			b, err := s.renderTile(gctx, t)
			if err != nil {
				return err
			}
			bufs[i] = b
			prog.tileDone()
			return nil
		})
	}
	werr := g.Wait()
	cancelled := werr != nil || ctx.Err() != nil
	prog.finish(cancelled)

	res := &RenderResult{Params: p}
	if cancelled {
		res.Elapsed = time.Since(began)
		DebugLog("Render cancelled after %s", res.Elapsed)
		return res, nil
	}
	res.Image = assemble(p.Width, p.Height, s.direct, bufs)
	for _, b := range bufs {
		res.Stats.add(b.stats)
	}
	res.Elapsed = time.Since(began)
	DebugLog("Rendered %dx%d %s in %s using %d tiles: %s", p.Width, p.Height, p.Kernel, res.Elapsed, len(tiles), res.Stats)
	return res, nil
}

// RenderAsync runs Render on its own goroutine. The channel yields exactly
// one value and is then closed.
func (r *Renderer) RenderAsync(ctx context.Context, params RenderParams, startProgress, sumProgress float64) <-chan AsyncResult {
	out := make(chan AsyncResult, 1)
	p := params.Clone()
	go func() {
		defer close(out)
		res, err := r.Render(ctx, p, startProgress, sumProgress)
		out <- AsyncResult{Result: res, Err: err}
	}()
	return out
}
