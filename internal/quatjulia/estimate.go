package quatjulia

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
)

type stretchRange struct {
	lo, hi float32
	hits   int
}

// EstimateStretch probes every stride-th pixel in each axis and returns the
// range of penetration values seen on hits, to be used as
// MinStretchDistance / MaxStretchDistance. With no hits all probed rays
// count. A single value is widened by 0.05 on each side within [0,1].
func EstimateStretch(ctx context.Context, params RenderParams, stride int) (lo, hi float32, err error) {
	if stride < 1 {
		return 0, 0, fmt.Errorf("%w: probe stride must be >= 1, got %d", ErrInvalidParams, stride)
	}
	p := params.Clone()
	// Stretch bounds are what is being estimated.
	p.MinStretchDistance, p.MaxStretchDistance = 0, 1
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	s := newScene(&p)

	rows := (p.Height + stride - 1) / stride
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}

	var wg sync.WaitGroup
	resCh := make(chan [2]stretchRange, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			hit := stretchRange{lo: math32.Inf(1), hi: math32.Inf(-1)}
			all := hit
			for r := wid; r < rows; r += workers {
				if ctx.Err() != nil {
					break
				}
				y := r * stride
				for x := 0; x < p.Width; x += stride {
					o, d := s.cam.ray(x, y)
					res := s.march.march(o, d)
					pen := res.Penetration
					if math32.IsNaN(pen) {
						pen = 0
					}
					all.add(pen)
					if res.State == MarchHit {
						hit.add(pen)
					}
				}
			}
			resCh <- [2]stretchRange{hit, all}
		}(w)
	}
	wg.Wait()
	close(resCh)
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	hit := stretchRange{lo: math32.Inf(1), hi: math32.Inf(-1)}
	all := hit
	for r := range resCh {
		hit.merge(r[0])
		all.merge(r[1])
	}
	use := hit
	if use.hits == 0 {
		use = all
	}
	lo, hi = use.lo, use.hi
	if lo == hi {
		lo = math32.Max(0, lo-0.05)
		hi = math32.Min(1, hi+0.05)
	}
	DebugLog("Estimated stretch [%g, %g] from %d hits, %d probes", lo, hi, hit.hits, all.hits)
	return lo, hi, nil
}

func (r *stretchRange) add(v float32) {
	r.lo = math32.Min(r.lo, v)
	r.hi = math32.Max(r.hi, v)
	r.hits++
}

func (r *stretchRange) merge(o stretchRange) {
	if o.hits == 0 {
		return
	}
	r.lo = math32.Min(r.lo, o.lo)
	r.hi = math32.Max(r.hi, o.hi)
	r.hits += o.hits
}
