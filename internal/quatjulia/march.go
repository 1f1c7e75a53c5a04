package quatjulia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MarchState is the terminal state of a ray.
type MarchState uint8

const (
	MarchHit       MarchState = iota // estimate fell below MinRayDistance
	MarchDiverged                    // travelled past MaxDistance (or missed the bailout sphere)
	MarchExhausted                   // estimate stopped improving or steps ran out
)

func (s MarchState) String() string {
	switch s {
	case MarchHit:
		return "hit"
	case MarchDiverged:
		return "diverged"
	case MarchExhausted:
		return "exhausted"
	}
	return "unknown"
}

// MarchResult describes one marched ray.
type MarchResult struct {
	State       MarchState
	Steps       int
	Penetration float32 // 1 - Steps/MaxRaySteps, before stretching
	Point       mgl32.Vec3
	Distance    float32 // parameter along the ray at termination
	Rescues     int     // non-finite estimates replaced by 0
}

type marcher struct {
	dist     distanceFunc
	maxSteps int
	minDist  float32
	maxDist  float32
	divisor  float32
	clip     bool
	radius   float32
}

func newMarcher(p *RenderParams, dist distanceFunc) marcher {
	return marcher{
		dist:     dist,
		maxSteps: p.MaxRaySteps,
		minDist:  p.MinRayDistance,
		maxDist:  p.EffectiveMaxDistance(),
		divisor:  p.StepDivisor,
		clip:     p.Tracer == TracerSphere,
		radius:   p.Bailout,
	}
}

// March traces one ray in fractal-local space using the kernel and step
// controls in params.
func March(origin, dir mgl32.Vec3, params *RenderParams) MarchResult {
	m := newMarcher(params, params.Kernel.distance(params))
	return m.march(origin, dir)
}

func (m *marcher) result(state MarchState, steps int, p mgl32.Vec3, t float32, rescues int) MarchResult {
	return MarchResult{
		State:       state,
		Steps:       steps,
		Penetration: 1 - float32(steps)/float32(m.maxSteps),
		Point:       p,
		Distance:    t,
		Rescues:     rescues,
	}
}

func (m *marcher) march(origin, dir mgl32.Vec3) MarchResult {
	t, limit := float32(0), m.maxDist
	if m.clip {
		t0, t1, ok := intersectSphere(origin, dir, m.radius)
		if !ok {
			return m.result(MarchDiverged, 0, origin, 0, 0)
		}
		if t0 > 0 {
			t = t0
		}
		if t1 < limit {
			limit = t1
		}
		if t > limit {
			return m.result(MarchDiverged, 0, origin.Add(dir.Mul(t)), t, 0)
		}
	}
	p := origin.Add(dir.Mul(t))
	prev := math32.Inf(1)
	rescues := 0
	for steps := 0; steps < m.maxSteps; steps++ {
		d, rescued := m.dist(p)
		if rescued {
			rescues++
		}
		if d < m.minDist {
			return m.result(MarchHit, steps, p, t, rescues)
		}
		if d > prev {
			return m.result(MarchExhausted, steps, p, t, rescues)
		}
		t += d / m.divisor
		if t > limit {
			return m.result(MarchDiverged, steps+1, p, t, rescues)
		}
		p = origin.Add(dir.Mul(t))
		prev = d
	}
	return m.result(MarchExhausted, m.maxSteps, p, t, rescues)
}

// Stretch rescales a penetration value into [0,1] with the stretch bounds.
func (p *RenderParams) Stretch(penetration float32) float32 {
	if math32.IsNaN(penetration) {
		penetration = 0
	}
	v := (penetration - p.MinStretchDistance) / (p.MaxStretchDistance - p.MinStretchDistance)
	if math32.IsNaN(v) {
		return 0
	}
	return clamp01(v)
}

// PaletteIndex maps a penetration value to 0..PaletteSize-1.
func (p *RenderParams) PaletteIndex(penetration float32) int {
	i := int(p.Stretch(penetration) * float32(p.PaletteSize-1))
	if i < 0 {
		return 0
	}
	if i > p.PaletteSize-1 {
		return p.PaletteSize - 1
	}
	return i
}
