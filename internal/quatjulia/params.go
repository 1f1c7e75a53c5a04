package quatjulia

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParams is wrapped by every validation failure.
var ErrInvalidParams = errors.New("invalid render parameters")

// Tracer selects how rays are advanced.
type Tracer uint8

const (
	TracerMarch  Tracer = iota // plain distance-estimate march over the view depth
	TracerSphere               // march clipped to the bailout sphere first
)

// NormalMode selects the normal estimator.
type NormalMode uint8

const (
	NormalsAuto             NormalMode = iota // analytic for Crane, finite differences otherwise
	NormalsFiniteDifference                   // always central differences
	NormalsAnalytic                           // Jacobian rows; quadratic families only
)

// IFSParams drives the Sierpinski kernels.
type IFSParams struct {
	Scale         float32    `json:"scale,omitempty"`
	PreRotateDeg  mgl32.Vec3 `json:"preRotateDeg"`
	PostRotateDeg mgl32.Vec3 `json:"postRotateDeg"`
}

// RenderParams is the immutable input of one render. Use Clone before
// handing a value to another goroutine that may keep it.
type RenderParams struct {
	Width, Height int

	// View window in world space; rays start on the Z=FromZ plane.
	FromX, ToX float32
	FromY, ToY float32
	FromZ, ToZ float32

	Iterations int
	Bailout    float32

	MaxRaySteps    int
	MinRayDistance float32
	MaxDistance    float32 // 0 means ToZ-FromZ
	StepDivisor    float32

	C     mgl32.Quat
	Slice float32 // 4th component of every sampled point

	Kernel    Kernel
	Transform Transform
	IFS       IFSParams

	MinStretchDistance float32
	MaxStretchDistance float32

	AimToOrigin    bool
	Lights         []Light
	Combine        Combine
	NormalDistance float32
	Normals        NormalMode
	Tracer         Tracer

	PaletteSize int

	// Used only by kernels that emit colour directly.
	SurfaceColor color.NRGBA
	Background   color.NRGBA
	Ambient      float32
}

// DefaultParams returns a quadratic Julia set with one point light.
func DefaultParams() RenderParams {
	return RenderParams{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FromX:  -1.6, ToX: 1.6,
		FromY: -1.2, ToY: 1.2,
		FromZ: -3, ToZ: 3,
		Iterations:         DefaultIterations,
		Bailout:            DefaultBailout,
		MaxRaySteps:        DefaultMaxRaySteps,
		MinRayDistance:     DefaultMinRayDistance,
		StepDivisor:        DefaultStepDivisor,
		C:                  mgl32.Quat{W: -0.2, V: mgl32.Vec3{0.6, 0.2, 0.2}},
		Kernel:             KernelQuadratic,
		IFS:                IFSParams{Scale: DefaultIFSScale},
		MinStretchDistance: 0,
		MaxStretchDistance: 1,
		Lights: []Light{{
			Type:          LightPoint,
			Position:      mgl32.Vec3{2, 2, -3},
			DiffuseColor:  mgl32.Vec3{1, 1, 1},
			DiffusePower:  15,
			SpecularColor: mgl32.Vec3{1, 1, 1},
			SpecularPower: 8,
			Shininess:     32,
			Model:         BlinnPhong,
		}},
		Combine:        CombineAverage,
		NormalDistance: DefaultNormalDistance,
		PaletteSize:    DefaultPaletteSize,
		SurfaceColor:   color.NRGBA{R: 230, G: 180, B: 90, A: 255},
		Background:     color.NRGBA{A: 255},
		Ambient:        DefaultAmbient,
	}
}

// Clone returns a copy that shares no mutable state with p.
func (p RenderParams) Clone() RenderParams {
	c := p
	if p.Lights != nil {
		c.Lights = make([]Light, len(p.Lights))
		copy(c.Lights, p.Lights)
	}
	return c
}

// EffectiveMaxDistance resolves the 0 default.
func (p RenderParams) EffectiveMaxDistance() float32 {
	if p.MaxDistance > 0 {
		return p.MaxDistance
	}
	return p.ToZ - p.FromZ
}

// Validate rejects parameter sets that indicate a caller bug.
func (p RenderParams) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
	}
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return bad("image size must be positive, got %dx%d", p.Width, p.Height)
	case p.ToX == p.FromX || p.ToY == p.FromY:
		return bad("empty view window X=(%g,%g) Y=(%g,%g)", p.FromX, p.ToX, p.FromY, p.ToY)
	case p.Iterations < 1:
		return bad("iterations must be >= 1, got %d", p.Iterations)
	case !(p.Bailout > 0):
		return bad("bailout must be > 0, got %g", p.Bailout)
	case p.MaxRaySteps < 1:
		return bad("max ray steps must be >= 1, got %d", p.MaxRaySteps)
	case !(p.MinRayDistance > 0):
		return bad("min ray distance must be > 0, got %g", p.MinRayDistance)
	case !(p.StepDivisor > 0):
		return bad("step divisor must be > 0, got %g", p.StepDivisor)
	case !(p.EffectiveMaxDistance() > 0):
		return bad("max distance must be > 0, got %g", p.EffectiveMaxDistance())
	case p.MaxStretchDistance == p.MinStretchDistance:
		return bad("stretch bounds must differ, both are %g", p.MinStretchDistance)
	case !(p.NormalDistance > 0):
		return bad("normal distance must be > 0, got %g", p.NormalDistance)
	case p.PaletteSize < 1:
		return bad("palette size must be >= 1, got %d", p.PaletteSize)
	case !p.Kernel.Valid():
		return bad("unknown kernel %d", p.Kernel)
	case p.Kernel.IsIFS() && !(p.IFS.Scale > 1):
		return bad("IFS scale must be > 1, got %g", p.IFS.Scale)
	case p.Normals == NormalsAnalytic && !p.Kernel.HasAnalyticNormal():
		return bad("kernel %s has no analytic normal", p.Kernel)
	}
	if m := p.Transform.Matrix(); m.Det() == 0 {
		return bad("transform is singular")
	}
	for i, L := range p.Lights {
		if err := L.validate(); err != nil {
			return bad("light #%d: %v", i, err)
		}
	}
	return nil
}
