package quatjulia

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type ViewCfg struct {
	FromX float32 `json:"fromX"`
	ToX   float32 `json:"toX"`
	FromY float32 `json:"fromY"`
	ToY   float32 `json:"toY"`
	FromZ float32 `json:"fromZ"`
	ToZ   float32 `json:"toZ"`
}

type LightCfg struct {
	Type          string     `json:"type"` // "point" or "directional"
	Position      mgl32.Vec3 `json:"position"`
	Direction     mgl32.Vec3 `json:"direction"`
	Color         mgl32.Vec3 `json:"color"`
	DiffusePower  float32    `json:"diffusePower"`
	SpecularColor mgl32.Vec3 `json:"specularColor"`
	SpecularPower float32    `json:"specularPower"`
	Shininess     float32    `json:"shininess"`
	Model         string     `json:"model,omitempty"`
}

type StopCfg struct {
	Pos   float32  `json:"pos"`
	Color [4]uint8 `json:"color"` // RGBA
}

type PaletteCfg struct {
	Size  int       `json:"size,omitempty"`
	Stops []StopCfg `json:"stops"`
}

type Config struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Antialias   int    `json:"antialias,omitempty"` // supersampling factor per axis
	Out         string `json:"out"`
	TileWidth   int    `json:"tileWidth,omitempty"`
	AutoStretch bool   `json:"autoStretch,omitempty"`
	ProbeStride int    `json:"probeStride,omitempty"`

	View           ViewCfg    `json:"view"`
	Iterations     int        `json:"iterations"`
	Bailout        float32    `json:"bailout"`
	MaxRaySteps    int        `json:"maxRaySteps"`
	MinRayDistance float32    `json:"minRayDistance"`
	MaxDistance    float32    `json:"maxDistance,omitempty"`
	StepDivisor    float32    `json:"stepDivisor,omitempty"`
	C              [4]float32 `json:"c"` // w, x, y, z
	Slice          float32    `json:"slice,omitempty"`
	Kernel         Kernel     `json:"kernel"`
	Transform      Transform  `json:"transform"`
	IFS            IFSParams  `json:"ifs"`

	MinStretch float32 `json:"minStretch"`
	MaxStretch float32 `json:"maxStretch"`

	AimToOrigin    bool       `json:"aimToOrigin,omitempty"`
	Lights         []LightCfg `json:"lights"`
	Combine        string     `json:"combine,omitempty"`
	NormalDistance float32    `json:"normalDistance,omitempty"`
	Normals        string     `json:"normals,omitempty"`
	Tracer         string     `json:"tracer,omitempty"`

	Palette      PaletteCfg `json:"palette"`
	SurfaceColor [4]uint8   `json:"surfaceColor"`
	Background   [4]uint8   `json:"background"`
	Ambient      float32    `json:"ambient"`
}

func rgba(c [4]uint8) color.NRGBA { return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]} }

// Build validates and constructs the runtime light.
func (lc LightCfg) Build() (Light, error) {
	model, err := ParseReflectionModel(lc.Model)
	if err != nil {
		return Light{}, err
	}
	var L Light
	switch strings.ToLower(lc.Type) {
	case "", "point":
		L, err = NewPointLight(lc.Position, lc.Color, lc.DiffusePower, lc.SpecularPower, lc.Shininess, model)
	case "directional":
		L, err = NewDirectionalLight(lc.Direction, lc.Color, lc.DiffusePower, lc.SpecularPower, lc.Shininess, model)
	default:
		return Light{}, fmt.Errorf("unknown light type %q", lc.Type)
	}
	if err != nil {
		return Light{}, err
	}
	if lc.SpecularColor != (mgl32.Vec3{}) {
		L.SpecularColor = lc.SpecularColor
	}
	return L, L.validate()
}

// Build constructs the palette; no stops means a grey ramp.
func (pc PaletteCfg) Build() (*Palette, error) {
	if len(pc.Stops) == 0 {
		return GrayPalette(pc.Size), nil
	}
	stops := make([]Stop, len(pc.Stops))
	for i, s := range pc.Stops {
		stops[i] = Stop{Pos: s.Pos, Color: rgba(s.Color)}
	}
	return NewPalette(pc.Size, stops...)
}

// ParseTracer accepts "march" and "sphere".
func ParseTracer(s string) (Tracer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "march":
		return TracerMarch, nil
	case "sphere":
		return TracerSphere, nil
	}
	return 0, fmt.Errorf("unknown tracer %q", s)
}

// ParseNormalMode accepts "auto", "fd" / "finite-difference" and "analytic".
func ParseNormalMode(s string) (NormalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return NormalsAuto, nil
	case "fd", "finite-difference":
		return NormalsFiniteDifference, nil
	case "analytic":
		return NormalsAnalytic, nil
	}
	return 0, fmt.Errorf("unknown normal mode %q", s)
}

// Params converts the file layout into RenderParams at the supersampled
// size. The result is validated.
func (cfg *Config) Params() (RenderParams, error) {
	p := RenderParams{
		Width:  cfg.Width * cfg.Antialias,
		Height: cfg.Height * cfg.Antialias,
		FromX:  cfg.View.FromX, ToX: cfg.View.ToX,
		FromY: cfg.View.FromY, ToY: cfg.View.ToY,
		FromZ: cfg.View.FromZ, ToZ: cfg.View.ToZ,
		Iterations:         cfg.Iterations,
		Bailout:            cfg.Bailout,
		MaxRaySteps:        cfg.MaxRaySteps,
		MinRayDistance:     cfg.MinRayDistance,
		MaxDistance:        cfg.MaxDistance,
		StepDivisor:        cfg.StepDivisor,
		C:                  mgl32.Quat{W: cfg.C[0], V: mgl32.Vec3{cfg.C[1], cfg.C[2], cfg.C[3]}},
		Slice:              cfg.Slice,
		Kernel:             cfg.Kernel,
		Transform:          cfg.Transform,
		IFS:                cfg.IFS,
		MinStretchDistance: cfg.MinStretch,
		MaxStretchDistance: cfg.MaxStretch,
		AimToOrigin:        cfg.AimToOrigin,
		NormalDistance:     cfg.NormalDistance,
		PaletteSize:        cfg.Palette.Size,
		SurfaceColor:       rgba(cfg.SurfaceColor),
		Background:         rgba(cfg.Background),
		Ambient:            cfg.Ambient,
	}
	var err error
	if p.Combine, err = ParseCombine(cfg.Combine); err != nil {
		return RenderParams{}, err
	}
	if p.Normals, err = ParseNormalMode(cfg.Normals); err != nil {
		return RenderParams{}, err
	}
	if p.Tracer, err = ParseTracer(cfg.Tracer); err != nil {
		return RenderParams{}, err
	}
	for i, lc := range cfg.Lights {
		L, err := lc.Build()
		if err != nil {
			return RenderParams{}, fmt.Errorf("light #%d: %w", i, err)
		}
		p.Lights = append(p.Lights, L)
	}
	if err := p.Validate(); err != nil {
		return RenderParams{}, err
	}
	return p, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: size=(%d, %d), aa=%d, kernel=%s, iterations=%d, lights=%d",
		path, cfg.Width, cfg.Height, cfg.Antialias, cfg.Kernel, cfg.Iterations, len(cfg.Lights))
	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults
	d := DefaultParams()
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Antialias <= 0 {
		cfg.Antialias = 1
	}
	if cfg.Out == "" {
		cfg.Out = DefaultOut
	}
	if cfg.TileWidth <= 0 {
		cfg.TileWidth = DefaultTileWidth
	}
	if cfg.ProbeStride <= 0 {
		cfg.ProbeStride = DefaultProbeStride
	}
	if cfg.View == (ViewCfg{}) {
		cfg.View = ViewCfg{FromX: d.FromX, ToX: d.ToX, FromY: d.FromY, ToY: d.ToY, FromZ: d.FromZ, ToZ: d.ToZ}
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.Bailout <= 0 {
		cfg.Bailout = DefaultBailout
	}
	if cfg.MaxRaySteps <= 0 {
		cfg.MaxRaySteps = DefaultMaxRaySteps
	}
	if cfg.MinRayDistance <= 0 {
		cfg.MinRayDistance = DefaultMinRayDistance
	}
	if cfg.StepDivisor <= 0 {
		cfg.StepDivisor = DefaultStepDivisor
	}
	if cfg.C == ([4]float32{}) {
		cfg.C = [4]float32{d.C.W, d.C.V[0], d.C.V[1], d.C.V[2]}
	}
	if cfg.IFS.Scale <= 0 {
		cfg.IFS.Scale = DefaultIFSScale
	}
	if cfg.MinStretch == 0 && cfg.MaxStretch == 0 {
		cfg.MaxStretch = 1
	}
	if cfg.NormalDistance <= 0 {
		cfg.NormalDistance = DefaultNormalDistance
	}
	if cfg.Palette.Size <= 0 {
		cfg.Palette.Size = DefaultPaletteSize
	}
	if cfg.SurfaceColor == ([4]uint8{}) {
		c := d.SurfaceColor
		cfg.SurfaceColor = [4]uint8{c.R, c.G, c.B, c.A}
	}
	if cfg.Background[3] == 0 {
		cfg.Background[3] = 255
	}
	if cfg.Ambient <= 0 {
		cfg.Ambient = DefaultAmbient
	}
	if len(cfg.Lights) == 0 {
		return nil, fmt.Errorf("config has no lights")
	}
	return &cfg, nil
}
