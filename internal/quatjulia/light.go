package quatjulia

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType is point or directional.
type LightType uint8

const (
	LightPoint LightType = iota
	LightDirectional
)

// ReflectionModel picks the specular formulation.
type ReflectionModel uint8

const (
	Phong      ReflectionModel = iota // (R.V)^(shininess/4)
	BlinnPhong                        // (N.H)^shininess
)

// Combine decides how several lights add up.
type Combine uint8

const (
	CombineAverage Combine = iota
	CombineSum
)

// Light is a point or directional light. Colours are linear, powers scale
// them; point lights fall off with the squared distance.
type Light struct {
	Type          LightType
	Position      mgl32.Vec3
	Direction     mgl32.Vec3 // direction the light travels; directional only
	DiffuseColor  mgl32.Vec3
	DiffusePower  float32
	SpecularColor mgl32.Vec3
	SpecularPower float32
	Shininess     float32
	Model         ReflectionModel
}

// NewPointLight constructs a point light with white specular highlights.
func NewPointLight(pos, color mgl32.Vec3, diffusePower, specularPower, shininess float32, model ReflectionModel) (Light, error) {
	L := Light{
		Type:          LightPoint,
		Position:      pos,
		DiffuseColor:  color,
		DiffusePower:  diffusePower,
		SpecularColor: mgl32.Vec3{1, 1, 1},
		SpecularPower: specularPower,
		Shininess:     shininess,
		Model:         model,
	}
	if err := L.validate(); err != nil {
		return Light{}, err
	}
	DebugLog("Created point light %+v", L)
	return L, nil
}

// NewDirectionalLight constructs a light with a fixed direction and no falloff.
func NewDirectionalLight(dir, color mgl32.Vec3, diffusePower, specularPower, shininess float32, model ReflectionModel) (Light, error) {
	n, ok := normalize(dir)
	if !ok {
		return Light{}, errors.New("direction must be non-zero")
	}
	L := Light{
		Type:          LightDirectional,
		Direction:     n,
		DiffuseColor:  color,
		DiffusePower:  diffusePower,
		SpecularColor: mgl32.Vec3{1, 1, 1},
		SpecularPower: specularPower,
		Shininess:     shininess,
		Model:         model,
	}
	if err := L.validate(); err != nil {
		return Light{}, err
	}
	DebugLog("Created directional light %+v", L)
	return L, nil
}

func (l Light) validate() error {
	if l.Type > LightDirectional {
		return fmt.Errorf("unknown light type %d", l.Type)
	}
	if l.Model > BlinnPhong {
		return fmt.Errorf("unknown reflection model %d", l.Model)
	}
	if l.Type == LightDirectional && l.Direction.Len() == 0 {
		return errors.New("direction must be non-zero")
	}
	if l.Shininess < 0 {
		return fmt.Errorf("shininess must be >= 0, got %g", l.Shininess)
	}
	for _, c := range []float32{l.DiffuseColor[0], l.DiffuseColor[1], l.DiffuseColor[2], l.SpecularColor[0], l.SpecularColor[1], l.SpecularColor[2]} {
		if c < 0 || !isFinite(c) {
			return fmt.Errorf("colour channels must be finite and >= 0, got diffuse=%v specular=%v", l.DiffuseColor, l.SpecularColor)
		}
	}
	return nil
}

// transformed maps the light into the space described by M.
func (l Light) transformed(M mgl32.Mat4) Light {
	out := l
	if l.Type == LightPoint {
		out.Position = transformPoint(M, l.Position)
	} else if d, ok := normalize(transformDir(M, l.Direction)); ok {
		out.Direction = d
	}
	return out
}

// contribution returns the unclamped diffuse and specular terms of one light.
func (l *Light) contribution(point, normal, view mgl32.Vec3) (diff, spec mgl32.Vec3) {
	var L mgl32.Vec3
	att := float32(1)
	if l.Type == LightDirectional {
		L = l.Direction.Mul(-1)
	} else {
		toL := l.Position.Sub(point)
		d2 := toL.LenSqr()
		if d2 == 0 {
			return
		}
		L = toL.Mul(1 / math32.Sqrt(d2))
		att = 1 / d2
	}
	nl := normal.Dot(L)
	if nl <= 0 {
		return
	}
	diff = l.DiffuseColor.Mul(clamp01(nl) * l.DiffusePower * att)

	var s float32
	switch l.Model {
	case BlinnPhong:
		if H, ok := normalize(L.Add(view)); ok {
			s = math32.Pow(clamp01(normal.Dot(H)), l.Shininess)
		}
	default:
		R := reflect(L.Mul(-1), normal)
		s = math32.Pow(clamp01(R.Dot(view)), l.Shininess/4)
	}
	spec = l.SpecularColor.Mul(s * l.SpecularPower * att)
	return
}

// shadeRaw combines all lights without the final clamp.
func shadeRaw(point, normal, viewPos mgl32.Vec3, lights []Light, mode Combine) (diffuse, specular mgl32.Vec3) {
	if len(lights) == 0 {
		return
	}
	view, ok := normalize(viewPos.Sub(point))
	if !ok {
		view = normal
	}
	weight := float32(1)
	if mode == CombineAverage {
		weight = 1 / float32(len(lights))
	}
	for i := range lights {
		if lights[i].DiffusePower <= 0 {
			continue
		}
		d, s := lights[i].contribution(point, normal, view)
		diffuse = diffuse.Add(d.Mul(weight))
		specular = specular.Add(s.Mul(weight))
	}
	return
}

// Shade evaluates every light at point and returns diffuse and specular
// intensities clamped to [0,1] per channel.
func Shade(point, normal, viewPos mgl32.Vec3, lights []Light, mode Combine) (diffuse, specular mgl32.Vec3) {
	d, s := shadeRaw(point, normal, viewPos, lights, mode)
	return clampVec01(d), clampVec01(s)
}

// ParseReflectionModel accepts "phong" and "blinn-phong".
func ParseReflectionModel(s string) (ReflectionModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phong":
		return Phong, nil
	case "", "blinn", "blinn-phong", "blinnphong":
		return BlinnPhong, nil
	}
	return 0, fmt.Errorf("unknown reflection model %q", s)
}

// ParseCombine accepts "average" and "sum".
func ParseCombine(s string) (Combine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average", "avg":
		return CombineAverage, nil
	case "sum":
		return CombineSum, nil
	}
	return 0, fmt.Errorf("unknown light combination %q", s)
}
