package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Axis is a bitmask of rotation axes.
type Axis uint8

const (
	AxisX Axis = 1 << iota // pitch
	AxisY                  // yaw
	AxisZ                  // roll

	AxisNone Axis = 0
	AxisAll       = AxisX | AxisY | AxisZ
)

// Has reports whether every axis in o is set in a.
func (a Axis) Has(o Axis) bool {
	return a&o == o
}

// String returns the axis letters in x, y, z order, e.g. "xz".
func (a Axis) String() string {
	var sb strings.Builder
	if a.Has(AxisX) {
		sb.WriteByte('x')
	}
	if a.Has(AxisY) {
		sb.WriteByte('y')
	}
	if a.Has(AxisZ) {
		sb.WriteByte('z')
	}
	return sb.String()
}

// ParseAxis parses any combination of the letters x, y and z.
// The empty string selects no axis.
func ParseAxis(s string) (Axis, error) {
	var a Axis
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'x':
			a |= AxisX
		case 'y':
			a |= AxisY
		case 'z':
			a |= AxisZ
		default:
			return AxisNone, fmt.Errorf("invalid axis %q in %q", r, s)
		}
	}
	return a, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Default configuration values.
const (
	DefaultDensity   = 0.015
	DefaultHalfWidth = 1.32
	DefaultDistance  = 4.0
	DefaultScale     = 27.0
)

// MaxSamplesPerAxis bounds the face scan: a side is sampled at most
// MaxSamplesPerAxis times along each of u and v.
const MaxSamplesPerAxis = 2000

// DefaultSpeed is the per-tick rotation added to each active axis.
var DefaultSpeed = math3d.Angles{Pitch: 0.03, Yaw: 0.02, Roll: 0.01}

// Configuration errors returned by Config.Validate.
var (
	ErrInvalidDensity  = errors.New("sampling density must be a finite value > 0")
	ErrInvalidGeometry = errors.New("cube does not fit in front of the camera")
	ErrInvalidSpeed    = errors.New("rotation speeds must be finite")
	ErrInvalidScale    = errors.New("projection scale must be a finite value > 0")
)

// Config controls how the cube is drawn. A running animation never sees a
// config change; a new config means a new animation.
type Config struct {
	Wireframe       bool          `json:"wireframe"`       // draw edges only, no face fill
	Color           bool          `json:"color"`           // per-side colors instead of the inherited color
	Speed           math3d.Angles `json:"speed"`           // radians added per tick per axis
	Axes            Axis          `json:"axes"`            // axes that accumulate rotation
	BackfaceCulling bool          `json:"backfaceCulling"` // skip sides facing away from the camera
	Density         float64       `json:"density"`         // face sampling step; lower is denser
	Edges           bool          `json:"edges"`           // draw the 12-edge overlay

	HalfWidth float64 `json:"halfWidth"` // cube half width
	Distance  float64 `json:"distance"`  // camera distance along +Z
	Scale     float64 `json:"scale"`     // projection constant
}

// DefaultConfig returns the default configuration: filled monochrome faces,
// edges on, rotating about X and Y, no culling.
func DefaultConfig() Config {
	return Config{
		Speed:     DefaultSpeed,
		Axes:      AxisX | AxisY,
		Density:   DefaultDensity,
		Edges:     true,
		HalfWidth: DefaultHalfWidth,
		Distance:  DefaultDistance,
		Scale:     DefaultScale,
	}
}

// MinDensity returns the smallest density Validate accepts for the
// configured half width.
func (c Config) MinDensity() float64 {
	return 2 * c.HalfWidth / MaxSamplesPerAxis
}

// Validate rejects configurations that would never finish a face scan or
// could put geometry at or behind the camera plane.
func (c Config) Validate() error {
	if !(c.Density > 0) || math.IsInf(c.Density, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidDensity, c.Density)
	}
	if !(c.HalfWidth > 0) || math.IsInf(c.HalfWidth, 0) {
		return fmt.Errorf("%w: half width %v", ErrInvalidGeometry, c.HalfWidth)
	}
	// The farthest corner sits at h*sqrt(3) from the center in any rotation.
	if !(c.Distance > c.HalfWidth*math.Sqrt(3)) || math.IsInf(c.Distance, 0) {
		return fmt.Errorf("%w: distance %v must exceed %v", ErrInvalidGeometry, c.Distance, c.HalfWidth*math.Sqrt(3))
	}
	if c.Density < c.MinDensity() {
		return fmt.Errorf("%w: %v is below %v for half width %v", ErrInvalidDensity, c.Density, c.MinDensity(), c.HalfWidth)
	}
	if !c.Speed.IsFinite() {
		return fmt.Errorf("%w: got %+v", ErrInvalidSpeed, c.Speed)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, c.Scale)
	}
	return nil
}
