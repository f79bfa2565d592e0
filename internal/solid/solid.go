// Package solid describes the solid of revolution being embossed and resolves
// its radius layer by layer.
package solid

import (
	"fmt"
	"math"

	"github.com/ironsheep/emboss-gcode/internal/profile"
)

const (
	// MinRadius is the smallest radius any shape may have, in mm.
	MinRadius = 5.00

	// MaxGlobeRadius caps the truncated sphere regardless of the machine.
	MaxGlobeRadius = 50.00

	// MaxBottomLayers is the thickest floor that may be requested.
	MaxBottomLayers = 10

	MinEmbossFactor = 0.25
	MaxEmbossFactor = 1.00

	// globeHeightRatio bounds height/2 relative to the globe radius. Beyond
	// it the overhang near the poles will not print.
	globeHeightRatio = 0.8
)

// Shape is one of Cylinder, Cone or Globe.
type Shape interface {
	// Name is the lower-case shape name used on the command line.
	Name() string

	// BaseRadius is the radius of the lowest layer; raft and base are
	// sized from it.
	BaseRadius() float64

	validate(s *Spec, m *profile.Machine) error
}

// Cylinder is a right circular cylinder.
type Cylinder struct {
	Radius float64
}

// Cone is a truncated cone narrowing towards the top.
type Cone struct {
	TopRadius    float64
	BottomRadius float64
}

// Globe is a sphere truncated top and bottom, centred on the object height.
type Globe struct {
	Radius float64
}

func (Cylinder) Name() string { return "cylinder" }
func (Cone) Name() string     { return "cone" }
func (Globe) Name() string    { return "globe" }

func (c Cylinder) BaseRadius() float64 { return c.Radius }
func (c Cone) BaseRadius() float64     { return c.BottomRadius }
func (g Globe) BaseRadius() float64    { return g.Radius }

// Spec is a validated description of the object to print.
type Spec struct {
	Shape Shape

	// Height of the embossed wall in mm.
	Height float64

	// BottomLayers is the number of spiral floor layers printed under the
	// wall. Zero means no floor.
	BottomLayers int

	// EmbossFactor is the feed-rate ratio applied at full black.
	EmbossFactor float64

	// Continuous selects helical Z motion with a single extrusion run.
	Continuous bool
}

// GeometryError reports a solid that cannot be printed on the machine.
type GeometryError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid %s (%.2f): %s", e.Field, e.Value, e.Reason)
}

// Validate checks s against the machine envelope. Nothing is
// generated for a spec that fails validation.
func Validate(s *Spec, m *profile.Machine) error {
	if s.Shape == nil {
		return &GeometryError{Field: "shape", Reason: "no shape selected"}
	}
	if s.Height <= 0 {
		return &GeometryError{Field: "height", Value: s.Height, Reason: "must be greater than zero"}
	}
	if s.Height > m.MaxHeight {
		return &GeometryError{Field: "height", Value: s.Height,
			Reason: fmt.Sprintf("must be no more than %.2f", m.MaxHeight)}
	}
	if s.BottomLayers < 0 {
		return &GeometryError{Field: "bottom layers", Value: float64(s.BottomLayers), Reason: "must not be negative"}
	}
	if s.BottomLayers > MaxBottomLayers {
		return &GeometryError{Field: "bottom layers", Value: float64(s.BottomLayers),
			Reason: fmt.Sprintf("must be no more than %d", MaxBottomLayers)}
	}
	if s.EmbossFactor < MinEmbossFactor || s.EmbossFactor > MaxEmbossFactor {
		return &GeometryError{Field: "emboss factor", Value: s.EmbossFactor,
			Reason: fmt.Sprintf("must be between %.2f and %.2f", MinEmbossFactor, MaxEmbossFactor)}
	}
	if LayerCount(s.Height, m.LayerHeight) < 1 {
		return &GeometryError{Field: "height", Value: s.Height,
			Reason: fmt.Sprintf("must be at least one layer (%.2f)", m.LayerHeight)}
	}
	return s.Shape.validate(s, m)
}

func checkRadius(field string, r float64, m *profile.Machine) error {
	if r < MinRadius || r > m.MaxRadius {
		return &GeometryError{Field: field, Value: r,
			Reason: fmt.Sprintf("must be between %.2f and %.2f", MinRadius, m.MaxRadius)}
	}
	return nil
}

func (c Cylinder) validate(_ *Spec, m *profile.Machine) error {
	return checkRadius("radius", c.Radius, m)
}

func (c Cone) validate(s *Spec, m *profile.Machine) error {
	if err := checkRadius("bottom radius", c.BottomRadius, m); err != nil {
		return err
	}
	if err := checkRadius("top radius", c.TopRadius, m); err != nil {
		return err
	}
	if c.TopRadius >= c.BottomRadius {
		return &GeometryError{Field: "top radius", Value: c.TopRadius,
			Reason: fmt.Sprintf("must be less than bottom radius %.2f", c.BottomRadius)}
	}
	// Wall angle is measured from horizontal; shallower than the machine
	// limit droops.
	if s.Height/(c.BottomRadius-c.TopRadius) < math.Tan(m.MaxOverhang*math.Pi/180) {
		angle := math.Atan(s.Height/(c.BottomRadius-c.TopRadius)) * 180 / math.Pi
		return &GeometryError{Field: "overhang angle", Value: angle,
			Reason: fmt.Sprintf("less than the minimum %.2f", m.MaxOverhang)}
	}
	return nil
}

func (g Globe) validate(s *Spec, _ *profile.Machine) error {
	if g.Radius <= MinRadius || g.Radius > MaxGlobeRadius {
		return &GeometryError{Field: "radius", Value: g.Radius,
			Reason: fmt.Sprintf("must be greater than %.2f and no more than %.2f", MinRadius, MaxGlobeRadius)}
	}
	if s.Height/2 > globeHeightRatio*g.Radius {
		return &GeometryError{Field: "height", Value: s.Height,
			Reason: fmt.Sprintf("too large for radius %.2f, maximum is %.2f", g.Radius, 2*globeHeightRatio*g.Radius)}
	}
	return nil
}

// LayerCount is the number of whole layers of the given height that fit in
// height. A small tolerance absorbs binary rounding such as 40/0.2.
func LayerCount(height, layerHeight float64) int {
	if layerHeight <= 0 {
		return 0
	}
	return int(math.Floor(height/layerHeight + 1e-9))
}

// RadiusAt returns the wall radius at a layer.
func RadiusAt(layer, layerCount int, s *Spec) float64 {
	frac := float64(layer) / float64(layerCount)
	switch sh := s.Shape.(type) {
	case Cylinder:
		return sh.Radius
	case Cone:
		return sh.BottomRadius - (sh.BottomRadius-sh.TopRadius)*frac
	case Globe:
		h := frac*s.Height - s.Height/2
		return math.Sqrt(math.Abs(sh.Radius*sh.Radius - h*h))
	}
	panic(fmt.Sprintf("solid: unknown shape %T", s.Shape))
}
