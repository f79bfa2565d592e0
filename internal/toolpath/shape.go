package toolpath

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ironsheep/emboss-gcode/internal/profile"
	"github.com/ironsheep/emboss-gcode/internal/solid"
)

// Sampler reports the luminance in [0, 1) for an angular segment of a layer.
type Sampler interface {
	Luminance(layer, segment int) (float64, error)
}

// wall computes coordinates on the surface of the solid.
type wall struct {
	m        *profile.Machine
	spec     *solid.Spec
	layers   int
	segments int
}

// at returns the point for segment seg of layer. In continuous mode z climbs
// one layer height per revolution.
func (w wall) at(layer, seg int) mgl64.Vec3 {
	r := solid.RadiusAt(layer, w.layers, w.spec)
	angle := 2 * math.Pi / float64(w.segments) * float64(seg)

	z := w.m.RaftInterface.CruiseHeight + float64(layer+w.spec.BottomLayers)*w.m.LayerHeight
	if w.spec.Continuous {
		z += w.m.LayerHeight * (float64(seg) / float64(w.segments))
	}
	return mgl64.Vec3{-math.Sin(angle) * r, math.Cos(angle) * r, z}
}

func (w wall) feed(lum float64) float64 {
	return FeedRate(w.m.FeedRate, lum, w.spec.EmbossFactor)
}

// Shape emits the embossed wall of the solid. Each layer starts at segment
// 0 and walks the remaining segments at a feed rate modulated by the
// sampled luminance, then steps to segment 0 of the next layer. Discrete
// mode toggles extrusion per layer and travels between layers; continuous
// mode extrudes the whole wall as one helix.
//
// A sampler error is yielded once and ends the sequence.
func Shape(m *profile.Machine, s *solid.Spec, sampler Sampler, layers, segments int) iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		w := wall{m: m, spec: s, layers: layers, segments: segments}
		name := displayName(s.Shape.Name())

		emit := func(ins Instruction) bool { return yield(ins, nil) }

		if !emit(Comment(name+" start")) || !emit(TravelTo(w.at(1, 0), m.MoveRate)) {
			return
		}
		if s.Continuous && !emit(Start()) {
			return
		}

		for layer := 1; layer < layers; layer++ {
			if layer%50 == 0 {
				Logger().Debug("shape progress", "layer", layer, "of", layers-1)
			}
			if !s.Continuous && !emit(Start()) {
				return
			}

			var lum float64
			for seg := 1; seg < segments; seg++ {
				var err error
				lum, err = sampler.Luminance(layer, seg)
				if err != nil {
					yield(Instruction{}, fmt.Errorf("layer %d segment %d: %w", layer, seg, err))
					return
				}
				if !emit(Move(w.at(layer, seg), w.feed(lum))) {
					return
				}
			}

			next := w.at(layer+1, 0)
			if s.Continuous {
				// lum holds the last segment of this layer.
				if !emit(Move(next, w.feed(lum))) {
					return
				}
				continue
			}
			if !emit(Stop()) || !emit(TravelTo(next, m.MoveRate)) {
				return
			}
		}

		if s.Continuous && !emit(Stop()) {
			return
		}
		emit(Comment(name + " end"))
	}
}

func displayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
