package toolpath

import (
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ironsheep/emboss-gcode/internal/profile"
)

// spiralSegmentLength is the approximate chord length between spiral points.
const spiralSegmentLength = 2.0

// SpiralPoints returns an Archimedean spiral from the centre outwards with
// one extrusion width between turns, ending once the radius would exceed
// radius. The first point is always the origin.
func SpiralPoints(radius, extrusionWidth float64) []mgl64.Vec2 {
	points := []mgl64.Vec2{{0, 0}}

	theta := math.Pi / 2
	r := theta * extrusionWidth / (2 * math.Pi)
	for r <= radius {
		points = append(points, mgl64.Vec2{r * math.Cos(theta), r * math.Sin(theta)})
		// Step the angle so chords stay roughly the same length as the
		// spiral widens.
		theta += math.Atan(spiralSegmentLength / r)
		r = theta * extrusionWidth / (2 * math.Pi)
	}
	return points
}

// Base emits bottomLayers spiral floor layers above the raft. Even layers
// spiral inwards, odd layers outwards mirrored in Y, so the winding reverses
// from layer to layer.
func Base(m *profile.Machine, baseRadius float64, bottomLayers int) iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		if bottomLayers <= 0 {
			return
		}
		if !yield(Comment("Base")) {
			return
		}

		spiral := SpiralPoints(baseRadius+m.ExtrusionWidth, m.ExtrusionWidth)
		reversed := slices.Clone(spiral)
		slices.Reverse(reversed)
		Logger().Debug("base", "layers", bottomLayers, "points", len(spiral))

		for layer := 1; layer <= bottomLayers; layer++ {
			z := m.RaftInterface.CruiseHeight + m.LayerHeight*float64(layer)

			points := spiral
			// 0 - y, not -y: the origin must print as Y0.00, never Y-0.00.
			at := func(pt mgl64.Vec2) mgl64.Vec3 { return mgl64.Vec3{pt.X(), 0 - pt.Y(), z} }
			if layer%2 == 0 {
				points = reversed
				at = func(pt mgl64.Vec2) mgl64.Vec3 { return mgl64.Vec3{pt.X(), pt.Y(), z} }
			}
			if !emitPass(yield, points, at, m.MoveRate, m.FeedRate) {
				return
			}
		}
	}
}
