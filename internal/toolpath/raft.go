package toolpath

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ironsheep/emboss-gcode/internal/profile"
)

// RaftMargin extends the raft beyond the base of the object, in mm.
const RaftMargin = 5.00

// CirclePoints returns a zigzag raster covering a disc of the given radius.
//
// The sweep starts at (-radius, 0) and steps X by an increment that divides
// the diameter evenly into strokes no coarser than four extrusion widths. At
// each step both ends of the chord are appended, upper then lower on one
// step and lower then upper on the next, so consecutive chords join at
// alternating ends. The last X may overshoot radius by up to one increment.
func CirclePoints(radius, extrusionWidth float64) []mgl64.Vec2 {
	points := []mgl64.Vec2{{-radius, 0}}

	incr := (2 * radius) / (math.Floor((2*radius)/(4*extrusionWidth)) + 1)

	x := -radius
	direction := 1.0
	for x <= radius {
		x += incr
		y := math.Sqrt(math.Abs(radius*radius - x*x))

		points = append(points, mgl64.Vec2{x, y * direction}, mgl64.Vec2{x, -y * direction})
		direction = -direction
	}
	return points
}

// Raft emits the base and interface raft passes under an object whose
// lowest layer has the given radius. Each pass is emitted only when its
// cruise height is positive. The interface pass runs perpendicular to the
// base pass by swapping X and Y.
func Raft(m *profile.Machine, baseRadius float64) iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		points := CirclePoints(baseRadius+RaftMargin, m.ExtrusionWidth)

		passes := []struct {
			name string
			pass profile.RaftPass
			swap bool
		}{
			{"base", m.RaftBase, false},
			{"interface", m.RaftInterface, true},
		}
		for _, p := range passes {
			if !p.pass.Enabled() {
				Logger().Debug("raft pass skipped", "pass", p.name)
				continue
			}
			Logger().Debug("raft pass", "pass", p.name, "points", len(points), "z", p.pass.CruiseHeight)

			if !yield(SetFlow(m.FlowRate * p.pass.FlowMultiplier)) {
				return
			}
			z := p.pass.CruiseHeight
			feed := m.FeedRate * p.pass.FeedMultiplier
			at := func(pt mgl64.Vec2) mgl64.Vec3 {
				if p.swap {
					return mgl64.Vec3{pt.Y(), pt.X(), z}
				}
				return mgl64.Vec3{pt.X(), pt.Y(), z}
			}
			if !emitPass(yield, points, at, m.MoveRate, feed) {
				return
			}
		}
	}
}

// emitPass travels to the first point, then extrudes through the rest. It
// reports false once yield asks to stop.
func emitPass(yield func(Instruction) bool, points []mgl64.Vec2, at func(mgl64.Vec2) mgl64.Vec3, moveRate, feed float64) bool {
	if !yield(TravelTo(at(points[0]), moveRate)) || !yield(Start()) {
		return false
	}
	for _, pt := range points[1:] {
		if !yield(Move(at(pt), feed)) {
			return false
		}
	}
	return yield(Stop())
}
