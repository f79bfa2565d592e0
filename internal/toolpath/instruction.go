package toolpath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Op identifies the kind of an Instruction.
type Op int

const (
	// OpMove is a linear move to Pos at Feed mm/min.
	OpMove Op = iota
	// OpStart turns extrusion on.
	OpStart
	// OpStop turns extrusion off.
	OpStop
	// OpSetFlow sets the extruder flow rate to Flow.
	OpSetFlow
	// OpComment is an annotation with no machine effect.
	OpComment
)

func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpSetFlow:
		return "set-flow"
	case OpComment:
		return "comment"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Instruction is one step of a toolpath program. Programs are ordered;
// emission order is execution order.
type Instruction struct {
	Op Op

	// Pos and Feed are set for OpMove.
	Pos  mgl64.Vec3
	Feed float64

	// Travel marks a move made with extrusion off at the machine move rate.
	Travel bool

	// Flow is set for OpSetFlow.
	Flow float64

	// Text is set for OpComment.
	Text string
}

// Move is an extruding move.
func Move(pos mgl64.Vec3, feed float64) Instruction {
	return Instruction{Op: OpMove, Pos: pos, Feed: feed}
}

// TravelTo is a non-extruding move.
func TravelTo(pos mgl64.Vec3, rate float64) Instruction {
	return Instruction{Op: OpMove, Pos: pos, Feed: rate, Travel: true}
}

// Start turns the extruder on.
func Start() Instruction { return Instruction{Op: OpStart} }

// Stop turns the extruder off.
func Stop() Instruction { return Instruction{Op: OpStop} }

// SetFlow sets the extruder flow rate for the moves that follow.
func SetFlow(rate float64) Instruction {
	return Instruction{Op: OpSetFlow, Flow: rate}
}

// Comment is a marker line with no machine effect.
func Comment(text string) Instruction {
	return Instruction{Op: OpComment, Text: text}
}
