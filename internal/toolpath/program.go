package toolpath

import (
	"fmt"
	"iter"

	"github.com/ironsheep/emboss-gcode/internal/profile"
	"github.com/ironsheep/emboss-gcode/internal/solid"
)

// MinSegments is the fewest angular segments a program can be built with.
const MinSegments = 3

// Stage is one named section of a program.
type Stage struct {
	Name         string
	Instructions iter.Seq2[Instruction, error]
}

// Program is the complete toolpath for one embossed solid: raft, spiral base
// and wall, in that order. Its inputs are never modified, so the sequence it
// produces can be iterated any number of times with identical results.
type Program struct {
	Machine  *profile.Machine
	Solid    *solid.Spec
	Sampler  Sampler
	Layers   int
	Segments int
}

// NewProgram validates the solid against the machine and returns a program
// that samples luminance from sampler over the given number of angular
// segments.
func NewProgram(m *profile.Machine, s *solid.Spec, sampler Sampler, segments int) (*Program, error) {
	if m == nil {
		return nil, fmt.Errorf("machine profile is required")
	}
	if s == nil {
		return nil, fmt.Errorf("solid spec is required")
	}
	if sampler == nil {
		return nil, fmt.Errorf("luminance sampler is required")
	}
	if err := solid.Validate(s, m); err != nil {
		return nil, err
	}
	if segments < MinSegments {
		return nil, fmt.Errorf("segment count %d is below the minimum of %d", segments, MinSegments)
	}

	return &Program{
		Machine:  m,
		Solid:    s,
		Sampler:  sampler,
		Layers:   solid.LayerCount(s.Height, m.LayerHeight),
		Segments: segments,
	}, nil
}

// Stages returns the program's stages in execution order.
func (p *Program) Stages() []Stage {
	baseRadius := p.Solid.Shape.BaseRadius()
	return []Stage{
		{Name: "raft", Instructions: infallible(Raft(p.Machine, baseRadius))},
		{Name: "base", Instructions: infallible(Base(p.Machine, baseRadius, p.Solid.BottomLayers))},
		{Name: "shape", Instructions: Shape(p.Machine, p.Solid, p.Sampler, p.Layers, p.Segments)},
	}
}

// Instructions returns the whole program as one lazy sequence. The first
// error is yielded with a zero Instruction and ends the sequence.
func (p *Program) Instructions() iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		for _, stage := range p.Stages() {
			Logger().Debug("stage", "name", stage.Name)
			for ins, err := range stage.Instructions {
				if err != nil {
					yield(Instruction{}, fmt.Errorf("%s: %w", stage.Name, err))
					return
				}
				if !yield(ins, nil) {
					return
				}
			}
		}
	}
}

func infallible(seq iter.Seq[Instruction]) iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		for ins := range seq {
			if !yield(ins, nil) {
				return
			}
		}
	}
}
