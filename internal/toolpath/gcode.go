package toolpath

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ironsheep/emboss-gcode/internal/profile"
)

// Format renders one instruction as a line of G-code using the machine's
// command strings.
func Format(ins Instruction, cmds profile.Commands) string {
	switch ins.Op {
	case OpMove:
		return fmt.Sprintf("G1 X%.2f Y%.2f Z%.2f F%.1f", ins.Pos.X(), ins.Pos.Y(), ins.Pos.Z(), ins.Feed)
	case OpStart:
		return cmds.Start
	case OpStop:
		return cmds.Stop
	case OpSetFlow:
		return fmt.Sprintf("%s S%.2f", cmds.SetFlow, ins.Flow)
	case OpComment:
		return "(" + ins.Text + ")"
	}
	return fmt.Sprintf("(unknown %v)", ins.Op)
}

// Writer writes G-code lines to an underlying io.Writer. Output is
// buffered; call Flush when done.
type Writer struct {
	w     *bufio.Writer
	cmds  profile.Commands
	lines int
}

// NewWriter returns a Writer that formats instructions with cmds.
func NewWriter(w io.Writer, cmds profile.Commands) *Writer {
	return &Writer{w: bufio.NewWriter(w), cmds: cmds}
}

// WriteLine writes a raw line verbatim.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.lines++
	return nil
}

// WriteInstruction formats and writes one instruction.
func (w *Writer) WriteInstruction(ins Instruction) error {
	return w.WriteLine(Format(ins, w.cmds))
}

// Lines reports how many lines have been written.
func (w *Writer) Lines() int { return w.lines }

// Flush writes any buffered lines to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }

// Render writes prefix, the program and suffix to out. check is called
// before the first instruction and then every checkEvery instructions; a
// non-nil result aborts rendering. It returns the number of lines written.
func Render(out io.Writer, p *Program, prefix, suffix []string, check func() error) (int, error) {
	if check == nil {
		check = func() error { return nil }
	}
	w := NewWriter(out, p.Machine.Commands)

	for _, line := range prefix {
		if err := w.WriteLine(line); err != nil {
			return w.Lines(), fmt.Errorf("write prefix: %w", err)
		}
	}

	n := 0
	for ins, err := range p.Instructions() {
		if err != nil {
			return w.Lines(), err
		}
		if n%checkEvery == 0 {
			if err := check(); err != nil {
				return w.Lines(), err
			}
		}
		n++
		if err := w.WriteInstruction(ins); err != nil {
			return w.Lines(), fmt.Errorf("write program: %w", err)
		}
	}

	for _, line := range suffix {
		if err := w.WriteLine(line); err != nil {
			return w.Lines(), fmt.Errorf("write suffix: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return w.Lines(), fmt.Errorf("flush: %w", err)
	}

	Logger().Info("program rendered",
		"layers", p.Layers, "segments", p.Segments,
		"instructions", n, "lines", w.Lines())
	return w.Lines(), nil
}

const checkEvery = 4096
