package toolpath

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/emboss-gcode/internal/solid"
)

func TestFormat(t *testing.T) {
	cmds := testMachine().Commands
	tests := []struct {
		ins  Instruction
		want string
	}{
		{Move(mgl64.Vec3{1.234, -5.678, 0.2}, 960), "G1 X1.23 Y-5.68 Z0.20 F960.0"},
		{TravelTo(mgl64.Vec3{0, 25, 1.2}, 30000), "G1 X0.00 Y25.00 Z1.20 F30000.0"},
		{Move(mgl64.Vec3{10, 0, 0}, 671.99), "G1 X10.00 Y0.00 Z0.00 F672.0"},
		{Start(), "M101"},
		{Stop(), "M103"},
		{SetFlow(600), "M108 S600.00"},
		{Comment("Base"), "(Base)"},
	}
	for _, tt := range tests {
		t.Run(tt.ins.Op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.ins, cmds))
		})
	}
}

func TestRender(t *testing.T) {
	p := newTestProgram(t, &solid.Spec{Shape: solid.Cylinder{Radius: 25}, Height: 1, BottomLayers: 1, EmbossFactor: 0.4}, constant(1), 20)
	all, err := collect2(p.Instructions())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Render(&buf, p, []string{"G21", "G90"}, []string{"M0"}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, len(all)+3, n)
	assert.Len(t, lines, n)
	assert.Equal(t, []string{"G21", "G90"}, lines[:2])
	assert.Equal(t, "M108 S600.00", lines[2])
	assert.Equal(t, "M0", lines[n-1])
	assert.Equal(t, "(Cylinder end)", lines[n-2])
	assert.Contains(t, lines, "(Base)")
	assert.Contains(t, lines, "(Cylinder start)")
}

func TestRender_CheckAborts(t *testing.T) {
	p := newTestProgram(t, &solid.Spec{Shape: solid.Cylinder{Radius: 25}, Height: 40, EmbossFactor: 0.4}, constant(1), 20)

	var buf bytes.Buffer
	_, err := Render(&buf, p, nil, nil, func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_SamplerError(t *testing.T) {
	failing := lumFunc(func(layer, seg int) (float64, error) {
		return 0, assert.AnError
	})
	p := newTestProgram(t, &solid.Spec{Shape: solid.Cylinder{Radius: 25}, Height: 40, EmbossFactor: 0.4}, failing, 20)

	var buf bytes.Buffer
	_, err := Render(&buf, p, nil, nil, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
