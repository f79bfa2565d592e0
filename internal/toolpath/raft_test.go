package toolpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRate(t *testing.T) {
	tests := []struct {
		name        string
		lum, emboss float64
		want        float64
	}{
		{"white runs at base", 1, 0.4, 960},
		{"black runs at emboss factor", 0, 0.4, 384},
		{"mid grey", 0.5, 0.4, 672},
		{"factor one ignores image", 0, 1, 960},
		{"minimum factor", 0, 0.25, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FeedRate(960, tt.lum, tt.emboss), 1e-9)
		})
	}
}

func TestCirclePoints(t *testing.T) {
	for _, tc := range []struct{ r, w float64 }{{30, 0.5}, {10, 0.5}, {5.3, 0.4}, {85, 0.7}} {
		pts := CirclePoints(tc.r, tc.w)
		incr := 2 * tc.r / (math.Floor(2*tc.r/(4*tc.w)) + 1)

		require.NotEmpty(t, pts)
		assert.Equal(t, -tc.r, pts[0].X())
		assert.Equal(t, 0.0, pts[0].Y())
		assert.Equal(t, 1, len(pts)%2, "start point plus pairs")
		assert.LessOrEqual(t, pts[len(pts)-1].X(), tc.r+incr+1e-9)

		for i := 1; i+1 < len(pts); i += 2 {
			a, b := pts[i], pts[i+1]
			assert.Equal(t, a.X(), b.X(), "chord ends share x")
			assert.InDelta(t, 0, a.Y()+b.Y(), 1e-9, "chord ends mirror in y")
			assert.InDelta(t, incr, a.X()-pts[i-1].X(), 1e-9)
		}
		// Consecutive chords join at alternating ends.
		if len(pts) >= 5 {
			assert.GreaterOrEqual(t, pts[1].Y(), 0.0)
			assert.LessOrEqual(t, pts[2].Y(), 0.0)
			assert.LessOrEqual(t, pts[3].Y(), 0.0)
			assert.GreaterOrEqual(t, pts[4].Y(), 0.0)
		}
	}
}

func TestCirclePoints_Increment(t *testing.T) {
	// 60mm diameter at 0.5mm width gives 31 strokes.
	pts := CirclePoints(30, 0.5)
	assert.InDelta(t, -30+60.0/31, pts[1].X(), 1e-9)
}

func TestRaft(t *testing.T) {
	m := testMachine()
	pts := CirclePoints(25+RaftMargin, m.ExtrusionWidth)
	ins := collect(Raft(m, 25))

	perPass := len(pts) + 3
	require.Len(t, ins, 2*perPass)

	base := ins[:perPass]
	assert.Equal(t, SetFlow(600), base[0])
	assert.Equal(t, OpMove, base[1].Op)
	assert.True(t, base[1].Travel)
	assert.Equal(t, m.MoveRate, base[1].Feed)
	assert.InDelta(t, -30, base[1].Pos.X(), 1e-9)
	assert.InDelta(t, 0.7, base[1].Pos.Z(), 1e-9)
	assert.Equal(t, OpStart, base[2].Op)
	for _, i := range base[3 : perPass-1] {
		assert.Equal(t, OpMove, i.Op)
		assert.False(t, i.Travel)
		assert.InDelta(t, 720, i.Feed, 1e-9)
		assert.InDelta(t, 0.7, i.Pos.Z(), 1e-9)
	}
	assert.Equal(t, OpStop, base[perPass-1].Op)

	iface := ins[perPass:]
	assert.Equal(t, SetFlow(300), iface[0])
	// Interface pass runs perpendicular to the base pass.
	assert.InDelta(t, 0, iface[1].Pos.X(), 1e-9)
	assert.InDelta(t, -30, iface[1].Pos.Y(), 1e-9)
	assert.InDelta(t, 1.0, iface[1].Pos.Z(), 1e-9)
	assert.InDelta(t, pts[1].Y(), iface[3].Pos.X(), 1e-9)
	assert.InDelta(t, pts[1].X(), iface[3].Pos.Y(), 1e-9)
	assert.InDelta(t, 960, iface[3].Feed, 1e-9)
}

func TestRaft_DisabledPasses(t *testing.T) {
	m := testMachine()
	m.RaftInterface.CruiseHeight = 0
	ins := collect(Raft(m, 25))
	assert.Equal(t, 1, countOps(ins, OpSetFlow))
	assert.Equal(t, 1, countOps(ins, OpStart))

	m.RaftBase.CruiseHeight = -1
	assert.Empty(t, collect(Raft(m, 25)))
}

func TestFeedRate_EvaluationOrder(t *testing.T) {
	// Every 8-bit level must produce the same double as
	// base - base*((1-l)*(1-e)), so rendered F values are stable.
	for _, e := range []float64{0.25, 0.4, 0.6, 1} {
		for p := 0; p < 256; p++ {
			l := float64(p) / 256
			want := 960 - float64(960*((1-l)*(1-e)))
			if got := FeedRate(960, l, e); got != want {
				t.Fatalf("FeedRate(960, %v, %v) = %v, want %v", l, e, got, want)
			}
		}
	}
}
