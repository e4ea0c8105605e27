package ProngRail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliotttmiller/AuraGeom/Geom"
	"github.com/elliotttmiller/AuraGeom/GemSpatial"
)

// 世界平面上沿X排布的一排宝石
func makeRowGems(xs []float64, radius, crown, pavilion float64) []*GemSpatial.GemRecord {
	gems := make([]*GemSpatial.GemRecord, len(xs))
	for i, x := range xs {
		frame := Geom.WorldPlane()
		frame.Origin = Geom.Vector3{X: x}
		gems[i] = &GemSpatial.GemRecord{
			Frame:         frame,
			Radius:        radius,
			CrownHeight:   crown,
			PavilionDepth: pavilion,
			Center:        frame.Origin,
		}
	}
	return gems
}

func TestBuildRailGeometryStraightRow(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)
	cls, err := ClassifyArrangement([]float64{1.5, 1.5, 1.5})
	require.NoError(t, err)

	rg, err := BuildRailGeometry(gems, cls, 0)
	require.NoError(t, err)

	// 端部延伸 = 虚拟半径 + 相邻真实半径 + 间隙 = 3
	assertPt := func(want Geom.Vector3, got Geom.Vector3) {
		t.Helper()
		assert.InDelta(t, want.X, got.X, 1e-3)
		assert.InDelta(t, want.Y, got.Y, 1e-3)
		assert.InDelta(t, want.Z, got.Z, 1e-3)
	}
	assertPt(Geom.Vector3{X: -3}, rg.StartDummyCenter)
	assertPt(Geom.Vector3{X: 11}, rg.EndDummyCenter)
	assert.InDelta(t, 14, rg.FlatLength, 1e-3)

	// 导轨半宽 = 最大半径 + 净空
	assert.InDelta(t, 5, rg.FlatWidth, 1e-3)
}

func TestBuildRailGeometryOrientation(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)
	cls, err := ClassifyArrangement([]float64{1.5, 1.5, 1.5})
	require.NoError(t, err)

	rg, err := BuildRailGeometry(gems, cls, 0)
	require.NoError(t, err)

	// 自动定向后曲面标架与首颗宝石标架对齐
	u, v := rg.Rail.ClosestUV(gems[0].Center)
	frame := rg.Rail.FrameAt(u, v)
	assert.Greater(t, frame.ZAxis.Dot(gems[0].Frame.ZAxis), 0.99)
	ut, vt := rg.Rail.Tangents(u, v)
	assert.Greater(t, ut.Dot(gems[0].Frame.XAxis), 0.99)
	assert.Greater(t, vt.Dot(gems[0].Frame.YAxis), 0.99)
}

func TestBuildRailGeometryNeedsTwoGems(t *testing.T) {
	gems := makeRowGems([]float64{0}, 1.5, 1, 1.2)
	cls, err := ClassifyArrangement([]float64{1.5})
	require.NoError(t, err)
	_, err = BuildRailGeometry(gems, cls, 0)
	assert.Error(t, err)
}
