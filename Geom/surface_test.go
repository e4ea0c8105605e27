package Geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFlatRuled(t *testing.T) *RuledSurface {
	t.Helper()
	north, err := NewCurveFromPolyline([]Vector3{{0, 1, 0}, {10, 1, 0}})
	require.NoError(t, err)
	south, err := NewCurveFromPolyline([]Vector3{{0, -1, 0}, {10, -1, 0}})
	require.NoError(t, err)
	return NewRuledSurface(north, south)
}

func TestRuledSurfacePointAt(t *testing.T) {
	s := makeFlatRuled(t)
	assertVecInDelta(t, Vector3{0, 1, 0}, s.PointAt(0, 0), 1e-9)
	assertVecInDelta(t, Vector3{10, -1, 0}, s.PointAt(1, 1), 1e-9)
	assertVecInDelta(t, Vector3{5, 0, 0}, s.PointAt(0.5, 0.5), 1e-9)
}

func TestRuledSurfaceOrientationFlags(t *testing.T) {
	s := makeFlatRuled(t)

	// u沿+X，v从北到南即-Y，法向 = X×(-Y) = -Z
	n := s.NormalAt(0.5, 0.5)
	assert.InDelta(t, -1, n.Z, 1e-6)

	s.FlipN = true
	n = s.NormalAt(0.5, 0.5)
	assert.InDelta(t, 1, n.Z, 1e-6)

	p := s.PointAt(0.2, 0.5)
	s.RevU = true
	assertVecInDelta(t, p, s.PointAt(0.8, 0.5), 1e-9)
	s.RevU = false

	p = s.PointAt(0.5, 0.3)
	s.RevV = true
	assertVecInDelta(t, p, s.PointAt(0.5, 0.7), 1e-9)
}

func TestRuledSurfaceFrameOrthonormal(t *testing.T) {
	north, err := NewCurveThroughPoints([]Vector3{{0, 2, 0}, {4, 2, 1}, {8, 2, 0}})
	require.NoError(t, err)
	south, err := NewCurveThroughPoints([]Vector3{{0, -2, 0}, {4, -2, 1}, {8, -2, 0}})
	require.NoError(t, err)
	s := NewRuledSurface(north, south)

	for _, u := range []float64{0.1, 0.5, 0.9} {
		frame := s.FrameAt(u, 0.5)
		assert.InDelta(t, 1, frame.XAxis.Length(), 1e-6)
		assert.InDelta(t, 1, frame.YAxis.Length(), 1e-6)
		assert.InDelta(t, 1, frame.ZAxis.Length(), 1e-6)
		assert.InDelta(t, 0, frame.XAxis.Dot(frame.YAxis), 1e-6)
		assert.InDelta(t, 0, frame.XAxis.Dot(frame.ZAxis), 1e-6)
		assert.InDelta(t, 0, frame.YAxis.Dot(frame.ZAxis), 1e-6)
	}
}

func TestRuledSurfaceClosestUV(t *testing.T) {
	s := makeFlatRuled(t)
	u, v := s.ClosestUV(Vector3{3, 0, 0.2})
	assert.InDelta(t, 0.3, u, 1e-3)
	assert.InDelta(t, 0.5, v, 1e-3)
	// 域外点截断到边界
	u, _ = s.ClosestUV(Vector3{-5, 0, 0})
	assert.InDelta(t, 0, u, 1e-3)
}

func TestPlaneSurface(t *testing.T) {
	s := NewPlaneSurface(WorldPlane(), 10, 4)

	// v=0在-Y侧，v=1在+Y侧
	assertVecInDelta(t, Vector3{0, -2, 0}, s.PointAt(0, 0), 1e-12)
	assertVecInDelta(t, Vector3{10, 2, 0}, s.PointAt(1, 1), 1e-12)
	assertVecInDelta(t, Vector3{5, 0, 0}, s.PointAt(0.5, 0.5), 1e-12)
	assertVecInDelta(t, WorldZ, s.NormalAt(0.5, 0.5), 1e-12)

	u, v := s.ClosestUV(Vector3{7, 1, 3})
	assert.InDelta(t, 0.7, u, 1e-12)
	assert.InDelta(t, 0.75, v, 1e-12)

	assert.InDelta(t, 1, s.LocalY(Vector3{7, 1, 3}), 1e-12)
	assert.InDelta(t, -2, s.LocalY(Vector3{0, -2, 0}), 1e-12)
}

func TestPlaneSurfaceMatchesRuledDomain(t *testing.T) {
	// 平面参考面与定向后的平直直纹面在同参数处重合
	ruled := makeFlatRuled(t)
	ruled.RevV = true
	pl := PlaneFromFrame(Vector3{0, 0, 0}, WorldX, WorldY)
	flat := NewPlaneSurface(pl, 10, 2)
	for _, uv := range [][2]float64{{0, 0}, {0.25, 0.3}, {0.5, 0.5}, {1, 1}} {
		a := ruled.PointAt(uv[0], uv[1])
		b := flat.PointAt(uv[0], uv[1])
		assert.InDelta(t, 0, a.DistanceTo(b), 1e-9)
	}
}
