package Geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestParams(t *testing.T) {
	// 异面直线：a沿X轴，b沿Y轴抬高1
	a := Line3{From: Vector3{0, 0, 0}, To: Vector3{1, 0, 0}}
	b := Line3{From: Vector3{0.3, -1, 1}, To: Vector3{0.3, 1, 1}}

	ta, tb := a.ClosestParams(b)
	assert.InDelta(t, 0.3, ta, 1e-12)
	assert.InDelta(t, 0.5, tb, 1e-12)
	assert.InDelta(t, 1.0, a.PointAt(ta).DistanceTo(b.PointAt(tb)), 1e-12)
}

func TestClosestParamsParallel(t *testing.T) {
	a := Line3{From: Vector3{0, 0, 0}, To: Vector3{1, 0, 0}}
	b := Line3{From: Vector3{2, 1, 0}, To: Vector3{3, 1, 0}}
	ta, tb := a.ClosestParams(b)
	assert.InDelta(t, 0, ta, 1e-12)
	assert.InDelta(t, -2, tb, 1e-12)
}

func TestClosestParam(t *testing.T) {
	l := Line3{From: Vector3{0, 0, 0}, To: Vector3{10, 0, 0}}
	assert.InDelta(t, 0.5, l.ClosestParam(Vector3{5, 3, 0}), 1e-12)
	// 允许越界外推
	assert.InDelta(t, 1.5, l.ClosestParam(Vector3{15, 0, 0}), 1e-12)
}

func TestMid(t *testing.T) {
	l := Line3{From: Vector3{0, 0, 0}, To: Vector3{2, 4, 6}}
	assertVecInDelta(t, Vector3{1, 2, 3}, l.Mid(), 1e-12)
}
