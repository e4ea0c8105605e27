package Geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevolveProfileCone(t *testing.T) {
	// 双极点轮廓：底尖-侧边-顶尖
	profile := []Vector3{{0, 0, -1}, {1, 0, 0}, {0, 0, 1}}
	m, err := RevolveProfile(profile, 8)
	require.NoError(t, err)

	// 2个极点 + 1圈8个顶点
	assert.Len(t, m.Vertices, 10)
	// 每段对极点生成8个三角形
	assert.Len(t, m.Faces, 16)

	for _, v := range m.Vertices {
		r := math.Hypot(v.X, v.Y)
		assert.LessOrEqual(t, r, 1+1e-9)
		assert.GreaterOrEqual(t, v.Z, -1-1e-9)
		assert.LessOrEqual(t, v.Z, 1+1e-9)
	}
}

func TestRevolveProfileQuadRing(t *testing.T) {
	profile := []Vector3{{1, 0, 0}, {1, 0, 2}}
	m, err := RevolveProfile(profile, 6)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 12)
	// 每个环段两个三角形
	assert.Len(t, m.Faces, 12)
}

func TestRevolveProfileDegenerate(t *testing.T) {
	_, err := RevolveProfile([]Vector3{{1, 0, 0}}, 8)
	assert.Error(t, err)
}

func TestMeshTransform(t *testing.T) {
	m := &Mesh{Vertices: []Vector3{{1, 0, 0}, {0, 1, 0}}}
	pl := WorldPlane()
	pl.Origin = Vector3{10, 0, 0}
	m.Transform(pl)
	assertVecInDelta(t, Vector3{11, 0, 0}, m.Vertices[0], 1e-12)
	assertVecInDelta(t, Vector3{10, 1, 0}, m.Vertices[1], 1e-12)
}

func TestMeshEdgesDeduped(t *testing.T) {
	m := &Mesh{
		Vertices: []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}, {1, 3, 2}},
	}
	// 两个三角形共享一条边，总棱数为5
	assert.Len(t, m.Edges(), 5)
}
