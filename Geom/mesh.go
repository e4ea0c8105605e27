package Geom

import (
	"fmt"
	"math"
)

// 三角网格
type Mesh struct {
	Vertices []Vector3
	Faces    [][3]int
}

// 把局部坐标网格按标架搬到世界坐标
func (m *Mesh) Transform(pl Plane) {
	for i, v := range m.Vertices {
		m.Vertices[i] = pl.LocalToWorld(v)
	}
}

// 去重后的棱边列表，用于线框导出
func (m *Mesh) Edges() []Line3 {
	seen := make(map[[2]int]bool)
	var out []Line3
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		k := [2]int{a, b}
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, Line3{From: m.Vertices[a], To: m.Vertices[b]})
	}
	for _, f := range m.Faces {
		add(f[0], f[1])
		add(f[1], f[2])
		add(f[2], f[0])
	}
	return out
}

// 将XZ平面内的轮廓线(x≥0)绕Z轴旋转成实体网格
// 轮廓首末点x≈0时收敛为极点，中间点生成整圈顶点
func RevolveProfile(profile []Vector3, segments int) (*Mesh, error) {
	if len(profile) < 2 {
		return nil, fmt.Errorf("revolve profile needs at least 2 points, got %d", len(profile))
	}
	if segments < 3 {
		segments = 3
	}
	const axisTol = 1e-9

	m := &Mesh{}
	// ringIndex[i] = 轮廓点i的首个顶点下标；极点只占一个顶点
	ringIndex := make([]int, len(profile))
	isPole := make([]bool, len(profile))
	for i, p := range profile {
		if p.X < axisTol {
			isPole[i] = true
			ringIndex[i] = len(m.Vertices)
			m.Vertices = append(m.Vertices, Vector3{0, 0, p.Z})
			continue
		}
		ringIndex[i] = len(m.Vertices)
		for s := 0; s < segments; s++ {
			th := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, Vector3{
				X: p.X * math.Cos(th),
				Y: p.X * math.Sin(th),
				Z: p.Z,
			})
		}
	}

	for i := 0; i < len(profile)-1; i++ {
		a, b := i, i+1
		switch {
		case isPole[a] && isPole[b]:
			// 轴上线段不产生面
		case isPole[a]:
			apex := ringIndex[a]
			for s := 0; s < segments; s++ {
				s2 := (s + 1) % segments
				m.Faces = append(m.Faces, [3]int{apex, ringIndex[b] + s, ringIndex[b] + s2})
			}
		case isPole[b]:
			apex := ringIndex[b]
			for s := 0; s < segments; s++ {
				s2 := (s + 1) % segments
				m.Faces = append(m.Faces, [3]int{ringIndex[a] + s, apex, ringIndex[a] + s2})
			}
		default:
			for s := 0; s < segments; s++ {
				s2 := (s + 1) % segments
				a0 := ringIndex[a] + s
				a1 := ringIndex[a] + s2
				b0 := ringIndex[b] + s
				b1 := ringIndex[b] + s2
				m.Faces = append(m.Faces, [3]int{a0, b0, b1}, [3]int{a0, b1, a1})
			}
		}
	}
	return m, nil
}
