package ProngRail

import (
	"github.com/paulmach/orb"

	"github.com/elliotttmiller/AuraGeom/Geom"
)

// FlatReferenceMap 在导轨面和等尺寸平面矩形之间双向搬运点和标架
// 这是近似展开：不做真实可展曲面展开，也不保持测地长度，
// 只在导轨面曲率较低时有效
type FlatReferenceMap struct {
	Rail *Geom.RuledSurface
	Flat *Geom.PlaneSurface
	// 展平域在平面局部坐标中的范围
	Bound orb.Bound
}

// 平面矩形按导轨面量得的宽度和中心曲线弧长建立，参数域与导轨面对应
func NewFlatReferenceMap(rg *RailGeometry) *FlatReferenceMap {
	flat := Geom.NewPlaneSurface(Geom.WorldPlane(), rg.FlatLength, rg.FlatWidth)
	return &FlatReferenceMap{
		Rail: rg.Rail,
		Flat: flat,
		Bound: orb.Bound{
			Min: orb.Point{0, -rg.FlatWidth / 2},
			Max: orb.Point{rg.FlatLength, rg.FlatWidth / 2},
		},
	}
}

// 曲面→平面：取最近参数和法向偏移，在平面同参数处还原
func (m *FlatReferenceMap) ToFlat(p Geom.Vector3) Geom.Vector3 {
	u, v := m.Rail.ClosestUV(p)
	base := m.Rail.PointAt(u, v)
	h := p.Sub(base).Dot(m.Rail.NormalAt(u, v))
	return m.Flat.PointAt(u, v).Add(m.Flat.NormalAt(u, v).Scale(h))
}

// 平面→曲面
func (m *FlatReferenceMap) ToCurved(p Geom.Vector3) Geom.Vector3 {
	u, v := m.Flat.ClosestUV(p)
	base := m.Flat.PointAt(u, v)
	h := p.Sub(base).Dot(m.Flat.NormalAt(u, v))
	return m.Rail.PointAt(u, v).Add(m.Rail.NormalAt(u, v).Scale(h))
}

// 展平域内的平面局部坐标，Y正侧为北
func (m *FlatReferenceMap) FlatXY(flatPoint Geom.Vector3) orb.Point {
	local := m.Flat.Plane.WorldToLocal(flatPoint)
	return orb.Point{local.X, local.Y}
}

// 标架搬运的差分步长
const frameMapEps = 1e-2

func (m *FlatReferenceMap) mapFrame(f Geom.Plane, mapPt func(Geom.Vector3) Geom.Vector3) Geom.Plane {
	origin := mapPt(f.Origin)
	px := mapPt(f.PointAt(frameMapEps, 0, 0))
	py := mapPt(f.PointAt(0, frameMapEps, 0))
	return Geom.PlaneFromFrame(origin, px.Sub(origin), py.Sub(origin))
}

// 把整个标架搬到平面域，轴向通过差分重建并正交化
func (m *FlatReferenceMap) ToFlatFrame(f Geom.Plane) Geom.Plane {
	return m.mapFrame(f, m.ToFlat)
}

// 把整个标架搬回曲面域
func (m *FlatReferenceMap) ToCurvedFrame(f Geom.Plane) Geom.Plane {
	return m.mapFrame(f, m.ToCurved)
}
