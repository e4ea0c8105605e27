package Geom

import "math"

type Sphere struct {
	Center Vector3 `json:"center"`
	Radius float64 `json:"radius"`
}

// 三维空间中的圆：所在平面 + 半径，圆心为平面原点
type Circle3 struct {
	Plane  Plane   `json:"plane"`
	Radius float64 `json:"radius"`
}

// 按角度取圆上的点
func (c Circle3) PointAt(theta float64) Vector3 {
	return c.Plane.PointAt(c.Radius*math.Cos(theta), c.Radius*math.Sin(theta), 0)
}

// 两球面交圆
// 两球心距大于半径之和、小于半径之差或两球同心时无交，ok=false
func SphereSphereIntersection(a, b Sphere) (Circle3, bool) {
	d := a.Center.DistanceTo(b.Center)
	if d < 1e-12 {
		return Circle3{}, false
	}
	if d > a.Radius+b.Radius || d < math.Abs(a.Radius-b.Radius) {
		return Circle3{}, false
	}
	// 交圆平面到a球心的距离
	h := (d*d + a.Radius*a.Radius - b.Radius*b.Radius) / (2 * d)
	r2 := a.Radius*a.Radius - h*h
	if r2 < 0 {
		r2 = 0
	}
	axis := b.Center.Sub(a.Center).Unit()
	center := a.Center.Add(axis.Scale(h))
	return Circle3{
		Plane:  PlaneFromNormal(center, axis),
		Radius: math.Sqrt(r2),
	}, true
}
