package Geom

import "math"

// 三维向量，同时作为三维点使用
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	WorldX = Vector3{1, 0, 0}
	WorldY = Vector3{0, 1, 0}
	WorldZ = Vector3{0, 0, 1}
)

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// 叉积
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) DistanceTo(o Vector3) float64 {
	return v.Sub(o).Length()
}

// 归一化，零向量原样返回
func (v Vector3) Unit() Vector3 {
	l := v.Length()
	if l < 1e-12 {
		return v
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// 线性插值 t=0 返回v，t=1 返回o
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return Vector3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// 罗德里格斯公式：绕过原点的单位轴axis旋转angle弧度
func (v Vector3) RotateAroundAxis(axis Vector3, angle float64) Vector3 {
	k := axis.Unit()
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	term1 := v.Scale(cos)
	term2 := k.Cross(v).Scale(sin)
	term3 := k.Scale(k.Dot(v) * (1 - cos))
	return term1.Add(term2).Add(term3)
}

// 绕经过center的轴旋转
func (v Vector3) RotateAround(center, axis Vector3, angle float64) Vector3 {
	return v.Sub(center).RotateAroundAxis(axis, angle).Add(center)
}

// 两向量夹角，弧度 [0, π]
func AngleBetween(a, b Vector3) float64 {
	d := a.Unit().Dot(b.Unit())
	if d > 1 {
		d = 1
	}
	if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// 在以normal为法向的平面内，从a转到b的有向角，弧度 (-π, π]
func SignedAngle(a, b, normal Vector3) float64 {
	au := a.Unit()
	bu := b.Unit()
	return math.Atan2(au.Cross(bu).Dot(normal.Unit()), au.Dot(bu))
}

// 三点外接圆，返回圆心、半径和圆平面法向
// 三点共线时 ok=false
func Circumcircle(a, b, c Vector3) (center Vector3, radius float64, normal Vector3, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	n := ab.Cross(ac)
	nLen2 := n.Dot(n)
	if nLen2 < 1e-18 {
		return Vector3{}, 0, Vector3{}, false
	}
	// 圆心 = a + (|ac|²(n×ab) + |ab|²(ac×n)) / (2|n|²)
	t1 := n.Cross(ab).Scale(ac.Dot(ac))
	t2 := ac.Cross(n).Scale(ab.Dot(ab))
	offset := t1.Add(t2).Scale(1 / (2 * nLen2))
	center = a.Add(offset)
	radius = center.DistanceTo(a)
	return center, radius, n.Unit(), true
}
