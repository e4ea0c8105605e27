package Geom

import "math"

// 正交标架：原点 + 三个两两垂直的单位轴（右手系）
// 既作为平面也作为局部坐标系使用
type Plane struct {
	Origin Vector3 `json:"origin"`
	XAxis  Vector3 `json:"xAxis"`
	YAxis  Vector3 `json:"yAxis"`
	ZAxis  Vector3 `json:"zAxis"`
}

// 世界坐标系
func WorldPlane() Plane {
	return Plane{Origin: Vector3{}, XAxis: WorldX, YAxis: WorldY, ZAxis: WorldZ}
}

// 由法向构造平面，面内轴按固定规则选取，保证同一法向得到同一标架
func PlaneFromNormal(origin, normal Vector3) Plane {
	z := normal.Unit()
	ref := WorldZ
	if math.Abs(z.Dot(WorldZ)) > 0.999 {
		ref = WorldX
	}
	x := ref.Cross(z).Unit()
	y := z.Cross(x)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}
}

// 由原点和X/Y方向构造平面，Y会被正交化
func PlaneFromFrame(origin, xDir, yDir Vector3) Plane {
	x := xDir.Unit()
	y := yDir.Sub(x.Scale(yDir.Dot(x))).Unit()
	z := x.Cross(y)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}
}

// 局部坐标到世界坐标
func (p Plane) PointAt(u, v, w float64) Vector3 {
	return p.Origin.
		Add(p.XAxis.Scale(u)).
		Add(p.YAxis.Scale(v)).
		Add(p.ZAxis.Scale(w))
}

func (p Plane) LocalToWorld(local Vector3) Vector3 {
	return p.PointAt(local.X, local.Y, local.Z)
}

func (p Plane) WorldToLocal(world Vector3) Vector3 {
	d := world.Sub(p.Origin)
	return Vector3{X: d.Dot(p.XAxis), Y: d.Dot(p.YAxis), Z: d.Dot(p.ZAxis)}
}

// 仅旋转方向向量（不含平移）
func (p Plane) VectorToWorld(local Vector3) Vector3 {
	return p.XAxis.Scale(local.X).
		Add(p.YAxis.Scale(local.Y)).
		Add(p.ZAxis.Scale(local.Z))
}

func (p Plane) VectorToLocal(world Vector3) Vector3 {
	return Vector3{X: world.Dot(p.XAxis), Y: world.Dot(p.YAxis), Z: world.Dot(p.ZAxis)}
}

// 绕自身法向旋转，原点不变
func (p Plane) RotateAboutNormal(angle float64) Plane {
	return Plane{
		Origin: p.Origin,
		XAxis:  p.XAxis.RotateAroundAxis(p.ZAxis, angle),
		YAxis:  p.YAxis.RotateAroundAxis(p.ZAxis, angle),
		ZAxis:  p.ZAxis,
	}
}

// 绕经过自身原点的任意轴旋转
func (p Plane) RotateAboutAxis(axis Vector3, angle float64) Plane {
	return Plane{
		Origin: p.Origin,
		XAxis:  p.XAxis.RotateAroundAxis(axis, angle),
		YAxis:  p.YAxis.RotateAroundAxis(axis, angle),
		ZAxis:  p.ZAxis.RotateAroundAxis(axis, angle),
	}
}

// 平面到平面的刚体变换：把from局部坐标下的点搬到to局部坐标下
func RemapPoint(pt Vector3, from, to Plane) Vector3 {
	return to.LocalToWorld(from.WorldToLocal(pt))
}

// 平面到平面搬移整个标架
func RemapPlane(p Plane, from, to Plane) Plane {
	return Plane{
		Origin: RemapPoint(p.Origin, from, to),
		XAxis:  to.VectorToWorld(from.VectorToLocal(p.XAxis)),
		YAxis:  to.VectorToWorld(from.VectorToLocal(p.YAxis)),
		ZAxis:  to.VectorToWorld(from.VectorToLocal(p.ZAxis)),
	}
}

// 点到平面的有向距离，法向一侧为正
func (p Plane) DistanceTo(pt Vector3) float64 {
	return pt.Sub(p.Origin).Dot(p.ZAxis)
}
