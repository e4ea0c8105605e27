package Geom

import (
	"fmt"
	"math"
)

// 有限长射线，Direction为单位向量
type Ray struct {
	Origin    Vector3
	Direction Vector3
	Length    float64
}

func NewRay(origin, direction Vector3, length float64) Ray {
	return Ray{Origin: origin, Direction: direction.Unit(), Length: length}
}

// 实体的一张参数面，参数为面自身的局部参数（不归一化）
type Face interface {
	PointAt(u, v float64) Vector3
	ClosestUV(p Vector3) (u, v float64)
	// 射线与面的首个交点；切触（相交退化为切点/缝线）时返回交线起点
	RayIntersect(r Ray) (Vector3, bool)
}

// 由面列表组成的实体，面的枚举顺序即捕捉扫描顺序
// Placement为刚体位姿，面几何定义在局部坐标中
type Solid struct {
	Faces     []Face
	Placement Plane
}

func NewSolid(faces ...Face) *Solid {
	return &Solid{Faces: faces, Placement: WorldPlane()}
}

// 设置位姿（局部→世界）
func (s *Solid) SetPlacement(pl Plane) {
	s.Placement = pl
}

func (s *Solid) localRay(r Ray) Ray {
	return Ray{
		Origin:    s.Placement.WorldToLocal(r.Origin),
		Direction: s.Placement.VectorToLocal(r.Direction),
		Length:    r.Length,
	}
}

// 按面索引和参数求世界坐标点
func (s *Solid) FacePoint(faceIndex int, u, v float64) (Vector3, error) {
	if faceIndex < 0 || faceIndex >= len(s.Faces) {
		return Vector3{}, fmt.Errorf("face index %d out of range [0,%d)", faceIndex, len(s.Faces))
	}
	return s.Placement.LocalToWorld(s.Faces[faceIndex].PointAt(u, v)), nil
}

// 按面的枚举顺序找首个与射线相交的面，不按交点距离排序
// 仅当每条半轴只穿过实体边界一次时与最近交点一致
func (s *Solid) FirstRayHit(r Ray) (faceIndex int, u, v float64, ok bool) {
	lr := s.localRay(r)
	for i, f := range s.Faces {
		if p, hit := f.RayIntersect(lr); hit {
			u, v = f.ClosestUV(p)
			return i, u, v, true
		}
	}
	return 0, 0, 0, false
}

// 按交点距离取最近的面
func (s *Solid) NearestRayHit(r Ray) (faceIndex int, u, v float64, ok bool) {
	lr := s.localRay(r)
	best := math.Inf(1)
	for i, f := range s.Faces {
		p, hit := f.RayIntersect(lr)
		if !hit {
			continue
		}
		d := p.DistanceTo(lr.Origin)
		if d < best {
			best = d
			u, v = f.ClosestUV(p)
			faceIndex = i
			ok = true
		}
	}
	return faceIndex, u, v, ok
}

// 有界平面矩形面，参数(u,v)即平面局部坐标
type PlaneFace struct {
	Plane                  Plane
	UMin, UMax, VMin, VMax float64
}

func (f *PlaneFace) PointAt(u, v float64) Vector3 {
	return f.Plane.PointAt(u, v, 0)
}

func (f *PlaneFace) ClosestUV(p Vector3) (float64, float64) {
	local := f.Plane.WorldToLocal(p)
	return clampRange(local.X, f.UMin, f.UMax), clampRange(local.Y, f.VMin, f.VMax)
}

func (f *PlaneFace) contains(u, v float64) bool {
	const tol = 1e-9
	return u >= f.UMin-tol && u <= f.UMax+tol && v >= f.VMin-tol && v <= f.VMax+tol
}

func (f *PlaneFace) RayIntersect(r Ray) (Vector3, bool) {
	denom := r.Direction.Dot(f.Plane.ZAxis)
	dist := f.Plane.DistanceTo(r.Origin)
	if math.Abs(denom) < 1e-12 {
		// 射线落在面内：交线为射线被矩形裁剪的一段，取其起点
		if math.Abs(dist) > 1e-9 {
			return Vector3{}, false
		}
		return f.inPlaneEntry(r)
	}
	t := -dist / denom
	if t < 0 || t > r.Length {
		return Vector3{}, false
	}
	p := r.Origin.Add(r.Direction.Scale(t))
	local := f.Plane.WorldToLocal(p)
	if !f.contains(local.X, local.Y) {
		return Vector3{}, false
	}
	return p, true
}

// 面内射线与矩形域的进入点
func (f *PlaneFace) inPlaneEntry(r Ray) (Vector3, bool) {
	o := f.Plane.WorldToLocal(r.Origin)
	d := f.Plane.VectorToLocal(r.Direction)
	tMin, tMax := 0.0, r.Length
	for _, ax := range [][3]float64{{o.X, d.X, 0}, {o.Y, d.Y, 1}} {
		lo, hi := f.UMin, f.UMax
		if ax[2] == 1 {
			lo, hi = f.VMin, f.VMax
		}
		if math.Abs(ax[1]) < 1e-14 {
			if ax[0] < lo || ax[0] > hi {
				return Vector3{}, false
			}
			continue
		}
		t1 := (lo - ax[0]) / ax[1]
		t2 := (hi - ax[0]) / ax[1]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}
	if tMin > tMax {
		return Vector3{}, false
	}
	return r.Origin.Add(r.Direction.Scale(tMin)), true
}

// 绕局部Z轴的圆柱侧面，u为角度[0,2π)，v为高度
type CylinderFace struct {
	Radius float64
	ZMin   float64
	ZMax   float64
}

func (f *CylinderFace) PointAt(u, v float64) Vector3 {
	return Vector3{X: f.Radius * math.Cos(u), Y: f.Radius * math.Sin(u), Z: v}
}

func (f *CylinderFace) ClosestUV(p Vector3) (float64, float64) {
	u := math.Atan2(p.Y, p.X)
	if u < 0 {
		u += 2 * math.Pi
	}
	return u, clampRange(p.Z, f.ZMin, f.ZMax)
}

func (f *CylinderFace) RayIntersect(r Ray) (Vector3, bool) {
	o := r.Origin
	d := r.Direction
	a := d.X*d.X + d.Y*d.Y
	if a < 1e-14 {
		// 与轴平行，不与侧面相交
		return Vector3{}, false
	}
	b := 2 * (o.X*d.X + o.Y*d.Y)
	c := o.X*o.X + o.Y*o.Y - f.Radius*f.Radius
	disc := b*b - 4*a*c
	const tol = 1e-10
	if disc < -tol {
		return Vector3{}, false
	}
	var roots []float64
	if disc < tol {
		// 切触：单点即交线起点
		roots = []float64{-b / (2 * a)}
	} else {
		sq := math.Sqrt(disc)
		roots = []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
	}
	for _, t := range roots {
		if t < 0 || t > r.Length {
			continue
		}
		p := o.Add(d.Scale(t))
		if p.Z >= f.ZMin-1e-9 && p.Z <= f.ZMax+1e-9 {
			return p, true
		}
	}
	return Vector3{}, false
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// 以局部原点为中心的长方体实体，面顺序 +X,-X,+Y,-Y,+Z,-Z
func NewBoxSolid(width, length, depth float64) *Solid {
	w, l, d := width/2, length/2, depth/2
	face := func(origin, x, y Vector3, uh, vh float64) *PlaneFace {
		return &PlaneFace{
			Plane: PlaneFromFrame(origin, x, y),
			UMin:  -uh, UMax: uh, VMin: -vh, VMax: vh,
		}
	}
	return NewSolid(
		face(Vector3{w, 0, 0}, WorldY, WorldZ, l, d),
		face(Vector3{-w, 0, 0}, WorldZ, WorldY, d, l),
		face(Vector3{0, l, 0}, WorldZ, WorldX, d, w),
		face(Vector3{0, -l, 0}, WorldX, WorldZ, w, d),
		face(Vector3{0, 0, d}, WorldX, WorldY, w, l),
		face(Vector3{0, 0, -d}, WorldY, WorldX, l, w),
	)
}

// 圆形宝石的代理实体：腰棱圆柱带 + 冠部台面 + 亭部底面
// 面顺序：0 腰柱面，1 冠面(+Z)，2 亭面(-Z)
func NewGemSolid(girdleRadius, crownHeight, pavilionDepth float64) *Solid {
	crown := &PlaneFace{
		Plane: PlaneFromFrame(Vector3{0, 0, crownHeight}, WorldX, WorldY),
		UMin:  -girdleRadius, UMax: girdleRadius,
		VMin: -girdleRadius, VMax: girdleRadius,
	}
	pavilion := &PlaneFace{
		Plane: PlaneFromFrame(Vector3{0, 0, -pavilionDepth}, WorldY, WorldX),
		UMin:  -girdleRadius, UMax: girdleRadius,
		VMin: -girdleRadius, VMax: girdleRadius,
	}
	girdle := &CylinderFace{Radius: girdleRadius, ZMin: -pavilionDepth, ZMax: crownHeight}
	return NewSolid(girdle, crown, pavilion)
}
