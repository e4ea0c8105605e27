package Geom

import "math"

// 参数曲面，参数域统一为[0,1]×[0,1]
type Surface interface {
	PointAt(u, v float64) Vector3
	NormalAt(u, v float64) Vector3
	// 曲面局部标架：X沿u向，Z为法向
	FrameAt(u, v float64) Plane
	// 最近点的参数
	ClosestUV(p Vector3) (float64, float64)
}

// 北/南两条导轨之间的直纹面
// v=0 在北轨，v=1 在南轨
// 三个翻转开关用于构面后的自动定向，不改变几何本身
type RuledSurface struct {
	North *Curve
	South *Curve
	FlipN bool
	RevU  bool
	RevV  bool
}

func NewRuledSurface(north, south *Curve) *RuledSurface {
	return &RuledSurface{North: north, South: south}
}

func (s *RuledSurface) mapUV(u, v float64) (float64, float64) {
	if s.RevU {
		u = 1 - u
	}
	if s.RevV {
		v = 1 - v
	}
	return u, v
}

func (s *RuledSurface) PointAt(u, v float64) Vector3 {
	u, v = s.mapUV(u, v)
	return s.North.PointAt(u).Lerp(s.South.PointAt(u), v)
}

func (s *RuledSurface) uTangent(u, v float64) Vector3 {
	const eps = 1e-4
	u0 := math.Max(0, u-eps)
	u1 := math.Min(1, u+eps)
	return s.PointAt(u1, v).Sub(s.PointAt(u0, v)).Unit()
}

func (s *RuledSurface) vTangent(u, v float64) Vector3 {
	const eps = 1e-4
	v0 := math.Max(0, v-eps)
	v1 := math.Min(1, v+eps)
	return s.PointAt(u, v1).Sub(s.PointAt(u, v0)).Unit()
}

// U向和V向单位切向
func (s *RuledSurface) Tangents(u, v float64) (Vector3, Vector3) {
	return s.uTangent(u, v), s.vTangent(u, v)
}

func (s *RuledSurface) NormalAt(u, v float64) Vector3 {
	ut, vt := s.Tangents(u, v)
	n := ut.Cross(vt).Unit()
	if s.FlipN {
		n = n.Neg()
	}
	return n
}

func (s *RuledSurface) FrameAt(u, v float64) Plane {
	origin := s.PointAt(u, v)
	x := s.uTangent(u, v)
	z := s.NormalAt(u, v)
	y := z.Cross(x)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}
}

// 先粗网格扫描再逐层收缩细化
func (s *RuledSurface) ClosestUV(p Vector3) (float64, float64) {
	bestU, bestV := 0.0, 0.0
	best := math.Inf(1)
	scan := func(u0, u1, v0, v1 float64, nu, nv int) {
		for i := 0; i <= nu; i++ {
			u := u0 + (u1-u0)*float64(i)/float64(nu)
			for j := 0; j <= nv; j++ {
				v := v0 + (v1-v0)*float64(j)/float64(nv)
				d := p.DistanceTo(s.PointAt(u, v))
				if d < best {
					best = d
					bestU, bestV = u, v
				}
			}
		}
	}
	scan(0, 1, 0, 1, 64, 16)
	du, dv := 1.0/64, 1.0/16
	for iter := 0; iter < 5; iter++ {
		u0 := math.Max(0, bestU-du)
		u1 := math.Min(1, bestU+du)
		v0 := math.Max(0, bestV-dv)
		v1 := math.Min(1, bestV+dv)
		scan(u0, u1, v0, v1, 8, 8)
		du /= 4
		dv /= 4
	}
	return bestU, bestV
}

// 平面矩形参考面
// u沿长度方向，v跨过宽度：v=0在局部-Y侧，v=1在局部+Y侧，
// 与定向后的直纹面参数域对应
type PlaneSurface struct {
	Plane  Plane
	Length float64
	Width  float64
}

func NewPlaneSurface(pl Plane, length, width float64) *PlaneSurface {
	return &PlaneSurface{Plane: pl, Length: length, Width: width}
}

func (s *PlaneSurface) PointAt(u, v float64) Vector3 {
	return s.Plane.PointAt(u*s.Length, (v-0.5)*s.Width, 0)
}

func (s *PlaneSurface) NormalAt(u, v float64) Vector3 {
	return s.Plane.ZAxis
}

func (s *PlaneSurface) FrameAt(u, v float64) Plane {
	return Plane{
		Origin: s.PointAt(u, v),
		XAxis:  s.Plane.XAxis,
		YAxis:  s.Plane.YAxis,
		ZAxis:  s.Plane.ZAxis,
	}
}

func (s *PlaneSurface) ClosestUV(p Vector3) (float64, float64) {
	local := s.Plane.WorldToLocal(p)
	u := local.X / s.Length
	v := 0.5 + local.Y/s.Width
	return clamp01(u), clamp01(v)
}

// 平面局部Y坐标，北侧为正
func (s *PlaneSurface) LocalY(p Vector3) float64 {
	return s.Plane.WorldToLocal(p).Y
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
