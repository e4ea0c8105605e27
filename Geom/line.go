package Geom

// 由两端点定义的线段/直线
type Line3 struct {
	From Vector3 `json:"from"`
	To   Vector3 `json:"to"`
}

func (l Line3) Direction() Vector3 {
	return l.To.Sub(l.From)
}

func (l Line3) Length() float64 {
	return l.Direction().Length()
}

// t=0 为From，t=1 为To，允许越界外推
func (l Line3) PointAt(t float64) Vector3 {
	return l.From.Add(l.Direction().Scale(t))
}

// 点在直线上的投影参数
func (l Line3) ClosestParam(p Vector3) float64 {
	d := l.Direction()
	dd := d.Dot(d)
	if dd < 1e-18 {
		return 0
	}
	return p.Sub(l.From).Dot(d) / dd
}

// 两条直线最近点参数 (ta, tb)
// 平行时返回 ta=0 及其在b上的投影参数
func (l Line3) ClosestParams(other Line3) (float64, float64) {
	d1 := l.Direction()
	d2 := other.Direction()
	r := l.From.Sub(other.From)

	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d2.Dot(d2)
	d := d1.Dot(r)
	e := d2.Dot(r)

	denom := a*c - b*b
	if denom < 1e-14 {
		// 近似平行
		return 0, other.ClosestParam(l.From)
	}
	ta := (b*e - c*d) / denom
	tb := (a*e - b*d) / denom
	return ta, tb
}

// 中点
func (l Line3) Mid() Vector3 {
	return l.From.Lerp(l.To, 0.5)
}
