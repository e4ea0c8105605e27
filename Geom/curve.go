package Geom

import (
	"fmt"
	"math"
)

// 每个插值段的细分采样数
const curveSegmentSteps = 32

// 弧长参数化的三维曲线，内部以密集折线表示
// 插值构造使用Catmull-Rom样条（三次），参数域统一为[0,1]
type Curve struct {
	samples []Vector3
	cum     []float64
	length  float64
}

// 过给定点列的三次插值曲线，至少2个点
func NewCurveThroughPoints(points []Vector3) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", len(points))
	}
	// 端点处镜像出虚拟控制点，得到自然的端部切向
	ext := make([]Vector3, 0, len(points)+2)
	ext = append(ext, points[0].Scale(2).Sub(points[1]))
	ext = append(ext, points...)
	n := len(points)
	ext = append(ext, points[n-1].Scale(2).Sub(points[n-2]))

	var samples []Vector3
	for i := 1; i < len(ext)-2; i++ {
		p0, p1, p2, p3 := ext[i-1], ext[i], ext[i+1], ext[i+2]
		for s := 0; s < curveSegmentSteps; s++ {
			t := float64(s) / float64(curveSegmentSteps)
			samples = append(samples, catmullRom(p0, p1, p2, p3, t))
		}
	}
	samples = append(samples, points[n-1])
	return NewCurveFromPolyline(samples)
}

// 直接以折线顶点构造曲线
func NewCurveFromPolyline(samples []Vector3) (*Curve, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("polyline needs at least 2 points, got %d", len(samples))
	}
	c := &Curve{samples: samples}
	c.cum = make([]float64, len(samples))
	for i := 1; i < len(samples); i++ {
		c.cum[i] = c.cum[i-1] + samples[i].DistanceTo(samples[i-1])
	}
	c.length = c.cum[len(samples)-1]
	if c.length < 1e-12 {
		return nil, fmt.Errorf("degenerate curve: zero length")
	}
	return c, nil
}

func catmullRom(p0, p1, p2, p3 Vector3, t float64) Vector3 {
	t2 := t * t
	t3 := t2 * t
	// 0.5 * (2p1 + (p2-p0)t + (2p0-5p1+4p2-p3)t² + (-p0+3p1-3p2+p3)t³)
	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}

func (c *Curve) Length() float64 {
	return c.length
}

func (c *Curve) StartPoint() Vector3 {
	return c.samples[0]
}

func (c *Curve) EndPoint() Vector3 {
	return c.samples[len(c.samples)-1]
}

// 按归一化弧长取点，t限制在[0,1]
func (c *Curve) PointAt(t float64) Vector3 {
	if t <= 0 {
		return c.samples[0]
	}
	if t >= 1 {
		return c.samples[len(c.samples)-1]
	}
	target := t * c.length
	lo, hi := 0, len(c.cum)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.cum[mid] <= target {
			lo = mid
		} else {
			hi = mid
		}
	}
	segLen := c.cum[hi] - c.cum[lo]
	if segLen < 1e-15 {
		return c.samples[lo]
	}
	f := (target - c.cum[lo]) / segLen
	return c.samples[lo].Lerp(c.samples[hi], f)
}

// 单位切向
func (c *Curve) TangentAt(t float64) Vector3 {
	const eps = 1e-4
	t0 := math.Max(0, t-eps)
	t1 := math.Min(1, t+eps)
	return c.PointAt(t1).Sub(c.PointAt(t0)).Unit()
}

// 最近点的归一化参数
func (c *Curve) ClosestParam(p Vector3) float64 {
	best := math.Inf(1)
	bestT := 0.0
	for i := 0; i < len(c.samples)-1; i++ {
		a := c.samples[i]
		b := c.samples[i+1]
		ab := b.Sub(a)
		dd := ab.Dot(ab)
		f := 0.0
		if dd > 1e-18 {
			f = p.Sub(a).Dot(ab) / dd
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}
		}
		q := a.Lerp(b, f)
		d := p.DistanceTo(q)
		if d < best {
			best = d
			bestT = (c.cum[i] + f*(c.cum[i+1]-c.cum[i])) / c.length
		}
	}
	return bestT
}

// 反转方向，返回新曲线
func (c *Curve) Reverse() *Curve {
	rev := make([]Vector3, len(c.samples))
	for i, s := range c.samples {
		rev[len(c.samples)-1-i] = s
	}
	out, _ := NewCurveFromPolyline(rev)
	return out
}

// 两端延伸：每端取直线延伸与保曲率圆弧延伸的平均，避免在衔接处出现折角
func (c *Curve) ExtendBlended(startLen, endLen float64) (*Curve, error) {
	samples := c.samples
	if endLen > 1e-9 {
		samples = append(append([]Vector3{}, samples...), blendedExtension(samples, endLen)...)
	}
	if startLen > 1e-9 {
		revIn := reversePts(samples)
		revIn = append(revIn, blendedExtension(revIn, startLen)...)
		samples = reversePts(revIn)
	}
	return NewCurveFromPolyline(samples)
}

func reversePts(pts []Vector3) []Vector3 {
	out := make([]Vector3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// 从折线末端向外延伸extLen，返回附加点（不含原末点）
func blendedExtension(samples []Vector3, extLen float64) []Vector3 {
	m := len(samples)
	end := samples[m-1]
	tangent := end.Sub(samples[m-2]).Unit()

	// 末端三个间隔点估计曲率圆
	i1 := m - 1 - 8
	if i1 < 0 {
		i1 = 0
	}
	i2 := (i1 + m - 1) / 2
	center, radius, normal, circOK := Circumcircle(samples[i1], samples[i2], end)
	// 过大的半径按直线处理
	if circOK && radius > 1e6 {
		circOK = false
	}
	sign := 1.0
	if circOK {
		if normal.Cross(end.Sub(center)).Dot(tangent) < 0 {
			sign = -1
		}
	}

	steps := int(math.Ceil(extLen/math.Max(stepSpacing(samples), 1e-6))) + 1
	if steps < 4 {
		steps = 4
	}
	out := make([]Vector3, 0, steps)
	for k := 1; k <= steps; k++ {
		s := extLen * float64(k) / float64(steps)
		linePt := end.Add(tangent.Scale(s))
		arcPt := linePt
		if circOK {
			arcPt = end.RotateAround(center, normal, sign*s/radius)
		}
		out = append(out, linePt.Lerp(arcPt, 0.5))
	}
	return out
}

func stepSpacing(samples []Vector3) float64 {
	total := 0.0
	for i := 1; i < len(samples); i++ {
		total += samples[i].DistanceTo(samples[i-1])
	}
	return total / float64(len(samples)-1)
}
