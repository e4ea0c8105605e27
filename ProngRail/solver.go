package ProngRail

import (
	"fmt"
	"math"

	"github.com/elliotttmiller/AuraGeom/Geom"
	"github.com/elliotttmiller/AuraGeom/GemSpatial"
)

// 爪在导轨两侧的角色，按展平域Y坐标符号划分
type ProngRole int

const (
	RoleNorth ProngRole = iota
	RoleSouth
)

func (r ProngRole) String() string {
	if r == RoleNorth {
		return "North"
	}
	return "South"
}

// 相邻宝石对（含两端虚拟对）的爪规格，共 gemCount+1 个
type ProngPairSpec struct {
	PairIndex   int     `json:"pairIndex"`
	RadiusA     float64 `json:"radiusA"`
	RadiusB     float64 `json:"radiusB"`
	ProngRadius float64 `json:"prongRadius"`
}

// 单个爪位：位置 + 完整标架
type ProngPlacement struct {
	PairIndex int          `json:"pairIndex"`
	Role      ProngRole    `json:"role"`
	Position  Geom.Vector3 `json:"position"`
	Frame     Geom.Plane   `json:"frame"`
}

// 有效半径：宝石半径按咬合比例缩进后加上爪半径
func effectiveRadius(gemRadius, prongRadius, overlap float64) float64 {
	return gemRadius - 2*prongRadius*overlap + prongRadius
}

// 逐对求解爪位
// 每对独立：球-球交圆为空或圆面交点数不为2都只跳过该对并记录诊断，
// 其余对照常继续
func solveProngPoints(
	rg *RailGeometry,
	fm *FlatReferenceMap,
	gems []*GemSpatial.GemRecord,
	pairs []ProngPairSpec,
	params *SolveParams,
) ([]ProngPlacement, []string) {
	n := len(gems)
	// 虚拟端点 + 真实中心 + 虚拟端点
	centers := make([]Geom.Vector3, 0, n+2)
	centers = append(centers, rg.StartDummyCenter)
	for _, g := range gems {
		centers = append(centers, g.Center)
	}
	centers = append(centers, rg.EndDummyCenter)

	overlap := params.OverlapPercent / 100
	tilt := params.TiltAngle * math.Pi / 180
	rotation := params.RotationAngle * math.Pi / 180

	var placements []ProngPlacement
	var diags []string
	for _, pair := range pairs {
		i := pair.PairIndex
		sa := Geom.Sphere{
			Center: centers[i],
			Radius: effectiveRadius(pair.RadiusA, pair.ProngRadius, overlap),
		}
		sb := Geom.Sphere{
			Center: centers[i+1],
			Radius: effectiveRadius(pair.RadiusB, pair.ProngRadius, overlap),
		}
		circle, ok := Geom.SphereSphereIntersection(sa, sb)
		if !ok {
			diags = append(diags, fmt.Sprintf("pair %d: sphere-sphere intersection is empty", i))
			continue
		}

		pts := intersectCircleWithSurface(circle, rg.Rail)
		if len(pts) != 2 {
			diags = append(diags, fmt.Sprintf("pair %d: circle/rail intersection yielded %d points, want 2", i, len(pts)))
			continue
		}

		for _, pt := range pts {
			flatPt := fm.ToFlat(pt)
			role := RoleSouth
			if fm.FlatXY(flatPt)[1] >= 0 {
				role = RoleNorth
			}

			// 展平域内的竖直标架
			frame := Geom.Plane{
				Origin: flatPt,
				XAxis:  fm.Flat.Plane.XAxis,
				YAxis:  fm.Flat.Plane.YAxis,
				ZAxis:  fm.Flat.Plane.ZAxis,
			}
			// 南北两侧倾斜方向相反，让两边的爪都压向宝石对
			tiltSign := 1.0
			if role == RoleSouth {
				tiltSign = -1
			}
			if tilt != 0 {
				frame = frame.RotateAboutAxis(frame.XAxis, tiltSign*tilt)
			}
			if rotation != 0 {
				frame = frame.RotateAboutAxis(frame.YAxis, rotation)
			}
			if params.FlipProngs {
				frame = frame.RotateAboutAxis(frame.ZAxis, math.Pi)
			}

			curved := fm.ToCurvedFrame(frame)
			placements = append(placements, ProngPlacement{
				PairIndex: i,
				Role:      role,
				Position:  curved.Origin,
				Frame:     curved,
			})
		}
	}
	return placements, diags
}

// 圆与曲面求交：沿圆周采样法向有向距离，符号变化处二分
const (
	circleSamples   = 256
	circleBisection = 40
	rootMergeTol    = 1e-4
)

func intersectCircleWithSurface(c Geom.Circle3, s Geom.Surface) []Geom.Vector3 {
	dist := func(theta float64) float64 {
		p := c.PointAt(theta)
		u, v := s.ClosestUV(p)
		return p.Sub(s.PointAt(u, v)).Dot(s.NormalAt(u, v))
	}

	f := make([]float64, circleSamples+1)
	for i := 0; i <= circleSamples; i++ {
		f[i] = dist(2 * math.Pi * float64(i) / circleSamples)
	}

	var roots []Geom.Vector3
	addRoot := func(theta float64) {
		p := c.PointAt(theta)
		for _, r := range roots {
			if r.DistanceTo(p) < rootMergeTol {
				return
			}
		}
		roots = append(roots, p)
	}

	step := 2 * math.Pi / circleSamples
	for i := 0; i < circleSamples; i++ {
		t0 := float64(i) * step
		if math.Abs(f[i]) < 1e-12 {
			addRoot(t0)
			continue
		}
		if f[i]*f[i+1] >= 0 {
			continue
		}
		lo, hi := t0, t0+step
		flo := f[i]
		for k := 0; k < circleBisection; k++ {
			mid := (lo + hi) / 2
			fm := dist(mid)
			if fm == 0 {
				lo, hi = mid, mid
				break
			}
			if (flo < 0) == (fm < 0) {
				lo = mid
				flo = fm
			} else {
				hi = mid
			}
		}
		addRoot((lo + hi) / 2)
	}
	return roots
}
