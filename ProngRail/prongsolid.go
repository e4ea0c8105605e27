package ProngRail

import (
	"fmt"
	"math"

	"github.com/elliotttmiller/AuraGeom/Geom"
)

// 旋转成型的圆周分段数
const prongMeshSegments = 24

// 单个爪实体：锥形网格 + 竖直参考线，求解返回后归调用方所有
type ProngSolid struct {
	PairIndex int        `json:"pairIndex"`
	Role      ProngRole  `json:"role"`
	Mesh      *Geom.Mesh `json:"-"`
	Guide     Geom.Line3 `json:"guide"`
}

// 二维轮廓点（XZ平面）
type profilePt struct {
	x, z float64
}

// 在爪位标架处放样锥体
// 底圆在 z=-depth 半径 pr(1+flare)，顶圆在 z=height+pr 半径 pr，
// 顶缘按百分比倒圆角，100%收紧到95%避免圆角半径与锥体半径相等的退化
func buildProngSolid(pl ProngPlacement, spec ProngPairSpec, height float64, params *SolveParams) (*ProngSolid, error) {
	pr := spec.ProngRadius
	rBottom := pr * (1 + params.FlarePercent/100)
	zBottom := -params.Depth
	zTop := height + pr

	filletPct := float64(params.FilletPercent)
	if filletPct >= 100 {
		filletPct = 95
	}
	fr := filletPct / 100 * pr

	profile := []profilePt{{0, zBottom}, {rBottom, zBottom}}
	profile = append(profile, topRimProfile(rBottom, zBottom, pr, zTop, fr)...)
	profile = append(profile, profilePt{0, zTop})

	pts := make([]Geom.Vector3, len(profile))
	for i, p := range profile {
		pts[i] = Geom.Vector3{X: p.x, Z: p.z}
	}
	mesh, err := Geom.RevolveProfile(pts, prongMeshSegments)
	if err != nil {
		return nil, fmt.Errorf("revolve prong profile: %v", err)
	}
	mesh.Transform(pl.Frame)

	return &ProngSolid{
		PairIndex: pl.PairIndex,
		Role:      pl.Role,
		Mesh:      mesh,
		Guide: Geom.Line3{
			From: pl.Frame.PointAt(0, 0, zBottom-1),
			To:   pl.Frame.PointAt(0, 0, zTop+1),
		},
	}, nil
}

// 顶缘轮廓：无圆角时只有角点，否则在侧母线与顶面之间插入切弧
func topRimProfile(rBottom, zBottom, pr, zTop, fr float64) []profilePt {
	if fr < 1e-9 {
		return []profilePt{{pr, zTop}}
	}

	// 角点处两条边：沿侧母线向下、沿顶面向轴
	e1x, e1z := rBottom-pr, zBottom-zTop
	e1len := math.Hypot(e1x, e1z)
	e1x, e1z = e1x/e1len, e1z/e1len
	e2x, e2z := -1.0, 0.0

	theta := math.Acos(e1x*e2x + e1z*e2z)
	d := fr / math.Tan(theta/2)
	// 切点不能越过母线或顶面的另一端
	maxD := 0.8 * math.Min(e1len, pr)
	if d > maxD {
		d = maxD
		fr = d * math.Tan(theta / 2)
	}

	t1x, t1z := pr+e1x*d, zTop+e1z*d
	t2x, t2z := pr+e2x*d, zTop+e2z*d
	bx, bz := e1x+e2x, e1z+e2z
	blen := math.Hypot(bx, bz)
	cx := pr + bx/blen*(fr/math.Sin(theta/2))
	cz := zTop + bz/blen*(fr/math.Sin(theta/2))

	a1 := math.Atan2(t1z-cz, t1x-cx)
	a2 := math.Atan2(t2z-cz, t2x-cx)
	// 走短弧
	sweep := a2 - a1
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	const arcSteps = 6
	out := make([]profilePt, 0, arcSteps+1)
	for k := 0; k <= arcSteps; k++ {
		a := a1 + sweep*float64(k)/arcSteps
		out = append(out, profilePt{cx + fr*math.Cos(a), cz + fr*math.Sin(a)})
	}
	return out
}
