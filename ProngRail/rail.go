package ProngRail

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/elliotttmiller/AuraGeom/Geom"
	"github.com/elliotttmiller/AuraGeom/GemSpatial"
)

// 腰棱到导轨边缘的固定净空
const railClearance = 1.0

// 反平行判定阈值：与180°相差2°以内
const antiParallel = 178.0 * math.Pi / 180.0

// 一次求解所属的导轨几何，每次求解整体重建
type RailGeometry struct {
	CenterCurve *Geom.Curve
	NorthCurve  *Geom.Curve
	SouthCurve  *Geom.Curve
	Rail        *Geom.RuledSurface
	// 参数域角点
	DomainCorner [2]orb.Point
	// 虚拟宝石中心：延伸后中心曲线的两个端点
	StartDummyCenter Geom.Vector3
	EndDummyCenter   Geom.Vector3
	// 展平参考面的尺寸
	FlatLength float64
	FlatWidth  float64
}

// 构建横跨全部宝石标架及两个虚拟端位的直纹导轨面并自动定向
func BuildRailGeometry(gems []*GemSpatial.GemRecord, cls *Classification, gap float64) (*RailGeometry, error) {
	n := len(gems)
	if n < 2 {
		return nil, fmt.Errorf("rail needs at least 2 gems, got %d", n)
	}

	ymax := 0.0
	for _, g := range gems {
		if g.Radius > ymax {
			ymax = g.Radius
		}
	}
	ymax += railClearance

	centers := make([]Geom.Vector3, n)
	norths := make([]Geom.Vector3, n)
	souths := make([]Geom.Vector3, n)
	for i, g := range gems {
		centers[i] = g.Center
		norths[i] = g.Frame.PointAt(0, ymax, 0)
		souths[i] = g.Frame.PointAt(0, -ymax, 0)
	}

	center, err := Geom.NewCurveThroughPoints(centers)
	if err != nil {
		return nil, fmt.Errorf("center curve: %v", err)
	}
	north, err := Geom.NewCurveThroughPoints(norths)
	if err != nil {
		return nil, fmt.Errorf("north curve: %v", err)
	}
	south, err := Geom.NewCurveThroughPoints(souths)
	if err != nil {
		return nil, fmt.Errorf("south curve: %v", err)
	}

	// 端部延伸量由虚拟半径、相邻真实半径和间隙决定
	startExt := cls.DummyRadiusStart + gems[0].Radius + gap
	endExt := cls.DummyRadiusEnd + gems[n-1].Radius + gap

	if center, err = center.ExtendBlended(startExt, endExt); err != nil {
		return nil, fmt.Errorf("extend center curve: %v", err)
	}
	if north, err = north.ExtendBlended(startExt, endExt); err != nil {
		return nil, fmt.Errorf("extend north curve: %v", err)
	}
	if south, err = south.ExtendBlended(startExt, endExt); err != nil {
		return nil, fmt.Errorf("extend south curve: %v", err)
	}

	// 反转并重新拟合南北两条导轨
	north = north.Reverse()
	south = south.Reverse()

	rail := Geom.NewRuledSurface(north, south)
	orientRail(rail, gems[0])

	return &RailGeometry{
		CenterCurve:      center,
		NorthCurve:       north,
		SouthCurve:       south,
		Rail:             rail,
		DomainCorner:     [2]orb.Point{{0, 0}, {1, 1}},
		StartDummyCenter: center.StartPoint(),
		EndDummyCenter:   center.EndPoint(),
		FlatLength:       center.Length(),
		FlatWidth:        north.EndPoint().DistanceTo(south.EndPoint()),
	}, nil
}

// 在离首颗宝石中心最近的参数处采样曲面标架
// 法向、U切向、V切向分别与宝石标架的Z/X/Y轴比对，接近反平行就翻转对应方向
// 保证下游爪位不会相对宝石镜像，与插值/放样的朝向噪声无关
func orientRail(rail *Geom.RuledSurface, first *GemSpatial.GemRecord) {
	u, v := rail.ClosestUV(first.Center)
	frame := rail.FrameAt(u, v)
	if Geom.AngleBetween(frame.ZAxis, first.Frame.ZAxis) > antiParallel {
		rail.FlipN = true
	}
	ut, vt := rail.Tangents(u, v)
	if Geom.AngleBetween(ut, first.Frame.XAxis) > antiParallel {
		rail.RevU = true
	}
	if Geom.AngleBetween(vt, first.Frame.YAxis) > antiParallel {
		rail.RevV = true
	}
}
