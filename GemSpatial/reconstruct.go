package GemSpatial

import (
	"fmt"
	"math"

	"github.com/elliotttmiller/AuraGeom/Geom"
)

// 每次求解时从采样重建的只读宝石视图，不持久化、不复用
type GemRecord struct {
	Frame         Geom.Plane   `json:"frame"`
	Radius        float64      `json:"radius"`
	CrownHeight   float64      `json:"crownHeight"`
	PavilionDepth float64      `json:"pavilionDepth"`
	Center        Geom.Vector3 `json:"center"`
}

// 按采样求出六个三维点，顺序 x1,x2,y1,y2,z1,z2
func evaluateSamples(solid *Geom.Solid, data *FrameData) ([6]Geom.Vector3, error) {
	var pts [6]Geom.Vector3
	samples := []AxialSample{data.X1, data.X2, data.Y1, data.Y2, data.Z1, data.Z2}
	for i, s := range samples {
		p, err := solid.FacePoint(s.FaceIndex, s.U, s.V)
		if err != nil {
			// 面索引失效说明实体拓扑已变化，按数据损坏处理
			return pts, fmt.Errorf("%w: %v", ErrFrameDataCorrupt, err)
		}
		pts[i] = p
	}
	return pts, nil
}

// 由六个采样点重建正交标架
// 原点取X轴线与Y轴线最近点在X轴线上的参数（两线不严格相交时的近似）
// 法向为z1点方向，剩余的旋转自由度用y2点方向解出
func ReconstructFrame(solid *Geom.Solid, data *FrameData) (Geom.Plane, error) {
	pts, err := evaluateSamples(solid, data)
	if err != nil {
		return Geom.Plane{}, err
	}
	px1, px2 := pts[0], pts[1]
	py1, py2 := pts[2], pts[3]
	pz1 := pts[4]

	xLine := Geom.Line3{From: px1, To: px2}
	yLine := Geom.Line3{From: py1, To: py2}
	tx, _ := xLine.ClosestParams(yLine)
	origin := xLine.PointAt(tx)

	normal := pz1.Sub(origin)
	if normal.Length() < 1e-9 {
		return Geom.Plane{}, fmt.Errorf("%w: z1 sample coincides with origin", ErrFrameDataCorrupt)
	}
	plane := Geom.PlaneFromNormal(origin, normal)

	// 在平面内把默认的“上”方向转到 origin→y1 的方向上
	target := origin.Sub(py2)
	angle := Geom.SignedAngle(plane.YAxis, target, plane.ZAxis)
	return plane.RotateAboutNormal(angle), nil
}

// 主尺寸查询，与标架重建相互独立
func FrameSizes(solid *Geom.Solid, data *FrameData) (width, length, depth float64, err error) {
	pts, err := evaluateSamples(solid, data)
	if err != nil {
		return 0, 0, 0, err
	}
	return pts[0].DistanceTo(pts[1]), pts[2].DistanceTo(pts[3]), pts[4].DistanceTo(pts[5]), nil
}

// 从实体和采样派生完整的宝石记录
func DeriveGemRecord(solid *Geom.Solid, data *FrameData) (*GemRecord, error) {
	frame, err := ReconstructFrame(solid, data)
	if err != nil {
		return nil, err
	}
	pts, err := evaluateSamples(solid, data)
	if err != nil {
		return nil, err
	}
	width := pts[0].DistanceTo(pts[1])
	length := pts[2].DistanceTo(pts[3])

	crown := math.Abs(pts[4].Sub(frame.Origin).Dot(frame.ZAxis))
	pavilion := math.Abs(pts[5].Sub(frame.Origin).Dot(frame.ZAxis))

	return &GemRecord{
		Frame:         frame,
		Radius:        math.Max(width, length) / 2,
		CrownHeight:   crown,
		PavilionDepth: pavilion,
		Center:        frame.Origin,
	}, nil
}
