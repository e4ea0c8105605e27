// Package GemSpatial 负责宝石局部标架的捕捉、持久化文本编码与重建
// 宿主格式没有“命名局部坐标系”的概念，这里用六条半轴射线的面参数采样把标架烘焙到实体上
package GemSpatial

import (
	"errors"
	"fmt"

	"github.com/elliotttmiller/AuraGeom/Geom"
)

// 半轴射线长度默认值，必须大于实体尺寸
const DefaultRayLength = 100.0

var (
	// 某条半轴没有命中任何面，该宝石没有有效标架
	ErrNoFrame = errors.New("gem has no valid frame")
	// 持久化文本缺失或无法解析，按无标架处理而不是崩溃
	ErrFrameDataCorrupt = errors.New("frame data corrupt")
)

// 一个面参数采样：面索引 + 该面上的(u,v)
// 面索引只在实体拓扑不变时有效
type AxialSample struct {
	FaceIndex int     `json:"faceIndex"`
	U         float64 `json:"u"`
	V         float64 `json:"v"`
}

// 六个半轴采样 + 三个主尺寸
type FrameData struct {
	X1, X2 AxialSample // ±X
	Y1, Y2 AxialSample // ±Y
	Z1, Z2 AxialSample // ±Z
	Width  float64
	Length float64
	Depth  float64
}

type CaptureOptions struct {
	// 射线长度，0表示取默认值
	RayLength float64
	// 取最近交点而不是枚举顺序首个命中面
	// 枚举顺序是原始行为，只在每条半轴恰好穿过边界一次时正确
	NearestHit bool
}

var axisNames = []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

var axisDirections = []Geom.Vector3{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

// 沿世界原点的六条半轴扫描实体各面，得到六个面参数采样
func CaptureAxialFrame(solid *Geom.Solid, opts CaptureOptions) (*FrameData, error) {
	rayLen := opts.RayLength
	if rayLen <= 0 {
		rayLen = DefaultRayLength
	}

	var samples [6]AxialSample
	var points [6]Geom.Vector3
	for i, dir := range axisDirections {
		ray := Geom.NewRay(Geom.Vector3{}, dir, rayLen)
		var (
			faceIndex int
			u, v      float64
			ok        bool
		)
		if opts.NearestHit {
			faceIndex, u, v, ok = solid.NearestRayHit(ray)
		} else {
			faceIndex, u, v, ok = solid.FirstRayHit(ray)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no face intersects half axis %s", ErrNoFrame, axisNames[i])
		}
		samples[i] = AxialSample{FaceIndex: faceIndex, U: u, V: v}
		pt, err := solid.FacePoint(faceIndex, u, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
		}
		points[i] = pt
	}

	return &FrameData{
		X1: samples[0], X2: samples[1],
		Y1: samples[2], Y2: samples[3],
		Z1: samples[4], Z2: samples[5],
		Width:  points[0].DistanceTo(points[1]),
		Length: points[2].DistanceTo(points[3]),
		Depth:  points[4].DistanceTo(points[5]),
	}, nil
}
