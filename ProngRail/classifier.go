// Package ProngRail 实现多宝石爪排构建：排列分类、导轨曲面、近似展开与爪位求解
package ProngRail

import (
	"fmt"
	"math"
)

// 宝石半径序列的排列类型
type Arrangement int

const (
	ArrangementBasic Arrangement = iota
	ArrangementTapered
	ArrangementList
)

func (a Arrangement) String() string {
	switch a {
	case ArrangementBasic:
		return "Basic"
	case ArrangementTapered:
		return "Tapered"
	case ArrangementList:
		return "List"
	}
	return fmt.Sprintf("Arrangement(%d)", int(a))
}

// 分类结果 + 两端虚拟宝石的半径
// 虚拟宝石只用于给末端爪一个合理的邻居尺寸，不会被渲染
type Classification struct {
	Arrangement      Arrangement `json:"arrangement"`
	DummyRadiusStart float64     `json:"dummyRadiusStart"`
	DummyRadiusEnd   float64     `json:"dummyRadiusEnd"`
	Delta            float64     `json:"delta"`
}

const (
	basicTolerance   = 1e-3
	taperedTolerance = 1e-2
)

// 对有序半径序列分类并合成两端虚拟半径
//   - 全部接近r[0]：Basic，两端都取r[0]
//   - 等差序列：Tapered，两端沿公差各外推一步
//   - 其余：List，两端取向内一位的真实邻居半径
//     （不规则序列里最能代表末端邻居尺寸的是相邻真实宝石，而不是外推值）
func ClassifyArrangement(radii []float64) (*Classification, error) {
	n := len(radii)
	if n < 1 {
		return nil, fmt.Errorf("classify needs at least 1 radius")
	}

	basic := true
	for _, r := range radii {
		if math.Abs(radii[0]-r) > basicTolerance {
			basic = false
			break
		}
	}
	if basic {
		return &Classification{
			Arrangement:      ArrangementBasic,
			DummyRadiusStart: radii[0],
			DummyRadiusEnd:   radii[0],
		}, nil
	}

	// basic为假时n≥2
	delta := (radii[0] - radii[n-1]) / float64(n-1)
	tapered := true
	for i := 0; i < n-1; i++ {
		if math.Abs((radii[i]-radii[i+1])-delta) > taperedTolerance {
			tapered = false
			break
		}
	}
	if tapered {
		// 向r[0]外侧、r[n-1]外侧各延续一步
		return &Classification{
			Arrangement:      ArrangementTapered,
			DummyRadiusStart: radii[0] + delta,
			DummyRadiusEnd:   radii[n-1] - delta,
			Delta:            delta,
		}, nil
	}

	return &Classification{
		Arrangement:      ArrangementList,
		DummyRadiusStart: radii[1],
		DummyRadiusEnd:   radii[n-2],
	}, nil
}
