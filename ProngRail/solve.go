package ProngRail

import (
	"fmt"
	"math"

	"github.com/elliotttmiller/AuraGeom/Geom"
	"github.com/elliotttmiller/AuraGeom/GemSpatial"
)

// 爪尺寸的给定方式
type Mode int

const (
	ModeBasic Mode = iota
	ModeTapered
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "Basic"
	case ModeTapered:
		return "Tapered"
	case ModeList:
		return "List"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// 输出过滤
type OutputFilter int

const (
	OutputProngsOnly OutputFilter = iota
	OutputProngsAndLines
	OutputLinesOnly
)

// 一次求解的全部输入参数，与触发重算的控件无关
// 角度单位为度
type SolveParams struct {
	Mode           Mode         `json:"mode"`
	ProngSize      float64      `json:"prongSize"`
	ProngSizeStart float64      `json:"prongSizeStart"`
	ProngSizeEnd   float64      `json:"prongSizeEnd"`
	ProngSizes     []float64    `json:"prongSizes"`
	HeightOffset   float64      `json:"heightOffset"`
	Depth          float64      `json:"depth"`
	TiltAngle      float64      `json:"tiltAngle"`
	RotationAngle  float64      `json:"rotationAngle"`
	FlarePercent   float64      `json:"flarePercent"`
	FilletPercent  int          `json:"filletPercent"`
	OverlapPercent float64      `json:"overlapPercent"`
	Gap            float64      `json:"gap"`
	FlipProngs     bool         `json:"flipProngs"`
	Output         OutputFilter `json:"output"`
}

// 一次求解的全部产物
// 每次调用完整重建，调用方负责丢弃上一次的结果
type SolveResult struct {
	Classification *Classification  `json:"classification"`
	Pairs          []ProngPairSpec  `json:"pairs"`
	Placements     []ProngPlacement `json:"placements"`
	Prongs         []*ProngSolid    `json:"-"`
	Guides         []Geom.Line3     `json:"guides"`
	Rail           *RailGeometry    `json:"-"`
	Diagnostics    []string         `json:"diagnostics"`
}

var validFillet = map[int]bool{0: true, 25: true, 50: true, 75: true, 100: true}

// 前置校验：任何一条不满足都在建几何之前整体中止，不留部分状态
func validateSolveInput(gems []*GemSpatial.GemRecord, params *SolveParams) error {
	if len(gems) < 2 {
		return fmt.Errorf("solve needs at least 2 gems, got %d", len(gems))
	}
	for i, g := range gems {
		if g == nil || g.Radius <= 0 {
			return fmt.Errorf("gem %d has no valid frame data", i)
		}
	}
	if params.OverlapPercent < 0 || params.OverlapPercent >= 50 {
		return fmt.Errorf("overlap percent %.2f out of range [0,50)", params.OverlapPercent)
	}
	if !validFillet[params.FilletPercent] {
		return fmt.Errorf("fillet percent %d not in {0,25,50,75,100}", params.FilletPercent)
	}
	switch params.Mode {
	case ModeBasic:
		if params.ProngSize <= 0 {
			return fmt.Errorf("prong size must be positive, got %g", params.ProngSize)
		}
	case ModeTapered:
		if params.ProngSizeStart <= 0 || params.ProngSizeEnd <= 0 {
			return fmt.Errorf("tapered prong sizes must be positive")
		}
	case ModeList:
		if len(params.ProngSizes) != len(gems)+1 {
			return fmt.Errorf("prong size list needs %d entries, got %d", len(gems)+1, len(params.ProngSizes))
		}
		for i, s := range params.ProngSizes {
			if s <= 0 {
				return fmt.Errorf("prong size %d must be positive, got %g", i, s)
			}
		}
	default:
		return fmt.Errorf("unknown mode %d", params.Mode)
	}
	return nil
}

// n颗宝石产生n+1个爪对规格，含两端虚拟对
func buildPairSpecs(gems []*GemSpatial.GemRecord, cls *Classification, params *SolveParams) []ProngPairSpec {
	n := len(gems)
	radii := make([]float64, 0, n+2)
	radii = append(radii, cls.DummyRadiusStart)
	for _, g := range gems {
		radii = append(radii, g.Radius)
	}
	radii = append(radii, cls.DummyRadiusEnd)

	pairs := make([]ProngPairSpec, n+1)
	for i := 0; i <= n; i++ {
		var pr float64
		switch params.Mode {
		case ModeTapered:
			pr = params.ProngSizeStart + (params.ProngSizeEnd-params.ProngSizeStart)*float64(i)/float64(n)
		case ModeList:
			pr = params.ProngSizes[i]
		default:
			pr = params.ProngSize
		}
		pairs[i] = ProngPairSpec{
			PairIndex:   i,
			RadiusA:     radii[i],
			RadiusB:     radii[i+1],
			ProngRadius: pr,
		}
	}
	return pairs
}

// 爪高取该对相邻真实宝石冠高的最大值
func pairHeight(gems []*GemSpatial.GemRecord, pairIndex int, offset float64) float64 {
	h := 0.0
	if pairIndex-1 >= 0 && pairIndex-1 < len(gems) {
		h = math.Max(h, gems[pairIndex-1].CrownHeight)
	}
	if pairIndex < len(gems) {
		h = math.Max(h, gems[pairIndex].CrownHeight)
	}
	return h + offset
}

// 完整求解管线：分类→导轨面→展平映射→爪位→爪实体
// 单线程同步执行，可在参数拖动下被高频重入，每次都是全量重建；
// 逐对失败只让该对少出爪，其余照常
func Solve(gems []*GemSpatial.GemRecord, params SolveParams) (*SolveResult, error) {
	if err := validateSolveInput(gems, &params); err != nil {
		return nil, err
	}

	radii := make([]float64, len(gems))
	for i, g := range gems {
		radii[i] = g.Radius
	}
	cls, err := ClassifyArrangement(radii)
	if err != nil {
		return nil, err
	}

	rg, err := BuildRailGeometry(gems, cls, params.Gap)
	if err != nil {
		return nil, err
	}
	fm := NewFlatReferenceMap(rg)

	pairs := buildPairSpecs(gems, cls, &params)
	placements, diags := solveProngPoints(rg, fm, gems, pairs, &params)

	result := &SolveResult{
		Classification: cls,
		Pairs:          pairs,
		Placements:     placements,
		Rail:           rg,
		Diagnostics:    diags,
	}

	for _, pl := range placements {
		spec := pairs[pl.PairIndex]
		height := pairHeight(gems, pl.PairIndex, params.HeightOffset)
		solid, err := buildProngSolid(pl, spec, height, &params)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics,
				fmt.Sprintf("pair %d %s: %v", pl.PairIndex, pl.Role, err))
			continue
		}
		if params.Output != OutputLinesOnly {
			result.Prongs = append(result.Prongs, solid)
		}
		if params.Output != OutputProngsOnly {
			result.Guides = append(result.Guides, solid.Guide)
		}
	}
	return result, nil
}
