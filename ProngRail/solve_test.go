package ProngRail

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicParams() SolveParams {
	return SolveParams{
		Mode:           ModeBasic,
		ProngSize:      0.8,
		HeightOffset:   0.5,
		Depth:          1,
		OverlapPercent: 10,
		FilletPercent:  50,
		Output:         OutputProngsAndLines,
	}
}

func TestValidateSolveInput(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)

	_, err := Solve(gems[:1], basicParams())
	assert.Error(t, err, "至少2颗")

	p := basicParams()
	p.OverlapPercent = 50
	_, err = Solve(gems, p)
	assert.Error(t, err, "咬合比例越界")

	p = basicParams()
	p.FilletPercent = 30
	_, err = Solve(gems, p)
	assert.Error(t, err, "圆角档位非法")

	p = basicParams()
	p.ProngSize = 0
	_, err = Solve(gems, p)
	assert.Error(t, err, "爪径非正")

	p = basicParams()
	p.Mode = ModeList
	p.ProngSizes = []float64{0.8, 0.8}
	_, err = Solve(gems, p)
	assert.Error(t, err, "List模式需要n+1个爪径")

	p = basicParams()
	p.Mode = ModeTapered
	p.ProngSizeStart = 0.8
	p.ProngSizeEnd = -1
	_, err = Solve(gems, p)
	assert.Error(t, err)
}

func TestBuildPairSpecs(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)
	cls, err := ClassifyArrangement([]float64{1.5, 1.5, 1.5})
	require.NoError(t, err)

	p := basicParams()
	p.Mode = ModeTapered
	p.ProngSizeStart = 1
	p.ProngSizeEnd = 0.4
	pairs := buildPairSpecs(gems, cls, &p)
	require.Len(t, pairs, 4)
	assert.InDelta(t, 1, pairs[0].ProngRadius, 1e-12)
	assert.InDelta(t, 0.8, pairs[1].ProngRadius, 1e-12)
	assert.InDelta(t, 0.6, pairs[2].ProngRadius, 1e-12)
	assert.InDelta(t, 0.4, pairs[3].ProngRadius, 1e-12)
}

func TestEffectiveRadius(t *testing.T) {
	// r - 2·pr·overlap + pr
	assert.InDelta(t, 1.98, effectiveRadius(1.5, 0.8, 0.2), 1e-12)
	assert.InDelta(t, 2.3, effectiveRadius(1.5, 0.8, 0), 1e-12)
}

func TestSolveBasicRow(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)
	result, err := Solve(gems, basicParams())
	require.NoError(t, err)

	assert.Equal(t, ArrangementBasic, result.Classification.Arrangement)
	require.Len(t, result.Pairs, 4)
	require.Len(t, result.Placements, 8)
	assert.Len(t, result.Prongs, 8)
	assert.Len(t, result.Guides, 8)
	assert.Empty(t, result.Diagnostics)

	// 每对一北一南
	byPair := map[int][]ProngPlacement{}
	for _, pl := range result.Placements {
		byPair[pl.PairIndex] = append(byPair[pl.PairIndex], pl)
	}
	for i := 0; i < 4; i++ {
		require.Len(t, byPair[i], 2, "pair %d", i)
		assert.NotEqual(t, byPair[i][0].Role, byPair[i][1].Role)
	}

	// 等半径对的交圆落在两球心的中垂面上
	wantX := []float64{-1.5, 2, 6, 9.5}
	for i, pls := range wantX {
		for _, pl := range byPair[i] {
			assert.InDelta(t, pls, pl.Position.X, 5e-3)
			assert.InDelta(t, 0, pl.Position.Z, 1e-2)
		}
	}

	// 横向偏移 = sqrt(effR² - 半距²)，effR = 1.5 - 2·0.8·0.1 + 0.8
	wantY := math.Sqrt(2.14*2.14 - 1.5*1.5)
	for _, pl := range byPair[0] {
		assert.InDelta(t, wantY, math.Abs(pl.Position.Y), 5e-3)
	}

	// 整排关于中点镜像对称
	var xs []float64
	for _, pl := range result.Placements {
		xs = append(xs, pl.Position.X)
	}
	sort.Float64s(xs)
	for i := 0; i < len(xs)/2; i++ {
		assert.InDelta(t, 8.0, xs[i]+xs[len(xs)-1-i], 1e-2)
	}
}

func TestSolveBasicRowTightOverlap(t *testing.T) {
	// 咬合20%时有效半径1.98，中间对球心距4刚好超出交球范围，
	// 只有端部虚拟对成功：少出爪但不报错，端部爪关于排中点镜像
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)
	p := SolveParams{
		Mode:           ModeBasic,
		ProngSize:      0.8,
		OverlapPercent: 20,
		Output:         OutputProngsAndLines,
	}

	result, err := Solve(gems, p)
	require.NoError(t, err)
	assert.Len(t, result.Pairs, 4)
	assert.Len(t, result.Placements, 4)
	assert.Len(t, result.Diagnostics, 2)

	// 端部对使用虚拟半径1.5，交圆落在 x=-1.5 / x=9.5
	for _, pl := range result.Placements {
		if pl.PairIndex == 0 {
			assert.InDelta(t, -1.5, pl.Position.X, 5e-3)
		} else {
			assert.Equal(t, 3, pl.PairIndex)
			assert.InDelta(t, 9.5, pl.Position.X, 5e-3)
		}
		wantY := math.Sqrt(1.98*1.98 - 1.5*1.5)
		assert.InDelta(t, wantY, math.Abs(pl.Position.Y), 5e-3)
	}
}

func TestSolvePlacementFrames(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)

	result, err := Solve(gems, basicParams())
	require.NoError(t, err)
	for _, pl := range result.Placements {
		// 无倾斜时爪轴沿导轨法向
		assert.Greater(t, pl.Frame.ZAxis.Z, 0.99)
	}

	p := basicParams()
	p.TiltAngle = 10
	result, err = Solve(gems, p)
	require.NoError(t, err)
	for _, pl := range result.Placements {
		// 南北两侧反向内倾，爪轴压向宝石排
		if pl.Position.Y > 0 {
			assert.Less(t, pl.Frame.ZAxis.Y, -1e-3)
		} else {
			assert.Greater(t, pl.Frame.ZAxis.Y, 1e-3)
		}
		assert.Greater(t, pl.Frame.ZAxis.Z, 0.9)
	}
}

func TestSolvePairFailureContinues(t *testing.T) {
	// 宝石间距远大于有效半径之和：逐对失败但整体不报错
	// 间隙把虚拟端位也推到交球范围之外
	gems := makeRowGems([]float64{0, 10, 20}, 1, 1, 1)
	p := basicParams()
	p.ProngSize = 0.5
	p.OverlapPercent = 0
	p.Gap = 5

	result, err := Solve(gems, p)
	require.NoError(t, err)
	assert.Len(t, result.Pairs, 4)
	assert.Empty(t, result.Placements)
	assert.Len(t, result.Diagnostics, 4)
}

func TestSolveOutputFilter(t *testing.T) {
	gems := makeRowGems([]float64{0, 4, 8}, 1.5, 1, 1.2)

	p := basicParams()
	p.Output = OutputLinesOnly
	result, err := Solve(gems, p)
	require.NoError(t, err)
	assert.Empty(t, result.Prongs)
	assert.Len(t, result.Guides, 8)

	p.Output = OutputProngsOnly
	result, err = Solve(gems, p)
	require.NoError(t, err)
	assert.Len(t, result.Prongs, 8)
	assert.Empty(t, result.Guides)
}

func TestPairHeight(t *testing.T) {
	gems := makeRowGems([]float64{0, 4}, 1.5, 1, 1.2)
	gems[1].CrownHeight = 2

	assert.InDelta(t, 1.5, pairHeight(gems, 0, 0.5), 1e-12)
	assert.InDelta(t, 2.5, pairHeight(gems, 1, 0.5), 1e-12)
	assert.InDelta(t, 2.5, pairHeight(gems, 2, 0.5), 1e-12)
}
