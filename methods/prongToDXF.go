package methods

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/elliotttmiller/AuraGeom/ProngRail"
)

// ConvertSolveResultToDXF 把一次求解的爪网格线框和参考线写成DXF
func ConvertSolveResultToDXF(result *ProngRail.SolveResult, outputFilename string) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0 // 调整比例因子，确保正确的比例（如果需要）

	if len(result.Prongs) > 0 {
		d.AddLayer("Prong", color.Red, dxf.DefaultLineType, true)
		d.ChangeLayer("Prong")
		for _, prong := range result.Prongs {
			if prong.Mesh == nil {
				continue
			}
			for _, edge := range prong.Mesh.Edges() {
				d.Line(edge.From.X, edge.From.Y, edge.From.Z, edge.To.X, edge.To.Y, edge.To.Z)
			}
		}
	}

	if len(result.Guides) > 0 {
		d.AddLayer("GuideLine", color.Green, dxf.DefaultLineType, true)
		d.ChangeLayer("GuideLine")
		for _, g := range result.Guides {
			d.Line(g.From.X, g.From.Y, g.From.Z, g.To.X, g.To.Y, g.To.Z)
		}
	}

	// 保存DXF文件
	if err := d.SaveAs(outputFilename); err != nil {
		return fmt.Errorf("save dxf: %v", err)
	}
	return nil
}
