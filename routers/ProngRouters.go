package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/elliotttmiller/AuraGeom/views"
)

func ProngRouters(r *gin.Engine) {
	ProngController := views.NewProngController()
	prongRouter := r.Group("/prong")
	{
		prongRouter.POST("/CaptureGem", ProngController.CaptureGem)
		prongRouter.GET("/GetGem", ProngController.GetGem)
		prongRouter.POST("/Solve", ProngController.SolveProngs)
		prongRouter.GET("/ExportDXF", ProngController.ExportDXF)
		prongRouter.GET("/SolveHistory", ProngController.SolveHistory)
	}
}
