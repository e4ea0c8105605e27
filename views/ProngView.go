package views

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elliotttmiller/AuraGeom/services"
)

type ProngController struct {
	service *services.ProngService
}

func NewProngController() *ProngController {
	return &ProngController{
		service: services.NewProngService(),
	}
}

// CaptureGem 捕捉宝石标架并持久化
func (ctl *ProngController) CaptureGem(c *gin.Context) {
	var req services.CaptureGemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数解析失败: " + err.Error()})
		return
	}
	view, err := ctl.service.CaptureGem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetGem 按UUID查询重建的标架与尺寸
func (ctl *ProngController) GetGem(c *gin.Context) {
	gemUUID := c.Query("uuid")
	if gemUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少uuid参数"})
		return
	}
	view, err := ctl.service.GetGem(gemUUID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SolveProngs 运行爪排求解
func (ctl *ProngController) SolveProngs(c *gin.Context) {
	var req services.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数解析失败: " + err.Error()})
		return
	}
	resp, err := ctl.service.Solve(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportDXF 导出某次求解的DXF线框
func (ctl *ProngController) ExportDXF(c *gin.Context) {
	solveUUID := c.Query("uuid")
	if solveUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少uuid参数"})
		return
	}
	path, err := ctl.service.ExportDXF(solveUUID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, solveUUID+".dxf")
}

// SolveHistory 最近的求解记录
func (ctl *ProngController) SolveHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := ctl.service.History(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
