// services/prong_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elliotttmiller/AuraGeom/GemSpatial"
	"github.com/elliotttmiller/AuraGeom/Geom"
	"github.com/elliotttmiller/AuraGeom/ProngRail"
	"github.com/elliotttmiller/AuraGeom/config"
	"github.com/elliotttmiller/AuraGeom/methods"
	"github.com/elliotttmiller/AuraGeom/models"
)

// 最近求解结果的缓存条数，用于DXF导出
const recentSolveLimit = 8

type ProngService struct {
	db     *gorm.DB
	mu     sync.Mutex
	recent map[string]*ProngRail.SolveResult
	order  []string
}

func NewProngService() *ProngService {
	return NewProngServiceWithDB(models.DB)
}

func NewProngServiceWithDB(db *gorm.DB) *ProngService {
	return &ProngService{
		db:     db,
		recent: make(map[string]*ProngRail.SolveResult),
	}
}

type CaptureGemRequest struct {
	GirdleRadius  float64       `json:"girdleRadius"`
	CrownHeight   float64       `json:"crownHeight"`
	PavilionDepth float64       `json:"pavilionDepth"`
	Position      Geom.Vector3  `json:"position"`
	ZAxis         *Geom.Vector3 `json:"zAxis,omitempty"`
	XAxis         *Geom.Vector3 `json:"xAxis,omitempty"`
	NearestHit    bool          `json:"nearestHit"`
}

type GemFrameView struct {
	GemUUID       string     `json:"gemUuid"`
	Frame         Geom.Plane `json:"frame"`
	Width         float64    `json:"width"`
	Length        float64    `json:"length"`
	Depth         float64    `json:"depth"`
	Radius        float64    `json:"radius"`
	CrownHeight   float64    `json:"crownHeight"`
	PavilionDepth float64    `json:"pavilionDepth"`
}

// CaptureGem 构建宝石代理实体、捕捉六个半轴采样并持久化
// 捕捉在实体自身坐标中进行，之后才套上位姿
func (s *ProngService) CaptureGem(req *CaptureGemRequest) (*GemFrameView, error) {
	if req.GirdleRadius <= 0 {
		return nil, fmt.Errorf("腰棱半径必须为正: %g", req.GirdleRadius)
	}
	if req.CrownHeight <= 0 || req.PavilionDepth <= 0 {
		return nil, fmt.Errorf("冠高与亭深必须为正")
	}

	solid := Geom.NewGemSolid(req.GirdleRadius, req.CrownHeight, req.PavilionDepth)
	data, err := GemSpatial.CaptureAxialFrame(solid, GemSpatial.CaptureOptions{
		RayLength:  config.RayLength,
		NearestHit: req.NearestHit,
	})
	if err != nil {
		return nil, err
	}

	solid.SetPlacement(placementFromRequest(req))

	placementJSON, err := json.Marshal(solid.Placement)
	if err != nil {
		return nil, fmt.Errorf("序列化位姿失败: %v", err)
	}
	kv := data.Encode()
	row := models.GemFrameData{
		GemUUID:       uuid.New().String(),
		X1Data:        kv[GemSpatial.KeyX1],
		X2Data:        kv[GemSpatial.KeyX2],
		Y1Data:        kv[GemSpatial.KeyY1],
		Y2Data:        kv[GemSpatial.KeyY2],
		Z1Data:        kv[GemSpatial.KeyZ1],
		Z2Data:        kv[GemSpatial.KeyZ2],
		ScaleData:     kv[GemSpatial.KeyScale],
		GirdleRadius:  req.GirdleRadius,
		CrownHeight:   req.CrownHeight,
		PavilionDepth: req.PavilionDepth,
		Placement:     placementJSON,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("保存标架数据失败: %v", err)
	}
	return s.buildView(row.GemUUID, solid, data)
}

func placementFromRequest(req *CaptureGemRequest) Geom.Plane {
	pl := Geom.WorldPlane()
	pl.Origin = req.Position
	if req.ZAxis != nil {
		pl = Geom.PlaneFromNormal(req.Position, *req.ZAxis)
		if req.XAxis != nil {
			angle := Geom.SignedAngle(pl.XAxis, *req.XAxis, pl.ZAxis)
			pl = pl.RotateAboutNormal(angle)
		}
	}
	return pl
}

// 从持久化行还原实体与采样数据
func (s *ProngService) loadGem(gemUUID string) (*Geom.Solid, *GemSpatial.FrameData, error) {
	var row models.GemFrameData
	err := s.db.Where("gem_uuid = ?", gemUUID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("宝石不存在: %s", gemUUID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("读取标架数据失败: %v", err)
	}

	solid := Geom.NewGemSolid(row.GirdleRadius, row.CrownHeight, row.PavilionDepth)
	var pl Geom.Plane
	if err := json.Unmarshal(row.Placement, &pl); err != nil {
		return nil, nil, fmt.Errorf("%w: placement: %v", GemSpatial.ErrFrameDataCorrupt, err)
	}
	solid.SetPlacement(pl)

	data, err := GemSpatial.DecodeFrameData(row.KeyValues())
	if err != nil {
		return nil, nil, err
	}
	return solid, data, nil
}

// GetGem 按UUID重建标架与尺寸
func (s *ProngService) GetGem(gemUUID string) (*GemFrameView, error) {
	solid, data, err := s.loadGem(gemUUID)
	if err != nil {
		return nil, err
	}
	return s.buildView(gemUUID, solid, data)
}

func (s *ProngService) buildView(gemUUID string, solid *Geom.Solid, data *GemSpatial.FrameData) (*GemFrameView, error) {
	record, err := GemSpatial.DeriveGemRecord(solid, data)
	if err != nil {
		return nil, err
	}
	w, l, d, err := GemSpatial.FrameSizes(solid, data)
	if err != nil {
		return nil, err
	}
	return &GemFrameView{
		GemUUID:       gemUUID,
		Frame:         record.Frame,
		Width:         w,
		Length:        l,
		Depth:         d,
		Radius:        record.Radius,
		CrownHeight:   record.CrownHeight,
		PavilionDepth: record.PavilionDepth,
	}, nil
}

type SolveRequest struct {
	GemUUIDs []string              `json:"gemUuids"`
	Params   ProngRail.SolveParams `json:"params"`
}

type SolveResponse struct {
	SolveUUID      string                     `json:"solveUuid"`
	Classification *ProngRail.Classification  `json:"classification"`
	PairCount      int                        `json:"pairCount"`
	ProngCount     int                        `json:"prongCount"`
	GuideCount     int                        `json:"guideCount"`
	Placements     []ProngRail.ProngPlacement `json:"placements"`
	Diagnostics    []string                   `json:"diagnostics"`
}

// Solve 加载选中宝石并运行爪排求解管线
// 任何一颗宝石无法重建标架都在建几何之前整体中止
func (s *ProngService) Solve(req *SolveRequest) (*SolveResponse, error) {
	if len(req.GemUUIDs) < 2 {
		return nil, fmt.Errorf("至少选择2颗宝石, 当前%d颗", len(req.GemUUIDs))
	}

	gems := make([]*GemSpatial.GemRecord, 0, len(req.GemUUIDs))
	for _, id := range req.GemUUIDs {
		solid, data, err := s.loadGem(id)
		if err != nil {
			return nil, err
		}
		record, err := GemSpatial.DeriveGemRecord(solid, data)
		if err != nil {
			return nil, fmt.Errorf("宝石 %s: %v", id, err)
		}
		gems = append(gems, record)
	}

	result, err := ProngRail.Solve(gems, req.Params)
	if err != nil {
		return nil, err
	}

	solveUUID := uuid.New().String()
	argsJSON, _ := json.Marshal(req.Params)
	record := models.SolveRecord{
		SolveUUID:  solveUUID,
		GemCount:   len(gems),
		PairCount:  len(result.Pairs),
		ProngCount: len(result.Prongs),
		Args:       argsJSON,
		Date:       time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存求解记录失败: %v", err)
	}

	s.cacheResult(solveUUID, result)

	return &SolveResponse{
		SolveUUID:      solveUUID,
		Classification: result.Classification,
		PairCount:      len(result.Pairs),
		ProngCount:     len(result.Prongs),
		GuideCount:     len(result.Guides),
		Placements:     result.Placements,
		Diagnostics:    result.Diagnostics,
	}, nil
}

func (s *ProngService) cacheResult(solveUUID string, result *ProngRail.SolveResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent[solveUUID] = result
	s.order = append(s.order, solveUUID)
	for len(s.order) > recentSolveLimit {
		delete(s.recent, s.order[0])
		s.order = s.order[1:]
	}
}

// ExportDXF 把缓存中的求解结果写成DXF并返回文件路径
func (s *ProngService) ExportDXF(solveUUID string) (string, error) {
	s.mu.Lock()
	result, ok := s.recent[solveUUID]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("求解结果不存在或已过期: %s", solveUUID)
	}

	outDir := filepath.Join(config.DataPath, "dxf")
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("创建导出目录失败: %v", err)
	}
	outPath := filepath.Join(outDir, solveUUID+".dxf")
	if err := methods.ConvertSolveResultToDXF(result, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// History 最近的求解记录
func (s *ProngService) History(limit int) ([]models.SolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.SolveRecord
	if err := s.db.Order("id desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询求解记录失败: %v", err)
	}
	return records, nil
}
