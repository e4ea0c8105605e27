package models

import (
	"time"

	"gorm.io/datatypes"
)

// 宝石标架持久化行：六个半轴采样三元组 + 尺寸三元组的文本形式
// 文本格式由GemSpatial的编解码约定，这里只负责存取
type GemFrameData struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	GemUUID   string `gorm:"column:gem_uuid;uniqueIndex" json:"gemUuid"`
	X1Data    string `gorm:"column:x1_data;type:varchar(255)" json:"x1Data"`
	X2Data    string `gorm:"column:x2_data;type:varchar(255)" json:"x2Data"`
	Y1Data    string `gorm:"column:y1_data;type:varchar(255)" json:"y1Data"`
	Y2Data    string `gorm:"column:y2_data;type:varchar(255)" json:"y2Data"`
	Z1Data    string `gorm:"column:z1_data;type:varchar(255)" json:"z1Data"`
	Z2Data    string `gorm:"column:z2_data;type:varchar(255)" json:"z2Data"`
	ScaleData string `gorm:"column:scale_data;type:varchar(255)" json:"scaleData"`

	// 重建代理实体所需的宝石描述
	GirdleRadius  float64        `gorm:"column:girdle_radius" json:"girdleRadius"`
	CrownHeight   float64        `gorm:"column:crown_height" json:"crownHeight"`
	PavilionDepth float64        `gorm:"column:pavilion_depth" json:"pavilionDepth"`
	Placement     datatypes.JSON `gorm:"type:jsonb" json:"placement"` // 序列化的位姿标架

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (GemFrameData) TableName() string {
	return "gem_frame_data"
}

// 标架键值视图，交给GemSpatial解码
func (g *GemFrameData) KeyValues() map[string]string {
	return map[string]string{
		"x1_data":    g.X1Data,
		"x2_data":    g.X2Data,
		"y1_data":    g.Y1Data,
		"y2_data":    g.Y2Data,
		"z1_data":    g.Z1Data,
		"z2_data":    g.Z2Data,
		"scale_data": g.ScaleData,
	}
}
