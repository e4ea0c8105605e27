package models

import "gorm.io/datatypes"

// 一次爪排求解的历史记录
type SolveRecord struct {
	ID         int64          `gorm:"primary_key;autoIncrement" json:"id"`
	SolveUUID  string         `gorm:"column:solve_uuid;uniqueIndex" json:"solveUuid"`
	GemCount   int            `json:"gemCount"`
	PairCount  int            `json:"pairCount"`
	ProngCount int            `json:"prongCount"`
	Args       datatypes.JSON `gorm:"type:jsonb" json:"args"` // 求解输入参数
	Date       string         `gorm:"type:varchar(255)" json:"date"`
}

func (SolveRecord) TableName() string {
	return "solve_record"
}
