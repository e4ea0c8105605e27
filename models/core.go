package models

import (
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elliotttmiller/AuraGeom/config"
)

var DB *gorm.DB

// InitDB 初始化SQLite数据库
func InitDB() error {
	// 确保目录存在
	if err := os.MkdirAll(config.DataPath, os.ModePerm); err != nil {
		log.Printf("创建存储目录失败: %v", err)
		return err
	}

	dbPath := filepath.Join(config.DataPath, config.Dbname)
	log.Printf("数据库路径: %s", dbPath)

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("连接数据库失败: %v", err)
		return err
	}

	if err := migrateAllTables(DB); err != nil {
		log.Printf("数据库迁移失败: %v", err)
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// OpenMemoryDB 打开内存数据库并迁移，测试用
func OpenMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := migrateAllTables(db); err != nil {
		return nil, err
	}
	return db, nil
}

// migrateAllTables 批量迁移所有表
func migrateAllTables(db *gorm.DB) error {
	tables := []interface{}{
		&GemFrameData{},
		&SolveRecord{},
	}
	return db.AutoMigrate(tables...)
}

func GetDB() *gorm.DB {
	return DB
}
