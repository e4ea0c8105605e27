package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/elliotttmiller/AuraGeom/config"
	"github.com/elliotttmiller/AuraGeom/models"
	"github.com/elliotttmiller/AuraGeom/routers"
)

func main() {
	if err := models.InitDB(); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	r := gin.Default()
	routers.ProngRouters(r)

	log.Printf("服务启动: %s", config.MainRouter)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
