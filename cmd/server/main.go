package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/summitlink/internal/config"
	"github.com/summitlink/internal/db"
	"github.com/summitlink/internal/router"
)

func main() {
	// .env 文件可选，不存在时静默跳过
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 从环境变量播种审核员共享凭据
	if err := db.EnsureUser(cfg.AuthUsername, cfg.AuthPassword); err != nil {
		log.Fatalf("failed to ensure moderator account: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret, cfg.UploadDir, cfg.UploadURLPath, cfg.TemplateGlob)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
