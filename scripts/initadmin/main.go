package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/summitlink/internal/config"
	"github.com/summitlink/internal/db"
)

// 初始化审核员账号的小工具：优先读取 AUTH_USERNAME / AUTH_PASSWORD，
// 缺省时回退到本地开发凭据。
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	username := strings.TrimSpace(cfg.AuthUsername)
	password := strings.TrimSpace(cfg.AuthPassword)
	if username == "" || password == "" {
		username = "admin"
		password = "admin123"
	}

	var count int64
	db.DB.Model(&db.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		fmt.Println("moderator account already exists, nothing to do")
		return
	}

	if err := db.EnsureUser(username, password); err != nil {
		log.Fatal("failed to create moderator account:", err)
	}

	fmt.Println("moderator account created")
	fmt.Println("username:", username)
	if os.Getenv("AUTH_PASSWORD") == "" {
		fmt.Println("password:", password)
	}
}
