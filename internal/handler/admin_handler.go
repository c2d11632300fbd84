package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/summitlink/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage 渲染审核后台登录页面
func ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Organizer Login",
	})
}

// Login 处理共享凭据登录请求
func Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	// 查找审核员账号
	var user db.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "Organizer Login",
			"error": "Invalid username or password",
		})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "Organizer Login",
			"error": "Invalid username or password",
		})
		return
	}

	// 设置会话，登录状态经 cookie 持久化，页面刷新后仍然有效
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "Organizer Login",
			"error": "Failed to save session, please try again",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/contacts")
}

// Logout 清除会话并回到登录页
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
