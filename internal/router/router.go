package router

import (
	"html/template"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/summitlink/internal/db"
	"github.com/summitlink/internal/handler"
	"github.com/summitlink/internal/phone"
	"github.com/summitlink/internal/storage"
	"github.com/summitlink/internal/view"
)

// SetupRouter 配置 Gin 引擎和路由。
// templateGlob 为空时跳过模板加载，方便测试环境不依赖 web 目录。
func SetupRouter(sessionSecret, uploadDir, uploadURL, templateGlob string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，登录状态靠 cookie 持久化
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("summitlink_session", store))

	// 加载模板并注册自定义函数
	r.SetFuncMap(template.FuncMap{
		"formatPhone": phone.Format,
		"channelIcon": func(key string) template.HTML {
			return template.HTML(view.ChannelIconSVG(key))
		},
		"add": func(a, b int) int {
			return a + b
		},
	})
	if templateGlob != "" {
		r.LoadHTMLGlob(templateGlob)
	}

	// 静态文件服务；对象存储目录不在 /static 下时单独挂一个别名
	r.Static("/static", "./web/static")
	if !strings.HasPrefix(uploadURL, "/static") {
		r.Static(uploadURL, uploadDir)
	}

	api := handler.NewAPI(db.DB, storage.NewDiskStore(uploadDir, uploadURL))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开站点路由
	r.GET("/", api.ShowHome)
	r.GET("/contacts", api.ShowDirectory)
	r.GET("/submit", api.ShowSubmitForm)
	r.GET("/api/contacts/:id", api.GetDirectoryContact)
	r.POST("/api/contacts", api.SubmitContact)
	r.POST("/api/contacts/photo", api.UploadContactPhoto)

	// 审核后台路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", handler.ShowLoginPage)
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/contacts", api.ShowModerationConsole)

			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/contacts", api.ListContacts)
				adminAPI.POST("/contacts/:id/approve", api.ApproveContact)
				adminAPI.POST("/contacts/:id/reject", api.RejectContact)
			}
		}
	}

	return r
}
