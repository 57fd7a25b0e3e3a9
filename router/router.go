package router

import (
	"time"

	"wechat-ai-bot/api"
	"wechat-ai-bot/config"
	_ "wechat-ai-bot/docs"
	"wechat-ai-bot/middleware"
	"wechat-ai-bot/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())

	// 微信公众号回调
	ai := service.NewOpenAIService(&cfg.OpenAI)
	chat := service.NewChatService(cfg, ai)
	wechatHandler := api.NewWechatHandler(cfg, chat)
	r.GET("/wx", wechatHandler.Verify)
	r.POST("/wx", wechatHandler.Receive)

	// 云托管模板计数器接口
	counterHandler := api.NewCounterHandler()
	count := r.Group("/api/count", middleware.IPRateLimit(60, time.Minute))
	{
		count.GET("", counterHandler.Get)
		count.POST("", counterHandler.Update)
	}

	// 后台管理
	adminHandler := api.NewAdminHandler(cfg)
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.IPRateLimit(5, time.Minute), adminHandler.Login)

		authorized := admin.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/messages", adminHandler.ListMessages)
			authorized.DELETE("/messages/:id", adminHandler.DeleteMessage)
			authorized.GET("/statistics", adminHandler.Statistics)

			exportHandler := api.NewExportHandler()
			authorized.GET("/export/csv", exportHandler.ExportCSV)
			authorized.GET("/export/excel", exportHandler.ExportExcel)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
