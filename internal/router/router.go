package router

import (
	"github.com/ashwinyue/monster-ai/internal/handler"
	"github.com/ashwinyue/monster-ai/internal/middleware"
	"github.com/ashwinyue/monster-ai/internal/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(svc))
	{
		// Auth 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Companion 伙伴档案
		companions := v1.Group("/companions")
		{
			companions.POST("", h.Companion.CreateCompanion)
			companions.GET("/me", h.Companion.GetMyCompanion)
			companions.GET("/:id", h.Companion.GetCompanion)
			companions.PUT("/:id", h.Companion.UpdateCompanion)
			companions.DELETE("/:id", h.Companion.DeleteCompanion)
		}

		// Chat 聊天
		chats := v1.Group("/chats")
		{
			chats.GET("/:id", h.Chat.GetSession)
			chats.POST("/:id/messages", h.Chat.SendMessage)
			chats.POST("/:id/provider", h.Chat.SwitchProvider)
		}

		// Provider 推理后端预设
		v1.GET("/providers", h.Chat.ListProviders)

		// Battle 战斗
		battles := v1.Group("/battles")
		{
			battles.GET("/:id", h.Battle.GetBattle)
			battles.POST("/:id/start", h.Battle.StartBattle)
			battles.POST("/:id/moves", h.Battle.PlayMove)
			battles.POST("/:id/reset", h.Battle.ResetBattle)
		}
	}

	return r
}
