package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/policydraft/backend/config"
	"github.com/policydraft/backend/internal/embed"
	"github.com/policydraft/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	chatHandler *handler.ChatHandler,
	historyHandler *handler.HistoryHandler,
	configHandler *handler.ConfigHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", chatHandler.CreateSession)
			sessions.GET("", chatHandler.ListSessions)
			sessions.GET("/:key", chatHandler.GetSession)
			sessions.GET("/:key/messages", chatHandler.GetMessages)
			sessions.POST("/:key/messages", chatHandler.Submit)
			sessions.GET("/:key/preview", chatHandler.GetPreview)
			sessions.GET("/:key/preview/render", chatHandler.GetPreviewRender)
		}

		history := api.Group("/history")
		{
			history.GET("", historyHandler.List)
			history.POST("/:id/select", historyHandler.Select)
		}

		api.GET("/config", configHandler.Get)
	}

	// 设置前端静态文件路由（嵌入式）
	// 必须在API路由之后设置，确保API请求优先匹配
	embed.SetupRouter(r)

	return r
}
