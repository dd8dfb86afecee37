package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/policydraft/backend/config"
	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/handler"
	"github.com/policydraft/backend/internal/pkg/database"
	"github.com/policydraft/backend/internal/pkg/gateway"
	"github.com/policydraft/backend/internal/pkg/sessionstore"
	"github.com/policydraft/backend/internal/repository"
	"github.com/policydraft/backend/internal/router"
	"github.com/policydraft/backend/internal/service"
	"github.com/policydraft/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 预置历史制度清单
	if err := service.InitDefaultHistory(db); err != nil {
		log.Fatalf("Failed to seed policy history: %v", err)
	}

	// 初始化 Repository
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// 会话运行态（状态机 + 预览）与网关客户端
	store := sessionstore.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	gatewayClient := gateway.NewClient(cfg)

	// 事件总线与诊断订阅者
	bus := eventbus.NewBus()
	subscriber.NewChatEventSubscriber().Register(bus)

	// 初始化 Service
	chatService := service.NewChatService(cfg, sessionRepo, messageRepo, store, gatewayClient, bus)
	historyService := service.NewHistoryService(historyRepo, bus)

	// 初始化 Handler
	chatHandler := handler.NewChatHandler(chatService)
	historyHandler := handler.NewHistoryHandler(historyService)
	configHandler := handler.NewConfigHandler(cfg)

	// 设置路由
	r := router.Setup(cfg, chatHandler, historyHandler, configHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
