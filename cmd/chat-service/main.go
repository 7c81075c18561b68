package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gemini-chat/config"
	"gemini-chat/internal/application"
	"gemini-chat/internal/domain"
	"gemini-chat/internal/handler"
	"gemini-chat/internal/infrastructure/adapter"
	"gemini-chat/internal/infrastructure/persistence/cache"
	"gemini-chat/internal/infrastructure/persistence/db"
	"gemini-chat/internal/infrastructure/persistence/memory"
	"gemini-chat/internal/infrastructure/persistence/model"
	"gemini-chat/internal/infrastructure/persistence/repository"
	"gemini-chat/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	images, err := storage.NewImageStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("初始化图片存储失败: %v", err)
	}

	messages, err := newMessageRepository(cfg)
	if err != nil {
		log.Fatalf("初始化消息存储失败: %v", err)
	}

	ctx := context.Background()
	modelClient, err := adapter.NewGeminiClient(ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.ChatModel,
		cfg.Gemini.VisionModel,
		cfg.Gemini.ImageModel,
	)
	if err != nil {
		log.Fatalf("初始化Gemini客户端失败: %v", err)
	}
	defer modelClient.Close()

	chatService := application.NewChatService(messages, images, modelClient)
	chatHandler := handler.NewChatHandler(chatService, images)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServerName,
			"timestamp": time.Now(),
		})
	})
	chatHandler.Register(r)

	log.Printf("%s listening on :%d (storage driver: %s)", cfg.ServerName, cfg.Port, cfg.Storage.Driver)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}

func newMessageRepository(cfg *config.AppConfig) (domain.MessageRepository, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := db.NewPostgresDB(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := pg.CreateTables(&model.MessageModel{}, &model.UserModel{}); err != nil {
			return nil, err
		}
		return repository.NewMessageRepository(pg.DB), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Address, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		return cache.NewMessageCache(client)
	default:
		return memory.NewMessageRepository(), nil
	}
}
