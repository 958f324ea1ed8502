package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leveragebrief/config"
	"leveragebrief/internal/db"
	"leveragebrief/internal/handler"
	"leveragebrief/internal/httpserver"
	"leveragebrief/internal/repository"
	"leveragebrief/internal/service"
	"leveragebrief/pkg/logger"
	"leveragebrief/pkg/mq"
	redisclient "leveragebrief/pkg/redis"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// 2. Init DB (optional: invocation audit only)
	var invocationRepo *repository.InvocationRepository
	dbConn := dbPoolOrNil(cfg, log)
	if dbConn != nil {
		defer dbConn.Close()
		invocationRepo = repository.NewInvocationRepository(dbConn)
	}

	// 3. Init Redis plan cache (optional)
	cache := redisOrNil(cfg, log)
	if cache != nil {
		defer cache.Close()
	}

	// 4. Init RabbitMQ publisher (optional)
	publisher := publisherOrNil(cfg, log)
	if publisher != nil {
		defer publisher.Close()
	}

	// 5. Init services
	planService := service.NewPlanService(
		invocationRepo,
		publisher,
		cache,
		time.Duration(cfg.PlanCache.TTLSeconds)*time.Second,
		log,
	)
	adminService := service.NewAdminService(cfg.Admin, cfg.JWT.Secret, invocationRepo)

	// 6. Init handlers
	toolHandler := handler.NewToolHandler(planService, log)
	adminHandler := handler.NewAdminHandler(adminService)

	// 7. Router
	router := httpserver.NewRouter(toolHandler, adminHandler, cfg.JWT.Secret, dbConn)

	// 8. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}

// Optional infra: a missing or unreachable collaborator downgrades the
// service instead of keeping it from starting. The tool surface must stay
// available either way.

func dbPoolOrNil(cfg *config.Config, log *zap.Logger) *pgxpool.Pool {
	if !cfg.DB.Enabled() {
		log.Info("Audit DB not configured, invocation auditing disabled")
		return nil
	}
	pool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Error("DB initialization failed, continuing without auditing", zap.Error(err))
		return nil
	}
	return pool
}

func redisOrNil(cfg *config.Config, log *zap.Logger) *goredis.Client {
	if !cfg.Redis.Enabled() {
		log.Info("Redis not configured, plan cache disabled")
		return nil
	}
	return redisclient.NewRedisClient(cfg.Redis)
}

func publisherOrNil(cfg *config.Config, log *zap.Logger) *mq.Publisher {
	if !cfg.MQ.Enabled() {
		log.Info("MQ not configured, event publishing disabled")
		return nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Error("MQ initialization failed, continuing without events", zap.Error(err))
		return nil
	}
	return publisher
}
