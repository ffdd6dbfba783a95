package service

import (
	"time"

	"github.com/ashwinyue/monster-ai/internal/config"
	"github.com/ashwinyue/monster-ai/internal/repository"
	"github.com/ashwinyue/monster-ai/internal/service/auth"
	"github.com/ashwinyue/monster-ai/internal/service/battle"
	"github.com/ashwinyue/monster-ai/internal/service/chat"
	"github.com/ashwinyue/monster-ai/internal/service/companion"
	"github.com/ashwinyue/monster-ai/internal/service/gateway"
	"github.com/ashwinyue/monster-ai/internal/service/session"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	// 业务服务
	Companion *companion.Service
	Chat      *chat.Service
	Battle    *battle.Orchestrator
	Auth      *auth.Service

	// 基础设施
	Gateway    *gateway.Service
	Config     *config.Config
	SessionMgr *session.Manager
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	// 创建 Session 管理器
	sessionMgr := session.NewManager(redisClient)

	// 创建推理网关；后端配置由各会话自己持有，这里只给新会话的默认值
	gw := gateway.NewService(time.Duration(cfg.AI.Timeout) * time.Second)
	defaultProvider := gateway.FromConfig(cfg)

	// 创建战斗结算服务
	resolver := battle.NewService(battle.NewDice(time.Now().UnixNano()))

	return &Services{
		Companion: companion.NewService(repo.Companion),
		Chat:      chat.NewService(repo.Companion, gw, sessionMgr, defaultProvider),
		Battle:    battle.NewOrchestrator(resolver, gw, repo.Companion, sessionMgr, defaultProvider),
		Auth:      auth.NewService(repo.Auth),

		Gateway:    gw,
		Config:     cfg,
		SessionMgr: sessionMgr,
	}, nil
}
