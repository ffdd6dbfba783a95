// Package session 提供会话状态管理
// 聊天与战斗会话均保存在内存中，可选地镜像到 Redis 作为带 TTL 的缓存；
// 战斗/聊天记录跨进程重启的持久化不在设计目标内
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	// 会话在 Redis 中的过期时间（24小时）
	sessionTTL = 24 * time.Hour
	// Redis key 前缀
	chatKeyPrefix   = "chat:"
	battleKeyPrefix = "battle:"
)

// Manager 会话管理器
// 同一会话的并发操作由调用方串行化，这里只保证 map 访问安全
type Manager struct {
	mu      sync.RWMutex
	chats   map[string]*model.ChatSession
	battles map[string]*model.BattleSession
	redis   *redis.Client
}

// NewManager 创建会话管理器
// redisClient 可以为 nil，此时仅使用内存
func NewManager(redisClient *redis.Client) *Manager {
	return &Manager{
		chats:   make(map[string]*model.ChatSession),
		battles: make(map[string]*model.BattleSession),
		redis:   redisClient,
	}
}

// GetChat 获取聊天会话，不存在时创建
func (m *Manager) GetChat(ctx context.Context, sessionID string) *model.ChatSession {
	m.mu.RLock()
	sess, ok := m.chats[sessionID]
	m.mu.RUnlock()

	if ok {
		return sess
	}

	// 从 Redis 加载
	if m.redis != nil {
		var loaded model.ChatSession
		if m.loadFromRedis(ctx, chatKeyPrefix+sessionID, &loaded) {
			m.mu.Lock()
			m.chats[sessionID] = &loaded
			m.mu.Unlock()
			return &loaded
		}
	}

	sess = &model.ChatSession{
		ID:        sessionID,
		Messages:  []model.ChatMessage{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.mu.Lock()
	m.chats[sessionID] = sess
	m.mu.Unlock()

	return sess
}

// SaveChat 保存聊天会话并同步到 Redis
func (m *Manager) SaveChat(ctx context.Context, sess *model.ChatSession) {
	sess.UpdatedAt = time.Now()

	m.mu.Lock()
	m.chats[sess.ID] = sess
	m.mu.Unlock()

	m.saveToRedis(ctx, chatKeyPrefix+sess.ID, sess)
}

// GetBattle 获取战斗会话，不存在时创建
func (m *Manager) GetBattle(ctx context.Context, sessionID string) *model.BattleSession {
	m.mu.RLock()
	sess, ok := m.battles[sessionID]
	m.mu.RUnlock()

	if ok {
		return sess
	}

	if m.redis != nil {
		var loaded model.BattleSession
		if m.loadFromRedis(ctx, battleKeyPrefix+sessionID, &loaded) {
			m.mu.Lock()
			m.battles[sessionID] = &loaded
			m.mu.Unlock()
			return &loaded
		}
	}

	sess = &model.BattleSession{
		ID:        sessionID,
		Phase:     model.BattlePhaseNotStarted,
		Log:       []model.BattleLogEntry{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.mu.Lock()
	m.battles[sessionID] = sess
	m.mu.Unlock()

	return sess
}

// SaveBattle 保存战斗会话并同步到 Redis
func (m *Manager) SaveBattle(ctx context.Context, sess *model.BattleSession) {
	sess.UpdatedAt = time.Now()

	m.mu.Lock()
	m.battles[sess.ID] = sess
	m.mu.Unlock()

	m.saveToRedis(ctx, battleKeyPrefix+sess.ID, sess)
}

// Clear 清除会话
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.chats, sessionID)
	delete(m.battles, sessionID)
	m.mu.Unlock()

	if m.redis != nil {
		if err := m.redis.Del(ctx, chatKeyPrefix+sessionID, battleKeyPrefix+sessionID).Err(); err != nil {
			log.Printf("Warning: failed to delete session from redis: %v", err)
		}
	}
}

// loadFromRedis 从 Redis 加载会话
func (m *Manager) loadFromRedis(ctx context.Context, key string, dst interface{}) bool {
	data, err := m.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false
	}
	return true
}

// saveToRedis 保存会话到 Redis
// 失败只记录警告，不影响主流程
func (m *Manager) saveToRedis(ctx context.Context, key string, src interface{}) {
	if m.redis == nil {
		return
	}
	data, err := json.Marshal(src)
	if err != nil {
		log.Printf("Warning: failed to marshal session: %v", err)
		return
	}
	if err := m.redis.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		log.Printf("Warning: failed to save session to redis: %v", err)
	}
}
