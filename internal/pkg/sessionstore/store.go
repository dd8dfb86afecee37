package sessionstore

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/policydraft/backend/internal/service/normalizer"
	"github.com/policydraft/backend/internal/service/statemachine"
)

// PreviewState 当前会话的预览投影：最多各持有一份制度草案与合规报告
// 每次成功抽取后整体替换，不做合并，也不保留历史
type PreviewState struct {
	Policy     *normalizer.PolicyResult     `json:"policy,omitempty"`
	Compliance *normalizer.ComplianceReport `json:"compliance,omitempty"`
}

// sessionState 会话运行态：状态机状态 + 预览投影
// 只通过 Store 的方法读写，调用方拿不到内部指针
type sessionState struct {
	mu      sync.Mutex
	status  statemachine.SessionStatus
	preview PreviewState
}

// Store 会话运行态缓存
// 预览与在途标志是易失数据，按 TTL 过期，过期后会话回到空闲空预览状态
type Store struct {
	// mu 串行化 get-or-create 与续期，保证同一会话只存在一个 sessionState 实例；
	// 没有它，两次并发未命中会各自建出独立实例，在途守卫就会被绕过
	mu    sync.Mutex
	cache *cache.Cache
	sm    *statemachine.SessionStateMachine
}

// NewStore 创建会话运行态缓存
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		sm:    statemachine.NewSessionStateMachine(),
	}
}

func (s *Store) state(sessionKey string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x, found := s.cache.Get(sessionKey); found {
		state := x.(*sessionState)
		s.cache.Set(sessionKey, state, cache.DefaultExpiration)
		return state
	}
	state := &sessionState{status: statemachine.SessionStatusIdle}
	s.cache.Set(sessionKey, state, cache.DefaultExpiration)
	return state
}

// BeginRequest 尝试进入在途状态
// 已有在途请求时返回状态机的迁移错误，提交被拒绝（不排队、不取消在途请求）
func (s *Store) BeginRequest(sessionKey string) error {
	state := s.state(sessionKey)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.sm.Transition(state.status, statemachine.SessionStatusAwaiting, sessionKey); err != nil {
		return err
	}
	state.status = statemachine.SessionStatusAwaiting
	return nil
}

// Settle 网关调用落定，无条件回到空闲态（成功与失败同路径）
func (s *Store) Settle(sessionKey string) {
	state := s.state(sessionKey)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.status = statemachine.SessionStatusIdle
}

// Awaiting 会话是否有在途请求
func (s *Store) Awaiting(sessionKey string) bool {
	state := s.state(sessionKey)
	state.mu.Lock()
	defer state.mu.Unlock()
	return statemachine.IsAwaiting(state.status)
}

// ReplacePreview 整体替换预览投影
func (s *Store) ReplacePreview(sessionKey string, policy *normalizer.PolicyResult, compliance *normalizer.ComplianceReport) {
	state := s.state(sessionKey)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.preview = PreviewState{Policy: policy, Compliance: compliance}
}

// Preview 返回当前预览投影的副本
func (s *Store) Preview(sessionKey string) PreviewState {
	state := s.state(sessionKey)
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.preview
}

// Drop 删除会话运行态
func (s *Store) Drop(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionKey)
}
