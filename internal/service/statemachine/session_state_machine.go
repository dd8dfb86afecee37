package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// SessionStatus 定义会话的所有可能状态
type SessionStatus string

const (
	SessionStatusIdle     SessionStatus = "idle"              // 空闲，可以提交
	SessionStatusAwaiting SessionStatus = "awaiting_response" // 网关请求进行中
)

// SessionTransition 定义会话状态迁移
type SessionTransition struct {
	From SessionStatus
	To   SessionStatus
}

// SessionStateMachine 会话状态机
// 同一会话同一时刻只允许一个在途网关请求，互斥通过状态迁移前置条件表达：
// 不存在 awaiting -> awaiting 的迁移，提交期间的再次提交会被拒绝
type SessionStateMachine struct {
	// 定义所有合法的状态迁移
	allowedTransitions map[SessionTransition]bool
}

// NewSessionStateMachine 创建新的会话状态机
func NewSessionStateMachine() *SessionStateMachine {
	sm := &SessionStateMachine{
		allowedTransitions: make(map[SessionTransition]bool),
	}

	// idle -> awaiting_response（提交非空输入）
	// awaiting_response -> idle（网关调用落定，无论成功失败）
	transitions := []SessionTransition{
		{SessionStatusIdle, SessionStatusAwaiting},
		{SessionStatusAwaiting, SessionStatusIdle},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *SessionStateMachine) CanTransition(from, to SessionStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[SessionTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *SessionStateMachine) ValidateTransition(from, to SessionStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *SessionStateMachine) Transition(from, to SessionStatus, sessionKey string) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("会话状态迁移被拒绝: session=%s, %s -> %s, error=%v",
			sessionKey, from, to, err)
		return err
	}

	klog.V(6).Infof("会话状态迁移成功: session=%s, %s -> %s", sessionKey, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition: %s -> %s", e.From, e.To)
}

// IsAwaiting 判断会话是否有在途请求
func IsAwaiting(status SessionStatus) bool {
	return status == SessionStatusAwaiting
}
