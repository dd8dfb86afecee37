package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/policydraft/backend/config"
	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/model"
	"github.com/policydraft/backend/internal/pkg/gateway"
	"github.com/policydraft/backend/internal/pkg/sessionstore"
	"github.com/policydraft/backend/internal/repository"
	"github.com/policydraft/backend/internal/service/normalizer"
	"k8s.io/klog/v2"
)

var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrSessionBusy = errors.New("session has a request in flight")
)

// 失败场景的固定话术，通过聊天记录呈现给用户，请求本身不算失败
const (
	networkErrorMessage = "网络异常，请稍后重试"
	gatewayErrorMessage = "请求处理失败，请稍后重试"
	defaultSessionTitle = "新的制度对话"
)

const maxTitleRunes = 60

// GatewayInvoker 网关调用抽象，便于测试替换
type GatewayInvoker interface {
	Invoke(ctx context.Context, prompt string) (*gateway.InvokeResult, error)
}

// ChatService 会话控制器
// 负责提交守卫（同会话单在途请求）、网关调用、归一化与预览替换；
// 聊天记录只追加，预览整体替换，两者都只在请求落定后由本服务写入
type ChatService struct {
	cfg         *config.Config
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	store       *sessionstore.Store
	gateway     GatewayInvoker
	bus         *eventbus.Bus
}

func NewChatService(
	cfg *config.Config,
	sessionRepo repository.SessionRepository,
	messageRepo repository.MessageRepository,
	store *sessionstore.Store,
	gw GatewayInvoker,
	bus *eventbus.Bus,
) *ChatService {
	return &ChatService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		store:       store,
		gateway:     gw,
		bus:         bus,
	}
}

// CreateSession 创建新会话
func (s *ChatService) CreateSession(title string) (*model.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultSessionTitle
	}

	session := &model.Session{
		SessionKey: uuid.New().String(),
		Title:      truncateTitle(title),
		Status:     "active",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}

	klog.V(6).Infof("[chat.CreateSession] 会话已创建: key=%s", session.SessionKey)
	return session, nil
}

// GetSession 按会话标识查询会话
func (s *ChatService) GetSession(sessionKey string) (*model.Session, error) {
	return s.sessionRepo.GetByKey(sessionKey)
}

// ListSessions 查询全部会话
func (s *ChatService) ListSessions() ([]model.Session, error) {
	return s.sessionRepo.List()
}

// Transcript 返回会话的全部消息（追加顺序）
func (s *ChatService) Transcript(sessionKey string) ([]model.Message, error) {
	session, err := s.sessionRepo.GetByKey(sessionKey)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.GetBySession(session.ID)
}

// Preview 返回会话当前的预览投影
func (s *ChatService) Preview(sessionKey string) (sessionstore.PreviewState, error) {
	if _, err := s.sessionRepo.GetByKey(sessionKey); err != nil {
		return sessionstore.PreviewState{}, err
	}
	return s.store.Preview(sessionKey), nil
}

// Awaiting 会话是否有在途网关请求
func (s *ChatService) Awaiting(sessionKey string) bool {
	return s.store.Awaiting(sessionKey)
}

// Submit 提交一条用户输入并等待编排结果
// 同一会话同一时刻只允许一个在途请求，期间的再次提交返回 ErrSessionBusy；
// 网关失败与网络异常都转成 assistant 消息写入聊天记录，预览保持不动
func (s *ChatService) Submit(ctx context.Context, sessionKey string, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPrompt
	}

	session, err := s.sessionRepo.GetByKey(sessionKey)
	if err != nil {
		return nil, err
	}

	// 状态机守卫：idle -> awaiting_response，已在途则拒绝
	if err := s.store.BeginRequest(sessionKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionBusy, err)
	}
	// 无论成功失败，落定后回到 idle
	defer s.store.Settle(sessionKey)

	if session.Title == defaultSessionTitle {
		session.Title = truncateTitle(text)
		session.UpdatedAt = time.Now()
		if err := s.sessionRepo.Save(session); err != nil {
			klog.V(6).Infof("[chat.Submit] 更新会话标题失败: %v", err)
		}
	}

	if _, err := s.appendMessage(ctx, session, model.RoleUser, text); err != nil {
		return nil, err
	}

	result, err := s.gateway.Invoke(ctx, text)
	if err != nil {
		// 传输层异常：固定话术，预览不动
		klog.V(6).Infof("[chat.Submit] 网关调用异常: session=%s, error=%v", sessionKey, err)
		return s.appendMessage(ctx, session, model.RoleAssistant, networkErrorMessage)
	}

	if !result.Success {
		// 网关报告失败：原样透出错误文本，预览不动
		errText := result.Error
		if errText == "" {
			errText = gatewayErrorMessage
		}
		klog.V(6).Infof("[chat.Submit] 网关报告失败: session=%s, error=%s", sessionKey, result.Error)
		return s.appendMessage(ctx, session, model.RoleAssistant, errText)
	}

	envelope := result.Envelope()
	payload := normalizer.UnwrapEnvelope(envelope)
	policy, report := normalizer.Normalize(payload)

	if policy != nil || report != nil {
		s.store.ReplacePreview(sessionKey, policy, report)
		s.publish(ctx, eventbus.ChatEvent{
			Type:       eventbus.ChatEventPreviewUpdated,
			SessionKey: sessionKey,
			HasPolicy:  policy != nil,
			HasReport:  report != nil,
		})
	}

	return s.appendMessage(ctx, session, model.RoleAssistant, normalizer.SummaryText(payload, envelope))
}

// appendMessage 追加一条消息并广播事件
func (s *ChatService) appendMessage(ctx context.Context, session *model.Session, role, content string) (*model.Message, error) {
	message := &model.Message{
		MessageID: uuid.New().String(),
		SessionID: session.ID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("追加消息失败: %w", err)
	}

	s.publish(ctx, eventbus.ChatEvent{
		Type:       eventbus.ChatEventMessageAppended,
		SessionKey: session.SessionKey,
		Role:       role,
		MessageID:  message.MessageID,
	})
	return message, nil
}

func (s *ChatService) publish(ctx context.Context, event eventbus.ChatEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		klog.V(6).Infof("[chat.publish] 事件处理失败: type=%s, error=%v", event.Type, err)
	}
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}
	return string(runes[:maxTitleRunes])
}
