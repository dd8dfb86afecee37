package subscriber

import (
	"context"

	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/utils"
	"k8s.io/klog/v2"
)

// ChatEventSubscriber 会话事件的诊断订阅者
// 只做日志输出：归一化与控制器本身不记录业务日志，诊断信息统一走事件
type ChatEventSubscriber struct{}

func NewChatEventSubscriber() *ChatEventSubscriber {
	return &ChatEventSubscriber{}
}

func (s *ChatEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ChatEventMessageAppended, s.handleMessageAppended)
	bus.Subscribe(eventbus.ChatEventPreviewUpdated, s.handlePreviewUpdated)
	bus.Subscribe(eventbus.ChatEventHistorySelected, s.handleHistorySelected)
}

func (s *ChatEventSubscriber) handleMessageAppended(ctx context.Context, event eventbus.ChatEvent) error {
	klog.V(6).Infof("会话消息追加: session=%s, role=%s, messageID=%s", event.SessionKey, event.Role, event.MessageID)
	return nil
}

func (s *ChatEventSubscriber) handlePreviewUpdated(ctx context.Context, event eventbus.ChatEvent) error {
	klog.V(6).Infof("预览已替换: %s", utils.ToJSON(event))
	return nil
}

func (s *ChatEventSubscriber) handleHistorySelected(ctx context.Context, event eventbus.ChatEvent) error {
	// 选择历史条目除了这条诊断日志之外没有任何副作用
	klog.V(6).Infof("历史制度被选中: historyID=%d", event.HistoryID)
	return nil
}
