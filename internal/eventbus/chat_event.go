package eventbus

import "context"

type ChatEventType string

const (
	ChatEventMessageAppended ChatEventType = "MessageAppended"
	ChatEventPreviewUpdated  ChatEventType = "PreviewUpdated"
	ChatEventHistorySelected ChatEventType = "HistorySelected"
)

type ChatEvent struct {
	Type       ChatEventType
	SessionKey string
	Role       string // MessageAppended: user / assistant
	MessageID  string
	HistoryID  uint // HistorySelected
	HasPolicy  bool // PreviewUpdated
	HasReport  bool // PreviewUpdated
}

type ChatEventHandler func(ctx context.Context, event ChatEvent) error
