package repository

import (
	"errors"

	"github.com/policydraft/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type SessionRepository interface {
	Create(session *model.Session) error
	GetByKey(sessionKey string) (*model.Session, error)
	List() ([]model.Session, error)
	Save(session *model.Session) error
}

// MessageRepository 会话消息仓储
// 消息只追加：没有更新和删除操作
type MessageRepository interface {
	Create(message *model.Message) error
	GetBySession(sessionID uint) ([]model.Message, error)
}

type HistoryRepository interface {
	List() ([]model.PolicyHistory, error)
	Get(id uint) (*model.PolicyHistory, error)
	Count() (int64, error)
	CreateBatch(items []model.PolicyHistory) error
}
