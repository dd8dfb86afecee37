package model

import (
	"time"
)

type Session struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SessionKey string    `json:"session_key" gorm:"size:64;uniqueIndex;not null"` // UUID
	Title      string    `json:"title" gorm:"size:255"`
	Status     string    `json:"status" gorm:"size:50;default:active"` // active, closed
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Messages   []Message `json:"messages,omitempty" gorm:"foreignKey:SessionID"`
}

// Message 会话消息，只追加不修改
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MessageID string    `json:"message_id" gorm:"size:64;uniqueIndex"` // UUID
	SessionID uint      `json:"session_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"size:20;not null"` // user, assistant
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PolicyHistory 侧边栏展示的制度清单，启动时预置，只读
type PolicyHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Category  string    `json:"category" gorm:"size:100"`
	Status    string    `json:"status" gorm:"size:50;default:draft"` // draft, active, archived
	UpdatedAt time.Time `json:"updated_at"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	IsSeed    bool      `json:"is_seed" gorm:"default:true"`
}
