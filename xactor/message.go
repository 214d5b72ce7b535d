package xactor

import (
	"time"

	"github.com/google/uuid"
)

// MessageType 消息类型
type MessageType string

const (
	// MessageTypeProcess 请求 actor 处理 payload 并返回结果
	MessageTypeProcess MessageType = "PROCESS"
	// MessageTypeQuery 只读查询，actor 不应更新自身状态
	MessageTypeQuery MessageType = "QUERY"
)

// Message 一次 dispatch 的信封，每次调用新建，不持久化
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage 创建消息，ID 与 Timestamp 自动填充
func NewMessage(typ MessageType, sender, recipient string, payload any) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Type:      typ,
		Payload:   payload,
		Sender:    sender,
		Recipient: recipient,
		Timestamp: time.Now(),
	}
}
