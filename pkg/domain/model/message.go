package model

import "github.com/hutarka-ai/hutarka/pkg/domain/types"

// Message is a single conversation entry. It is immutable once created.
type Message struct {
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
}

// NewSystemMessage creates a system-role message
func NewSystemMessage(content string) Message {
	return Message{Role: types.RoleSystem, Content: content}
}

// NewUserMessage creates a user-role message
func NewUserMessage(content string) Message {
	return Message{Role: types.RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role message
func NewAssistantMessage(content string) Message {
	return Message{Role: types.RoleAssistant, Content: content}
}

// TruncateMessages returns the most recent entries within the given limit,
// preserving their relative order. The input slice is not modified.
func TruncateMessages(msgs []Message, limit int) []Message {
	if limit <= 0 || len(msgs) <= limit {
		return msgs
	}
	return msgs[len(msgs)-limit:]
}
