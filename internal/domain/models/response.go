package models

import (
	"time"
)

// Role identifies the speaker of a conversation entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ValidRole reports whether r is one of the known conversation roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// PromptResponse is a single entry in a prompt's conversation. Responses are
// immutable once created and are listed in creation order.
type PromptResponse struct {
	ID        string                 `json:"id" db:"id"`
	PromptID  string                 `json:"prompt_id" db:"prompt_id"`
	Role      Role                   `json:"role" db:"role"`
	Content   string                 `json:"content" db:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
