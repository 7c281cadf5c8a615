package models

import (
	"time"
)

type Prompt struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ContentPreview returns the first length characters of the prompt content
// for list views, with an ellipsis when truncated.
func (p *Prompt) ContentPreview(length int) string {
	runes := []rune(p.Content)
	if len(runes) <= length {
		return p.Content
	}
	return string(runes[:length]) + "..."
}
