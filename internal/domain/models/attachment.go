package models

import (
	"time"
)

// Attachment is a text file attached to a prompt. Only text-like MIME types
// are accepted; binary uploads are rejected at validation time.
type Attachment struct {
	ID        string    `json:"id" db:"id"`
	PromptID  string    `json:"prompt_id" db:"prompt_id"`
	Filename  string    `json:"filename" db:"filename"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
