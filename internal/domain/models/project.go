package models

import (
	"time"
)

type Project struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DashboardStats aggregates a user's projects for the dashboard view:
// total counts plus the most recently created projects.
type DashboardStats struct {
	TotalProjects  int       `json:"total_projects"`
	TotalPrompts   int       `json:"total_prompts"`
	RecentProjects []Project `json:"recent_projects"`
}
