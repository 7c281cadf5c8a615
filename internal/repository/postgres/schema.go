package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the application tables for the given prefix if they
// do not exist yet. Child tables declare ON DELETE CASCADE so deleting a
// user removes their projects, prompts, responses and attachments.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id            UUID PRIMARY KEY,
				username      VARCHAR(50)  NOT NULL UNIQUE,
				email         VARCHAR(100) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				is_admin      BOOLEAN      NOT NULL DEFAULT FALSE,
				created_at    TIMESTAMPTZ  NOT NULL,
				updated_at    TIMESTAMPTZ  NOT NULL
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id          UUID PRIMARY KEY,
				user_id     UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				name        VARCHAR(100) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL
			)
		`, tables.Projects, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				project_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title      VARCHAR(100) NOT NULL,
				content    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Prompts, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				prompt_id  UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				role       VARCHAR(20) NOT NULL,
				content    TEXT NOT NULL,
				metadata   JSONB,
				created_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Responses, tables.Prompts),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				prompt_id  UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				filename   VARCHAR(255) NOT NULL,
				mime_type  VARCHAR(100) NOT NULL DEFAULT 'text/plain',
				content    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Attachments, tables.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_project_id_idx ON %s (project_id, created_at DESC)`,
			tables.Prompts, tables.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_prompt_id_idx ON %s (prompt_id, created_at)`,
			tables.Responses, tables.Responses),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_prompt_id_idx ON %s (prompt_id, created_at)`,
			tables.Attachments, tables.Attachments),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
