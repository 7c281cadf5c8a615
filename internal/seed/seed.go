// Package seed loads a YAML manifest of users, projects, prompts,
// responses and attachments into the database for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"promptvault/internal/auth"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// Manifest is the root of a seed file.
type Manifest struct {
	Users []UserSeed `yaml:"users"`
}

// UserSeed describes a user and everything they own. Password is plaintext
// in the manifest and bcrypt-hashed on insert.
type UserSeed struct {
	Username string        `yaml:"username"`
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	IsAdmin  bool          `yaml:"is_admin"`
	Projects []ProjectSeed `yaml:"projects"`
}

type ProjectSeed struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Prompts     []PromptSeed `yaml:"prompts"`
}

type PromptSeed struct {
	Title       string                 `yaml:"title"`
	Content     string                 `yaml:"content"`
	Responses   []ResponseSeed         `yaml:"responses"`
	Attachments []AttachmentSeed       `yaml:"attachments"`
}

type ResponseSeed struct {
	Role     string                 `yaml:"role"`
	Content  string                 `yaml:"content"`
	Metadata map[string]interface{} `yaml:"metadata"`
}

type AttachmentSeed struct {
	Filename string `yaml:"filename"`
	MimeType string `yaml:"mime_type"`
	Content  string `yaml:"content"`
}

// LoadManifest reads and parses a YAML seed manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Seeder inserts manifest data through the repositories so the same
// ID minting and constraints apply as in the live API.
type Seeder struct {
	userRepo       repositories.UserRepository
	projectRepo    repositories.ProjectRepository
	promptRepo     repositories.PromptRepository
	responseRepo   repositories.ResponseRepository
	attachmentRepo repositories.AttachmentRepository
	logger         *slog.Logger
}

func NewSeeder(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	promptRepo repositories.PromptRepository,
	responseRepo repositories.ResponseRepository,
	attachmentRepo repositories.AttachmentRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		promptRepo:     promptRepo,
		responseRepo:   responseRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

// Apply inserts every user in the manifest along with their projects,
// prompts, responses and attachments. Users that already exist (by
// username) are skipped entirely so Apply is safe to re-run.
func (s *Seeder) Apply(ctx context.Context, m *Manifest) error {
	for i := range m.Users {
		if err := s.applyUser(ctx, &m.Users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyUser(ctx context.Context, us *UserSeed) error {
	if existing, err := s.userRepo.GetByUsername(ctx, us.Username); err == nil && existing != nil {
		s.logger.Info("seed: user exists, skipping", "username", us.Username)
		return nil
	}

	hash, err := auth.HashPassword(us.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password for %q: %w", us.Username, err)
	}

	now := time.Now()
	user := &models.User{
		Username:     us.Username,
		Email:        us.Email,
		PasswordHash: hash,
		IsAdmin:      us.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user %q: %w", us.Username, err)
	}
	s.logger.Info("seed: user created", "username", us.Username, "is_admin", us.IsAdmin)

	for i := range us.Projects {
		if err := s.applyProject(ctx, user.ID, &us.Projects[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyProject(ctx context.Context, userID string, ps *ProjectSeed) error {
	now := time.Now()
	project := &models.Project{
		UserID:      userID,
		Name:        ps.Name,
		Description: ps.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project %q: %w", ps.Name, err)
	}

	for i := range ps.Prompts {
		if err := s.applyPrompt(ctx, project.ID, &ps.Prompts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyPrompt(ctx context.Context, projectID string, pr *PromptSeed) error {
	now := time.Now()
	prompt := &models.Prompt{
		ProjectID: projectID,
		Title:     pr.Title,
		Content:   pr.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return fmt.Errorf("failed to create prompt %q: %w", pr.Title, err)
	}

	for i, rs := range pr.Responses {
		response := &models.PromptResponse{
			PromptID: prompt.ID,
			Role:     models.Role(rs.Role),
			Content:  rs.Content,
			Metadata: rs.Metadata,
			// Staggered timestamps keep the manifest's conversation
			// order under created_at ASC.
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
		if err := s.responseRepo.Create(ctx, response); err != nil {
			return fmt.Errorf("failed to create response for %q: %w", pr.Title, err)
		}
	}

	for _, as := range pr.Attachments {
		attachment := &models.Attachment{
			PromptID:  prompt.ID,
			Filename:  as.Filename,
			MimeType:  as.MimeType,
			Content:   as.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
			return fmt.Errorf("failed to create attachment %q: %w", as.Filename, err)
		}
	}
	return nil
}
