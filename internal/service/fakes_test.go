package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// fakeStore is an in-memory stand-in for the postgres repositories. It
// mirrors their contracts: ownership-scoped lookups, newest-first project
// and prompt listings, and cascading deletes down the chain.
type fakeStore struct {
	users       map[string]*models.User
	projects    map[string]*models.Project
	prompts     map[string]*models.Prompt
	responses   map[string]*models.PromptResponse
	attachments map[string]*models.Attachment

	// insertion order, stands in for created_at ordering
	userOrder       []string
	projectOrder    []string
	promptOrder     []string
	responseOrder   []string
	attachmentOrder []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*models.User),
		projects:    make(map[string]*models.Project),
		prompts:     make(map[string]*models.Prompt),
		responses:   make(map[string]*models.PromptResponse),
		attachments: make(map[string]*models.Attachment),
	}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.store.users {
		if u.Username == user.Username {
			return &domain.ConflictError{Message: "username already exists", ResourceType: "user", Field: "username"}
		}
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "email already registered", ResourceType: "user", Field: "email"}
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	copied := *user
	r.store.users[user.ID] = &copied
	r.store.userOrder = append(r.store.userOrder, user.ID)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(r.store.userOrder))
	for _, id := range r.store.userOrder {
		if u, ok := r.store.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.users, id)
	projects := &fakeProjectRepo{store: r.store}
	for pid, p := range r.store.projects {
		if p.UserID == id {
			_ = projects.cascadeDelete(pid)
		}
	}
	return nil
}

type fakeProjectRepo struct{ store *fakeStore }

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	copied := *project
	r.store.projects[project.ID] = &copied
	r.store.projectOrder = append(r.store.projectOrder, project.ID)
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	p, ok := r.store.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	for i := len(r.store.projectOrder) - 1; i >= 0; i-- {
		if p, ok := r.store.projects[r.store.projectOrder[i]]; ok && p.UserID == userID {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	existing, ok := r.store.projects[project.ID]
	if !ok || existing.UserID != project.UserID {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	copied := *project
	r.store.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id, userID string) error {
	p, ok := r.store.projects[id]
	if !ok || p.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return r.cascadeDelete(id)
}

func (r *fakeProjectRepo) cascadeDelete(id string) error {
	delete(r.store.projects, id)
	prompts := &fakePromptRepo{store: r.store}
	for pid, p := range r.store.prompts {
		if p.ProjectID == id {
			prompts.cascadeDelete(pid)
		}
	}
	return nil
}

func (r *fakeProjectRepo) CountPrompts(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, prompt := range r.store.prompts {
		if p, ok := r.store.projects[prompt.ProjectID]; ok && p.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakePromptRepo struct{ store *fakeStore }

func (r *fakePromptRepo) Create(ctx context.Context, prompt *models.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	copied := *prompt
	r.store.prompts[prompt.ID] = &copied
	r.store.promptOrder = append(r.store.promptOrder, prompt.ID)
	return nil
}

func (r *fakePromptRepo) GetByID(ctx context.Context, id, projectID, userID string) (*models.Prompt, error) {
	p, ok := r.store.prompts[id]
	if !ok || p.ProjectID != projectID {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	project, ok := r.store.projects[p.ProjectID]
	if !ok || project.UserID != userID {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePromptRepo) ListByProject(ctx context.Context, projectID, userID string) ([]models.Prompt, error) {
	project, ok := r.store.projects[projectID]
	if !ok || project.UserID != userID {
		return nil, nil
	}
	var prompts []models.Prompt
	for i := len(r.store.promptOrder) - 1; i >= 0; i-- {
		if p, ok := r.store.prompts[r.store.promptOrder[i]]; ok && p.ProjectID == projectID {
			prompts = append(prompts, *p)
		}
	}
	return prompts, nil
}

func (r *fakePromptRepo) Update(ctx context.Context, prompt *models.Prompt) error {
	if _, ok := r.store.prompts[prompt.ID]; !ok {
		return fmt.Errorf("prompt %s: %w", prompt.ID, domain.ErrNotFound)
	}
	copied := *prompt
	r.store.prompts[prompt.ID] = &copied
	return nil
}

func (r *fakePromptRepo) Delete(ctx context.Context, id, projectID, userID string) error {
	if _, err := r.GetByID(ctx, id, projectID, userID); err != nil {
		return err
	}
	r.cascadeDelete(id)
	return nil
}

func (r *fakePromptRepo) cascadeDelete(id string) {
	delete(r.store.prompts, id)
	for rid, response := range r.store.responses {
		if response.PromptID == id {
			delete(r.store.responses, rid)
		}
	}
	for aid, attachment := range r.store.attachments {
		if attachment.PromptID == id {
			delete(r.store.attachments, aid)
		}
	}
}

func (r *fakePromptRepo) Search(ctx context.Context, userID, term string) ([]models.Prompt, error) {
	needle := strings.ToLower(term)
	var prompts []models.Prompt
	for i := len(r.store.promptOrder) - 1; i >= 0; i-- {
		p, ok := r.store.prompts[r.store.promptOrder[i]]
		if !ok {
			continue
		}
		project, ok := r.store.projects[p.ProjectID]
		if !ok || project.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) {
			prompts = append(prompts, *p)
		}
	}
	return prompts, nil
}

type fakeResponseRepo struct{ store *fakeStore }

func (r *fakeResponseRepo) Create(ctx context.Context, response *models.PromptResponse) error {
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	copied := *response
	r.store.responses[response.ID] = &copied
	r.store.responseOrder = append(r.store.responseOrder, response.ID)
	return nil
}

func (r *fakeResponseRepo) ListByPrompt(ctx context.Context, promptID string) ([]models.PromptResponse, error) {
	var responses []models.PromptResponse
	for _, id := range r.store.responseOrder {
		if resp, ok := r.store.responses[id]; ok && resp.PromptID == promptID {
			responses = append(responses, *resp)
		}
	}
	return responses, nil
}

type fakeAttachmentRepo struct{ store *fakeStore }

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.New().String()
	}
	copied := *attachment
	r.store.attachments[attachment.ID] = &copied
	r.store.attachmentOrder = append(r.store.attachmentOrder, attachment.ID)
	return nil
}

func (r *fakeAttachmentRepo) GetByID(ctx context.Context, id, promptID string) (*models.Attachment, error) {
	a, ok := r.store.attachments[id]
	if !ok || a.PromptID != promptID {
		return nil, fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAttachmentRepo) ListByPrompt(ctx context.Context, promptID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	for _, id := range r.store.attachmentOrder {
		if a, ok := r.store.attachments[id]; ok && a.PromptID == promptID {
			attachments = append(attachments, *a)
		}
	}
	return attachments, nil
}

func (r *fakeAttachmentRepo) CountByPrompt(ctx context.Context, promptID string) (int, error) {
	count := 0
	for _, a := range r.store.attachments {
		if a.PromptID == promptID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttachmentRepo) Update(ctx context.Context, attachment *models.Attachment) error {
	existing, ok := r.store.attachments[attachment.ID]
	if !ok || existing.PromptID != attachment.PromptID {
		return fmt.Errorf("attachment %s: %w", attachment.ID, domain.ErrNotFound)
	}
	copied := *attachment
	r.store.attachments[attachment.ID] = &copied
	return nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, id, promptID string) error {
	a, ok := r.store.attachments[id]
	if !ok || a.PromptID != promptID {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.attachments, id)
	return nil
}

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
