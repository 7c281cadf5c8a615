package service

import (
	"context"
	"errors"
	"testing"

	"promptvault/internal/auth"
	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/services"
)

type userFixture struct {
	svc        services.UserService
	store      *fakeStore
	adminID    string
	regularID  string
	admin      models.Identity
	regular    models.Identity
	otherID    string
	other      models.Identity
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store := newFakeStore()
	repo := &fakeUserRepo{store: store}
	svc := NewUserService(repo, testLogger())

	ctx := context.Background()
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	adminUser := &models.User{Username: "root", Email: "root@example.com", PasswordHash: hash, IsAdmin: true}
	regularUser := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: hash}
	otherUser := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: hash}
	for _, u := range []*models.User{adminUser, regularUser, otherUser} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create(%q) error = %v", u.Username, err)
		}
	}

	return &userFixture{
		svc:       svc,
		store:     store,
		adminID:   adminUser.ID,
		regularID: regularUser.ID,
		otherID:   otherUser.ID,
		admin:     models.Identity{UserID: adminUser.ID, Username: "root", IsAdmin: true},
		regular:   models.Identity{UserID: regularUser.ID, Username: "alice"},
		other:     models.Identity{UserID: otherUser.ID, Username: "bob"},
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)

	if _, err := f.svc.ListUsers(ctx, f.regular); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("ListUsers() error = %v, want ErrForbidden", err)
	}

	users, err := f.svc.ListUsers(ctx, f.admin)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 3 {
		t.Errorf("got %d users, want 3", len(users))
	}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)

	t.Run("self always works", func(t *testing.T) {
		user, err := f.svc.GetUser(ctx, f.regular, f.regularID)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Username = %q, want %q", user.Username, "alice")
		}
	})

	t.Run("non-admin reading someone else gets not found", func(t *testing.T) {
		_, err := f.svc.GetUser(ctx, f.regular, f.otherID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetUser() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		user, err := f.svc.GetUser(ctx, f.admin, f.otherID)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if user.Username != "bob" {
			t.Errorf("Username = %q, want %q", user.Username, "bob")
		}
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates with explicit admin flag", func(t *testing.T) {
		f := newUserFixture(t)

		user, err := f.svc.CreateUser(ctx, f.admin, &services.CreateUserRequest{
			Username:        "carol",
			Email:           "carol@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			IsAdmin:         true,
		})
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
		if !user.IsAdmin {
			t.Error("IsAdmin = false, want true")
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.svc.CreateUser(ctx, f.regular, &services.CreateUserRequest{
			Username:        "carol",
			Email:           "carol@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("CreateUser() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.svc.CreateUser(ctx, f.admin, &services.CreateUserRequest{
			Username:        "alice",
			Email:           "new@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("CreateUser() error = %v, want ErrConflict", err)
		}
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self-update keeps the same values unique", func(t *testing.T) {
		f := newUserFixture(t)

		// Re-submitting your own username must not read as a conflict
		user, err := f.svc.UpdateUser(ctx, f.regular, f.regularID, &services.UpdateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Username = %q, want %q", user.Username, "alice")
		}
	})

	t.Run("taking someone else's username conflicts", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.svc.UpdateUser(ctx, f.regular, f.regularID, &services.UpdateUserRequest{
			Username: "bob",
			Email:    "alice@example.com",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("UpdateUser() error = %v, want ErrConflict", err)
		}
	})

	t.Run("non-admin cannot update someone else", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.svc.UpdateUser(ctx, f.regular, f.otherID, &services.UpdateUserRequest{
			Username: "hijacked",
			Email:    "hijacked@example.com",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpdateUser() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("admin flag only changes for admin actors", func(t *testing.T) {
		f := newUserFixture(t)
		wantAdmin := true

		// Non-admin setting is_admin on themselves is silently ignored
		user, err := f.svc.UpdateUser(ctx, f.regular, f.regularID, &services.UpdateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			IsAdmin:  &wantAdmin,
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if user.IsAdmin {
			t.Error("non-admin escalated themselves to admin")
		}

		// Admin setting it works
		user, err = f.svc.UpdateUser(ctx, f.admin, f.regularID, &services.UpdateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			IsAdmin:  &wantAdmin,
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if !user.IsAdmin {
			t.Error("admin could not grant the admin flag")
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the current password", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.ChangePassword(ctx, f.regular, f.regularID, &services.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newsecret",
			ConfirmPassword: "newsecret",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ChangePassword() error = %v, want ErrValidation", err)
		}
	})

	t.Run("changes with the correct current password", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.ChangePassword(ctx, f.regular, f.regularID, &services.ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "newsecret",
			ConfirmPassword: "newsecret",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}

		stored := f.store.users[f.regularID]
		if !auth.CheckPasswordHash("newsecret", stored.PasswordHash) {
			t.Error("new password does not verify against the stored hash")
		}
	})

	t.Run("admin skips current-password verification for others", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.ChangePassword(ctx, f.admin, f.regularID, &services.ChangePasswordRequest{
			NewPassword:     "resetsecret",
			ConfirmPassword: "resetsecret",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
	})

	t.Run("mismatched confirmation is rejected", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.ChangePassword(ctx, f.regular, f.regularID, &services.ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "newsecret",
			ConfirmPassword: "different",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ChangePassword() error = %v, want ErrValidation", err)
		}
	})

	t.Run("non-admin cannot change someone else's", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.ChangePassword(ctx, f.regular, f.otherID, &services.ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "newsecret",
			ConfirmPassword: "newsecret",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ChangePassword() error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin is forbidden", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.DeleteUser(ctx, f.regular, f.otherID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("DeleteUser() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("self-deletion is rejected", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.DeleteUser(ctx, f.admin, f.adminID)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("DeleteUser() error = %v, want ErrValidation", err)
		}
	})

	t.Run("admin deletes and projects cascade", func(t *testing.T) {
		f := newUserFixture(t)

		projectRepo := &fakeProjectRepo{store: f.store}
		promptRepo := &fakePromptRepo{store: f.store}
		project := &models.Project{UserID: f.regularID, Name: "doomed"}
		if err := projectRepo.Create(ctx, project); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		prompt := &models.Prompt{ProjectID: project.ID, Title: "t", Content: "c"}
		if err := promptRepo.Create(ctx, prompt); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if err := f.svc.DeleteUser(ctx, f.admin, f.regularID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		if len(f.store.projects) != 0 {
			t.Errorf("store has %d projects after cascade, want 0", len(f.store.projects))
		}
		if len(f.store.prompts) != 0 {
			t.Errorf("store has %d prompts after cascade, want 0", len(f.store.prompts))
		}
		if _, err := f.svc.GetUser(ctx, f.admin, f.regularID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetUser() after delete error = %v, want ErrNotFound", err)
		}
	})
}
