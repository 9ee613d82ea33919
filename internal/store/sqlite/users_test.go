package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("user-1", "Alice@Example.com")
	user.IsAdmin = true
	user.Bio = "hello"
	user.Country = "LK"

	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if got.ID != user.ID {
		t.Errorf("ID: got %q, want %q", got.ID, user.ID)
	}
	if got.Email != user.Email {
		t.Errorf("Email: got %q, want %q", got.Email, user.Email)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash: got %q, want %q", got.PasswordHash, user.PasswordHash)
	}
	if !got.IsAdmin {
		t.Error("IsAdmin: expected true")
	}
	if got.Status != domain.UserStatusActive {
		t.Errorf("Status: got %q, want %q", got.Status, domain.UserStatusActive)
	}
	if got.Bio != "hello" {
		t.Errorf("Bio: got %q, want %q", got.Bio, "hello")
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("user-1", "Alice@Example.com")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Lookup with a different casing should find the same account.
	got, err := s.GetUserByEmail(ctx, "ALICE@example.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID: got %q, want user-1", got.ID)
	}
	// Original casing is preserved on the stored record.
	if got.Email != "Alice@Example.com" {
		t.Errorf("Email: got %q, want original casing", got.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "dup@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := s.CreateUser(ctx, makeTestUser("user-2", "DUP@example.com"))
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("user-1", "alice@example.com")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user.Username = "alice_updated"
	user.Status = domain.UserStatusBanned
	user.UpdatedAt = time.Now()
	if err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "alice_updated" {
		t.Errorf("Username: got %q", got.Username)
	}
	if got.Status != domain.UserStatusBanned {
		t.Errorf("Status: got %q, want banned", got.Status)
	}
}

func TestListUsersSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := makeTestUser("user-1", "alice@example.com")
	a.Username = "alice"
	b := makeTestUser("user-2", "bob@example.com")
	b.Username = "bob"
	for _, u := range []*domain.User{a, b} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser %s: %v", u.ID, err)
		}
	}

	users, total, err := s.ListUsers(ctx, "ali", 10, 0)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 1 {
		t.Errorf("total: got %d, want 1", total)
	}
	if len(users) != 1 || users[0].ID != "user-1" {
		t.Errorf("expected only user-1, got %+v", users)
	}

	users, total, err = s.ListUsers(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("ListUsers all: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("expected 2 users, got total=%d len=%d", total, len(users))
	}
}

func TestCountUsersCreatedSince(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := makeTestUser("user-old", "old@example.com")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	recent := makeTestUser("user-new", "new@example.com")
	for _, u := range []*domain.User{old, recent} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser %s: %v", u.ID, err)
		}
	}

	count, err := s.CountUsersCreatedSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CountUsersCreatedSince: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}
}
