package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/animexapp/animex-server/internal/errors"
)

func TestProfileUpdatePartial(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, newTestValidator(), testLogger())
	ctx := context.Background()
	user := createTestUser(t, s, "user-1", "one@example.com")

	bio := "watching since 2009"
	updated, err := svc.Update(ctx, user.ID, UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "watching since 2009", updated.Bio)
	assert.Equal(t, user.Username, updated.Username, "untouched fields survive")
	assert.Equal(t, user.Email, updated.Email)
}

func TestProfileUpdateNormalizesLanguageAndCountry(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, newTestValidator(), testLogger())
	ctx := context.Background()
	user := createTestUser(t, s, "user-1", "one@example.com")

	lang := "Sinhala"
	country := "sri lanka"
	updated, err := svc.Update(ctx, user.ID, UpdateProfileRequest{
		Language: &lang,
		Country:  &country,
	})
	require.NoError(t, err)
	assert.Equal(t, "si", updated.Language)
	assert.Equal(t, "LK", updated.Country)

	bad := "klingon"
	_, err = svc.Update(ctx, user.ID, UpdateProfileRequest{Language: &bad})
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestProfileChangePassword(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s, newTestValidator(), testLogger())
	ctx := context.Background()
	user := createTestUser(t, s, "user-1", "one@example.com")

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "a-new-password",
	})
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "a-new-password",
	})
	require.NoError(t, err)
}
