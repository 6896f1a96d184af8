package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesto-server/internal/apperr"
)

func TestRegisterReturnsUserWithoutHash(t *testing.T) {
	users, _ := newTestServices(t)

	user := registerTestUser(t, users, "a@b.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	users, _ := newTestServices(t)
	registerTestUser(t, users, "a@b.com")

	_, err := users.Register(context.Background(), RegisterInput{
		Email:    "a@b.com",
		Password: "anotherpass",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.Classify(err).Kind)
}

func TestLoginKinds(t *testing.T) {
	users, _ := newTestServices(t)
	registerTestUser(t, users, "a@b.com")
	ctx := context.Background()

	_, _, err := users.Login(ctx, "", "")
	assert.Equal(t, apperr.BadRequest, apperr.Classify(err).Kind)

	_, _, err = users.Login(ctx, "nobody@b.com", "swordfish42")
	assert.Equal(t, apperr.Unauthorized, apperr.Classify(err).Kind)

	_, _, err = users.Login(ctx, "a@b.com", "wrong-password")
	assert.Equal(t, apperr.Forbidden, apperr.Classify(err).Kind)

	token, email, err := users.Login(ctx, "a@b.com", "swordfish42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@b.com", email)
}

func TestGetByIDValidation(t *testing.T) {
	users, _ := newTestServices(t)
	user := registerTestUser(t, users, "a@b.com")
	ctx := context.Background()

	_, err := users.GetByID(ctx, "not-a-uuid")
	assert.Equal(t, apperr.BadRequest, apperr.Classify(err).Kind)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.Equal(t, apperr.NotFound, apperr.Classify(err).Kind)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestUpdateProfileAndAvatar(t *testing.T) {
	users, _ := newTestServices(t)
	user := registerTestUser(t, users, "a@b.com")
	ctx := context.Background()

	updated, err := users.UpdateProfile(ctx, user.ID, "Marie", "scientist")
	require.NoError(t, err)
	assert.Equal(t, "Marie", updated.Name)
	assert.Equal(t, "scientist", updated.About)

	updated, err = users.UpdateAvatar(ctx, user.ID, "https://example.com/marie.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/marie.png", updated.Avatar)
}
