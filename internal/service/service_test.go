package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mesto-server/internal/auth"
	"mesto-server/internal/domain"
	"mesto-server/internal/repository/sqlite"
)

func newTestServices(t *testing.T) (UserService, CardService) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	cardRepo := sqlite.NewCardRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, cardRepo.Init(ctx))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(userRepo, tokens), NewCardService(cardRepo)
}

func registerTestUser(t *testing.T, users UserService, email string) *domain.User {
	t.Helper()

	user, err := users.Register(context.Background(), RegisterInput{
		Name:     "Jacques",
		About:    "explorer",
		Email:    email,
		Password: "swordfish42",
	})
	require.NoError(t, err)
	return user
}
