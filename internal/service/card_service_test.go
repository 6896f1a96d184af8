package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesto-server/internal/apperr"
	"mesto-server/internal/domain"
)

func createTestCard(t *testing.T, cards CardService, ownerID string) *domain.Card {
	t.Helper()

	card, err := cards.Create(context.Background(), ownerID, "Baikal", "https://example.com/baikal.jpg")
	require.NoError(t, err)
	return card
}

func TestLikeIsIdempotent(t *testing.T) {
	users, cards := newTestServices(t)
	owner := registerTestUser(t, users, "owner@b.com")
	card := createTestCard(t, cards, owner.ID)
	ctx := context.Background()

	liked, err := cards.Like(ctx, card.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, liked.Likes)

	liked, err = cards.Like(ctx, card.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, liked.Likes)
}

func TestUnlikeWithoutPriorLikeIsNoop(t *testing.T) {
	users, cards := newTestServices(t)
	owner := registerTestUser(t, users, "owner@b.com")
	other := registerTestUser(t, users, "other@b.com")
	card := createTestCard(t, cards, owner.ID)
	ctx := context.Background()

	_, err := cards.Like(ctx, card.ID, owner.ID)
	require.NoError(t, err)

	got, err := cards.Unlike(ctx, card.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, got.Likes)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	users, cards := newTestServices(t)
	owner := registerTestUser(t, users, "owner@b.com")
	intruder := registerTestUser(t, users, "intruder@b.com")
	card := createTestCard(t, cards, owner.ID)
	ctx := context.Background()

	err := cards.Delete(ctx, card.ID, intruder.ID)
	assert.Equal(t, apperr.Forbidden, apperr.Classify(err).Kind)

	// still present after the refused delete
	got, err := cards.Like(ctx, card.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	require.NoError(t, cards.Delete(ctx, card.ID, owner.ID))

	err = cards.Delete(ctx, card.ID, owner.ID)
	assert.Equal(t, apperr.NotFound, apperr.Classify(err).Kind)
}

func TestCardIDValidation(t *testing.T) {
	users, cards := newTestServices(t)
	caller := registerTestUser(t, users, "caller@b.com")
	ctx := context.Background()

	err := cards.Delete(ctx, "12345", caller.ID)
	assert.Equal(t, apperr.BadRequest, apperr.Classify(err).Kind)

	_, err = cards.Like(ctx, "12345", caller.ID)
	assert.Equal(t, apperr.BadRequest, apperr.Classify(err).Kind)

	_, err = cards.Like(ctx, uuid.NewString(), caller.ID)
	assert.Equal(t, apperr.NotFound, apperr.Classify(err).Kind)

	_, err = cards.Unlike(ctx, uuid.NewString(), caller.ID)
	assert.Equal(t, apperr.NotFound, apperr.Classify(err).Kind)
}

func TestDeletedCardLikesAreDropped(t *testing.T) {
	users, cards := newTestServices(t)
	owner := registerTestUser(t, users, "owner@b.com")
	card := createTestCard(t, cards, owner.ID)
	ctx := context.Background()

	_, err := cards.Like(ctx, card.ID, owner.ID)
	require.NoError(t, err)
	require.NoError(t, cards.Delete(ctx, card.ID, owner.ID))

	listed, err := cards.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
