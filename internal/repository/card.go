package repository

import (
	"context"

	"mesto-server/internal/domain"
)

// CardRepository defines persistence operations for Card entities.
type CardRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, card *domain.Card) error
	List(ctx context.Context) ([]domain.Card, error)
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	// DeleteOwned removes the card only when ownerID matches the stored
	// owner, as a single conditional statement. Returns ErrNotFound when
	// nothing was deleted.
	DeleteOwned(ctx context.Context, id, ownerID string) error
	// AddLike inserts userID into the card's like set if not already
	// present and returns the refreshed card.
	AddLike(ctx context.Context, id, userID string) (*domain.Card, error)
	// RemoveLike drops userID from the card's like set, succeeding even
	// when the user never liked the card.
	RemoveLike(ctx context.Context, id, userID string) (*domain.Card, error)
}
