package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mesto-server/internal/apperr"
	"mesto-server/internal/domain"
	"mesto-server/internal/repository"
)

// CardService coordinates card operations, enforcing id shape and ownership
// before touching the store.
type CardService interface {
	List(ctx context.Context) ([]domain.Card, error)
	Create(ctx context.Context, ownerID, name, link string) (*domain.Card, error)
	Delete(ctx context.Context, cardID, callerID string) error
	Like(ctx context.Context, cardID, callerID string) (*domain.Card, error)
	Unlike(ctx context.Context, cardID, callerID string) (*domain.Card, error)
}

type cardService struct {
	cards repository.CardRepository
}

func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) List(ctx context.Context) ([]domain.Card, error) {
	return s.cards.List(ctx)
}

func (s *cardService) Create(ctx context.Context, ownerID, name, link string) (*domain.Card, error) {
	name = strings.TrimSpace(name)
	link = strings.TrimSpace(link)
	if name == "" || link == "" {
		return nil, apperr.New(apperr.BadRequest, "name and link are required")
	}

	card := &domain.Card{
		Name:    name,
		Link:    link,
		OwnerID: ownerID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Delete confirms existence and ownership, then removes the card with a
// conditional delete keyed on the owner so a concurrent removal surfaces as
// NotFound rather than silently succeeding.
func (s *cardService) Delete(ctx context.Context, cardID, callerID string) error {
	if _, err := uuid.Parse(cardID); err != nil {
		return apperr.New(apperr.BadRequest, "malformed card id")
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "card not found")
		}
		return err
	}
	if card.OwnerID != callerID {
		return apperr.New(apperr.Forbidden, "cannot delete another user's card")
	}

	if err := s.cards.DeleteOwned(ctx, cardID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "card not found")
		}
		return err
	}
	return nil
}

func (s *cardService) Like(ctx context.Context, cardID, callerID string) (*domain.Card, error) {
	if _, err := uuid.Parse(cardID); err != nil {
		return nil, apperr.New(apperr.BadRequest, "malformed card id")
	}

	card, err := s.cards.AddLike(ctx, cardID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "card not found")
		}
		return nil, err
	}
	return card, nil
}

func (s *cardService) Unlike(ctx context.Context, cardID, callerID string) (*domain.Card, error) {
	if _, err := uuid.Parse(cardID); err != nil {
		return nil, apperr.New(apperr.BadRequest, "malformed card id")
	}

	card, err := s.cards.RemoveLike(ctx, cardID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "card not found")
		}
		return nil, err
	}
	return card, nil
}
