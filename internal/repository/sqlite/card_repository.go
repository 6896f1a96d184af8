package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mesto-server/internal/domain"
	"mesto-server/internal/repository"
)

const (
	createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	link TEXT NOT NULL,
	owner_id TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL
);
`
	// card_likes models the like set; the composite key makes set-insert
	// idempotent at the store level.
	createCardLikesTable = `
CREATE TABLE IF NOT EXISTS card_likes (
	card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	PRIMARY KEY (card_id, user_id)
);
`
)

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCardsTable); err != nil {
		return fmt.Errorf("create cards table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createCardLikesTable); err != nil {
		return fmt.Errorf("create card_likes table: %w", err)
	}
	return nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	card.ID = uuid.NewString()
	card.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, name, link, owner_id, created_at)
VALUES (?, ?, ?, ?, ?)`,
		card.ID,
		card.Name,
		card.Link,
		card.OwnerID,
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *CardRepository) List(ctx context.Context) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, link, owner_id, created_at
FROM cards
ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Link, &card.OwnerID, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	for i := range cards {
		likes, err := r.listLikes(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Likes = likes
	}
	return cards, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, link, owner_id, created_at
FROM cards
WHERE id = ?`,
		id,
	)

	var card domain.Card
	if err := row.Scan(&card.ID, &card.Name, &card.Link, &card.OwnerID, &card.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan card: %w", err)
	}

	likes, err := r.listLikes(ctx, card.ID)
	if err != nil {
		return nil, err
	}
	card.Likes = likes
	return &card, nil
}

// DeleteOwned keys the delete on the owner id so a concurrent delete or an
// ownership change cannot slip between a lookup and the removal.
func (r *CardRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM cards WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CardRepository) AddLike(ctx context.Context, id, userID string) (*domain.Card, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO card_likes (card_id, user_id)
SELECT id, ? FROM cards WHERE id = ?
ON CONFLICT (card_id, user_id) DO NOTHING`,
		userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("insert like: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *CardRepository) RemoveLike(ctx context.Context, id, userID string) (*domain.Card, error) {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM card_likes WHERE card_id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *CardRepository) listLikes(ctx context.Context, cardID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id FROM card_likes WHERE card_id = ? ORDER BY user_id`,
		cardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	var likes []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}
	return likes, nil
}
