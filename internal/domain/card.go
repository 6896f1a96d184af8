package domain

import "time"

// Card is a shared photo entry. OwnerID is fixed at creation; Likes holds
// each user id at most once.
type Card struct {
	ID        string
	Name      string
	Link      string
	OwnerID   string
	Likes     []string
	CreatedAt time.Time
}
