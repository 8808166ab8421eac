package model

import "time"

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a sake. Reviews are immutable once created.
type Review struct {
	ID       string    `json:"id"`
	SakeID   string    `json:"sake_id"`
	AuthorID string    `json:"author_id"`
	Rating   int       `json:"rating"`
	Text     string    `json:"text,omitempty"`
	Created  time.Time `json:"created"`
}

// CreateReviewRequest is the payload for attaching a review to a sake
type CreateReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
