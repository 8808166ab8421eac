package repository

import (
	"context"
	"errors"

	"github.com/chrisueda/sakewalk/internal/database"
	"github.com/chrisueda/sakewalk/internal/model"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a new review and fills in its ID and creation time.
// Reviews are immutable; there is no update path.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		CREATE review CONTENT {
			sake: type::record($sake),
			author: type::record($author),
			rating: $rating,
			text: $text,
			created: time::now()
		}
	`
	vars := map[string]interface{}{
		"sake":   review.SakeID,
		"author": review.AuthorID,
		"rating": review.Rating,
		"text":   review.Text,
	}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	created, err := parseReview(row)
	if err != nil {
		return err
	}
	review.ID = created.ID
	review.Created = created.Created
	return nil
}

// ListBySake retrieves the reviews of a sake, newest first
func (r *ReviewRepository) ListBySake(ctx context.Context, sakeID string) ([]*model.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM review WHERE sake = type::record($sake) ORDER BY created DESC`,
		map[string]interface{}{"sake": sakeID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return []*model.Review{}, nil
		}
		return nil, err
	}

	out := make([]*model.Review, 0, len(rows))
	for _, row := range rows {
		review, err := parseReview(row)
		if err != nil {
			continue
		}
		out = append(out, review)
	}
	return out, nil
}

func parseReview(row interface{}) (*model.Review, error) {
	m, ok := asObject(row)
	if !ok {
		return nil, errors.New("unexpected review row format")
	}
	return &model.Review{
		ID:       recordID(m["id"]),
		SakeID:   recordID(m["sake"]),
		AuthorID: recordID(m["author"]),
		Rating:   getInt(m, "rating"),
		Text:     getString(m, "text"),
		Created:  getTime(m, "created"),
	}, nil
}
