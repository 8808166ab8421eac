package repository

import (
	"context"
	"errors"

	"github.com/chrisueda/sakewalk/internal/database"
	"github.com/chrisueda/sakewalk/internal/model"
)

// SakeRepository handles sake data access
type SakeRepository struct {
	db database.Database
}

// NewSakeRepository creates a new sake repository
func NewSakeRepository(db database.Database) *SakeRepository {
	return &SakeRepository{db: db}
}

// Create persists a new sake and fills in its ID and creation time
func (r *SakeRepository) Create(ctx context.Context, sake *model.Sake) error {
	query := `
		CREATE sake CONTENT {
			name: $name,
			slug: $slug,
			description: $description,
			tags: $tags,
			main_category: $main_category,
			secondary_category: $secondary_category,
			photo: $photo,
			created: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":               sake.Name,
		"slug":               sake.Slug,
		"description":        sake.Description,
		"tags":               sake.Tags,
		"main_category":      sake.MainCategory,
		"secondary_category": sake.SecondaryCategory,
		"photo":              sake.Photo,
	}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	created, err := parseSake(row)
	if err != nil {
		return err
	}
	sake.ID = created.ID
	sake.Created = created.Created
	return nil
}

// Update overwrites the mutable fields of a sake
func (r *SakeRepository) Update(ctx context.Context, sake *model.Sake) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			slug = $slug,
			description = $description,
			tags = $tags,
			main_category = $main_category,
			secondary_category = $secondary_category,
			photo = $photo
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":                 sake.ID,
		"name":               sake.Name,
		"slug":               sake.Slug,
		"description":        sake.Description,
		"tags":               sake.Tags,
		"main_category":      sake.MainCategory,
		"secondary_category": sake.SecondaryCategory,
		"photo":              sake.Photo,
	}
	_, err := r.db.QueryOne(ctx, query, vars)
	return err
}

// GetByID retrieves a sake by record ID
func (r *SakeRepository) GetByID(ctx context.Context, id string) (*model.Sake, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSake(row)
}

// GetBySlug retrieves a sake by slug with its reviews joined at read time
func (r *SakeRepository) GetBySlug(ctx context.Context, slug string) (*model.Sake, error) {
	query := `
		SELECT *,
			(SELECT * FROM review WHERE sake = $parent.id ORDER BY created DESC) AS reviews
		FROM sake
		WHERE slug = $slug
	`
	row, err := r.db.QueryOne(ctx, query, map[string]interface{}{"slug": slug})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSake(row)
}

// List retrieves all sakes, newest first
func (r *SakeRepository) List(ctx context.Context) ([]*model.Sake, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM sake ORDER BY created DESC`, nil)
	if err != nil {
		return nil, err
	}
	return parseSakes(rows)
}

// Page retrieves one page of sakes, newest first
func (r *SakeRepository) Page(ctx context.Context, skip, limit int) ([]*model.Sake, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM sake ORDER BY created DESC LIMIT $limit START $skip`,
		map[string]interface{}{"limit": limit, "skip": skip})
	if err != nil {
		return nil, err
	}
	return parseSakes(rows)
}

// Count returns the total number of sakes
func (r *SakeRepository) Count(ctx context.Context) (int, error) {
	row, err := r.db.QueryOne(ctx, `SELECT count() AS count FROM sake GROUP ALL`, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if m, ok := asObject(row); ok {
		return getInt(m, "count"), nil
	}
	return 0, nil
}

// SlugsMatching returns the existing slugs matching the given anchored
// regular expression, used by slug collision resolution.
func (r *SakeRepository) SlugsMatching(ctx context.Context, pattern string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT VALUE slug FROM sake WHERE string::matches(slug, $pattern)`,
		map[string]interface{}{"pattern": pattern})
	if err != nil {
		return nil, err
	}
	return parseSlugRows(rows), nil
}

// ListTags aggregates distinct tag values with their usage counts,
// descending by count.
func (r *SakeRepository) ListTags(ctx context.Context) ([]model.TagCount, error) {
	query := `
		SELECT tag, count() AS count FROM (
			SELECT tags AS tag FROM sake SPLIT tag
		)
		GROUP BY tag
		ORDER BY count DESC
	`
	rows, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return parseTagCounts(rows), nil
}

// ByTag retrieves sakes carrying the given tag, newest first
func (r *SakeRepository) ByTag(ctx context.Context, tag string) ([]*model.Sake, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM sake WHERE $tag INSIDE tags ORDER BY created DESC`,
		map[string]interface{}{"tag": tag})
	if err != nil {
		return nil, err
	}
	return parseSakes(rows)
}

// WithRatings retrieves every sake joined to the raw rating values of its
// reviews. The top-rated filter, mean and ordering are applied by the
// service over this result.
func (r *SakeRepository) WithRatings(ctx context.Context) ([]*model.SakeWithRatings, error) {
	query := `
		SELECT *,
			(SELECT VALUE rating FROM review WHERE sake = $parent.id) AS ratings
		FROM sake
	`
	rows, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	out := make([]*model.SakeWithRatings, 0, len(rows))
	for _, row := range rows {
		m, ok := asObject(row)
		if !ok {
			continue
		}
		sake, err := parseSake(row)
		if err != nil {
			continue
		}
		out = append(out, &model.SakeWithRatings{Sake: sake, Ratings: getIntSlice(m, "ratings")})
	}
	return out, nil
}

// ByIDs retrieves the sakes whose record IDs are in ids (a user's hearts)
func (r *SakeRepository) ByIDs(ctx context.Context, ids []string) ([]*model.Sake, error) {
	if len(ids) == 0 {
		return []*model.Sake{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT * FROM sake WHERE type::string(id) INSIDE $ids ORDER BY created DESC`,
		map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, err
	}
	return parseSakes(rows)
}

func parseSake(row interface{}) (*model.Sake, error) {
	m, ok := asObject(row)
	if !ok {
		return nil, errors.New("unexpected sake row format")
	}
	sake := &model.Sake{
		ID:                recordID(m["id"]),
		Name:              getString(m, "name"),
		Slug:              getString(m, "slug"),
		Description:       getString(m, "description"),
		Tags:              getStringSlice(m, "tags"),
		MainCategory:      getString(m, "main_category"),
		SecondaryCategory: getString(m, "secondary_category"),
		Created:           getTime(m, "created"),
		Photo:             getString(m, "photo"),
	}

	if joined, ok := m["reviews"].([]interface{}); ok {
		for _, rr := range joined {
			review, err := parseReview(rr)
			if err != nil {
				continue
			}
			sake.Reviews = append(sake.Reviews, review)
		}
	}
	return sake, nil
}

func parseSakes(rows []interface{}) ([]*model.Sake, error) {
	out := make([]*model.Sake, 0, len(rows))
	for _, row := range rows {
		sake, err := parseSake(row)
		if err != nil {
			continue
		}
		out = append(out, sake)
	}
	return out, nil
}
