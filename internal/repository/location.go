package repository

import (
	"context"
	"errors"

	"github.com/chrisueda/sakewalk/internal/database"
	"github.com/chrisueda/sakewalk/internal/model"
)

// LocationRepository handles location data access
type LocationRepository struct {
	db database.Database
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db database.Database) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create persists a new location and fills in its ID and creation time
func (r *LocationRepository) Create(ctx context.Context, loc *model.Location) error {
	query := `
		CREATE location CONTENT {
			name: $name,
			slug: $slug,
			description: $description,
			tags: $tags,
			address: $address,
			point: $point,
			photo: $photo,
			author: type::record($author),
			created: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":        loc.Name,
		"slug":        loc.Slug,
		"description": loc.Description,
		"tags":        loc.Tags,
		"address":     loc.Address,
		"point":       geometry(loc.Point),
		"photo":       loc.Photo,
		"author":      loc.AuthorID,
	}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	created, err := parseLocation(row)
	if err != nil {
		return err
	}
	loc.ID = created.ID
	loc.Created = created.Created
	return nil
}

// Update overwrites the mutable fields of a location
func (r *LocationRepository) Update(ctx context.Context, loc *model.Location) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			slug = $slug,
			description = $description,
			tags = $tags,
			address = $address,
			point = $point,
			photo = $photo
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":          loc.ID,
		"name":        loc.Name,
		"slug":        loc.Slug,
		"description": loc.Description,
		"tags":        loc.Tags,
		"address":     loc.Address,
		"point":       geometry(loc.Point),
		"photo":       loc.Photo,
	}
	_, err := r.db.QueryOne(ctx, query, vars)
	return err
}

// GetByID retrieves a location by record ID
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*model.Location, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseLocation(row)
}

// GetBySlug retrieves a location by its slug
func (r *LocationRepository) GetBySlug(ctx context.Context, slug string) (*model.Location, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM location WHERE slug = $slug`, map[string]interface{}{"slug": slug})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseLocation(row)
}

// List retrieves all locations, newest first
func (r *LocationRepository) List(ctx context.Context) ([]*model.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM location ORDER BY created DESC`, nil)
	if err != nil {
		return nil, err
	}
	return parseLocations(rows)
}

// SlugsMatching returns the existing slugs matching the given anchored
// regular expression, used by slug collision resolution.
func (r *LocationRepository) SlugsMatching(ctx context.Context, pattern string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT VALUE slug FROM location WHERE string::matches(slug, $pattern)`,
		map[string]interface{}{"pattern": pattern})
	if err != nil {
		return nil, err
	}
	return parseSlugRows(rows), nil
}

// ListTags aggregates distinct tag values with their usage counts,
// descending by count. Locations without tags contribute nothing.
func (r *LocationRepository) ListTags(ctx context.Context) ([]model.TagCount, error) {
	query := `
		SELECT tag, count() AS count FROM (
			SELECT tags AS tag FROM location SPLIT tag
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

// ByTag retrieves locations carrying the given tag, newest first
func (r *LocationRepository) ByTag(ctx context.Context, tag string) ([]*model.Location, error) {
	rows, err := r.db.Query(ctx,
		`SELECT * FROM location WHERE $tag INSIDE tags ORDER BY created DESC`,
		map[string]interface{}{"tag": tag})
	if err != nil {
		return nil, err
	}
	return parseLocations(rows)
}

// Search runs a full-text query over name and description, ordered by
// relevance score, truncated to limit.
func (r *LocationRepository) Search(ctx context.Context, q string, limit int) ([]*model.Location, error) {
	query := `
		SELECT *, search::score(1) + search::score(2) AS score FROM location
		WHERE name @1@ $q OR description @2@ $q
		ORDER BY score DESC
		LIMIT $limit
	`
	rows, err := r.db.Query(ctx, query, map[string]interface{}{"q": q, "limit": limit})
	if err != nil {
		return nil, err
	}
	return parseLocations(rows)
}

// Nearby finds locations within radiusMeters of the center point, nearest
// first, projecting only the fields the map payload needs. Distance for the
// payload itself is computed by the service.
func (r *LocationRepository) Nearby(ctx context.Context, center model.GeoPoint, radiusMeters float64, limit int) ([]*model.NearbyLocation, error) {
	query := `
		SELECT slug, name, description, point, photo,
			geo::distance(point, $center) AS distance
		FROM location
		WHERE geo::distance(point, $center) <= $radius
		ORDER BY distance ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"center": geometry(center),
		"radius": radiusMeters,
		"limit":  limit,
	}
	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	out := make([]*model.NearbyLocation, 0, len(rows))
	for _, row := range rows {
		m, ok := asObject(row)
		if !ok {
			continue
		}
		out = append(out, &model.NearbyLocation{
			Slug:        getString(m, "slug"),
			Name:        getString(m, "name"),
			Description: getString(m, "description"),
			Point:       getPoint(m, "point"),
			Photo:       getString(m, "photo"),
		})
	}
	return out, nil
}

func parseLocation(row interface{}) (*model.Location, error) {
	m, ok := asObject(row)
	if !ok {
		return nil, errors.New("unexpected location row format")
	}
	return &model.Location{
		ID:          recordID(m["id"]),
		Name:        getString(m, "name"),
		Slug:        getString(m, "slug"),
		Description: getString(m, "description"),
		Tags:        getStringSlice(m, "tags"),
		Created:     getTime(m, "created"),
		Photo:       getString(m, "photo"),
		Address:     getString(m, "address"),
		Point:       getPoint(m, "point"),
		AuthorID:    recordID(m["author"]),
	}, nil
}

func parseLocations(rows []interface{}) ([]*model.Location, error) {
	out := make([]*model.Location, 0, len(rows))
	for _, row := range rows {
		loc, err := parseLocation(row)
		if err != nil {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

func parseSlugRows(rows []interface{}) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := row.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseTagCounts(rows []interface{}) []model.TagCount {
	out := make([]model.TagCount, 0, len(rows))
	for _, row := range rows {
		m, ok := asObject(row)
		if !ok {
			continue
		}
		tag := getString(m, "tag")
		if tag == "" {
			continue
		}
		out = append(out, model.TagCount{Tag: tag, Count: getInt(m, "count")})
	}
	return out
}
