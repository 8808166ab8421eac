package repository

import (
	"context"
	"fmt"

	"github.com/chrisueda/sakewalk/internal/database"
)

// schemaStatements define the indexes the query layer depends on: the
// full-text search analyzer over location name/description, unique user
// emails, and slug/foreign-key lookups.
var schemaStatements = []string{
	`DEFINE ANALYZER IF NOT EXISTS english TOKENIZERS class FILTERS lowercase, snowball(english)`,
	`DEFINE INDEX IF NOT EXISTS location_name_search ON location FIELDS name SEARCH ANALYZER english BM25`,
	`DEFINE INDEX IF NOT EXISTS location_description_search ON location FIELDS description SEARCH ANALYZER english BM25`,
	`DEFINE INDEX IF NOT EXISTS location_slug_idx ON location FIELDS slug`,
	`DEFINE INDEX IF NOT EXISTS sake_slug_idx ON sake FIELDS slug`,
	`DEFINE INDEX IF NOT EXISTS review_sake_idx ON review FIELDS sake`,
	`DEFINE INDEX IF NOT EXISTS user_email_unique ON user FIELDS email UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS user_token_idx ON user FIELDS token`,
}

// EnsureSchema applies the index definitions. Statements are idempotent and
// run at startup before the server accepts traffic.
func EnsureSchema(ctx context.Context, db database.Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("apply schema %q: %w", stmt, err)
		}
	}
	return nil
}
