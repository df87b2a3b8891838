package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// replaceURLs rewrites the ordered URL list of a source.
func replaceURLs(ctx context.Context, tx *sql.Tx, sourceID string, urls []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM source_urls WHERE source_id = ?", sourceID); err != nil {
		return err
	}
	for i, url := range urls {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO source_urls (source_id, position, url) VALUES (?, ?, ?)",
			sourceID, i, url,
		); err != nil {
			return err
		}
	}
	return nil
}
