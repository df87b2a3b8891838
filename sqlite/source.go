package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pricescout.SourceService = (*SourceService)(nil)

// SourceService implements pricescout.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource creates a new source with its URL list.
func (s *SourceService) CreateSource(ctx context.Context, source *pricescout.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sources WHERE name = ?", source.Name).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return pricescout.Errorf(pricescout.EINVALID, "source %q already exists", source.Name)
	}

	id := uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sources (id, name, strategy, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, source.Name, string(source.Strategy),
		now.Format(time.RFC3339), now.Format(time.RFC3339)); err != nil {
		return err
	}
	if err := replaceURLs(ctx, tx, id, source.URLs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	source.ID = id
	source.CreatedAt = now
	source.UpdatedAt = now
	return nil
}

// FindSourceByName retrieves a source and its URLs by name.
func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*pricescout.Source, error) {
	var source pricescout.Source
	var strategy, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, strategy, created_at, updated_at
		FROM sources
		WHERE name = ?
	`, name).Scan(&source.ID, &source.Name, &strategy, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pricescout.Errorf(pricescout.ENOTFOUND, "unknown source %q", name)
	}
	if err != nil {
		return nil, err
	}

	source.Strategy = pricescout.Strategy(strategy)
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if source.URLs, err = s.findURLs(ctx, source.ID); err != nil {
		return nil, err
	}

	return &source, nil
}

// FindSources retrieves all sources ordered by name.
func (s *SourceService) FindSources(ctx context.Context) ([]*pricescout.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, strategy, created_at, updated_at
		FROM sources
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}

	var sources []*pricescout.Source
	for rows.Next() {
		var source pricescout.Source
		var strategy, createdAt, updatedAt string

		if err := rows.Scan(&source.ID, &source.Name, &strategy, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, err
		}

		source.Strategy = pricescout.Strategy(strategy)
		if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			rows.Close()
			return nil, err
		}
		if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			rows.Close()
			return nil, err
		}
		sources = append(sources, &source)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The single connection must be released before loading URLs.
	rows.Close()

	for _, source := range sources {
		if source.URLs, err = s.findURLs(ctx, source.ID); err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// UpdateSource replaces the strategy and/or URL list of a source.
func (s *SourceService) UpdateSource(ctx context.Context, name string, upd pricescout.SourceUpdate) (*pricescout.Source, error) {
	source, err := s.FindSourceByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if upd.Strategy != nil {
		source.Strategy = *upd.Strategy
	}
	if upd.URLs != nil {
		source.URLs = upd.URLs
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	source.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE sources
		SET strategy = ?, updated_at = ?
		WHERE id = ?
	`, string(source.Strategy), source.UpdatedAt.Format(time.RFC3339), source.ID); err != nil {
		return nil, err
	}
	if upd.URLs != nil {
		if err := replaceURLs(ctx, tx, source.ID, source.URLs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source and its URLs.
func (s *SourceService) DeleteSource(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pricescout.Errorf(pricescout.ENOTFOUND, "unknown source %q", name)
	}

	return nil
}

// findURLs returns the URLs of a source in stored order.
func (s *SourceService) findURLs(ctx context.Context, sourceID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT url FROM source_urls WHERE source_id = ? ORDER BY position", sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
