package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no record matches a deletion ticket and owner.
// A ticket that never existed and one that was already consumed are
// indistinguishable.
var ErrNotFound = errors.New("upload not found")

// ErrInvalidUpload is returned when an upload carries no usable content type.
var ErrInvalidUpload = errors.New("invalid upload")

// ErrStorageUnavailable is returned when the database or the file store fails.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Record is one persisted upload row. Rows are write-once, delete-once; no
// update operation exists.
type Record struct {
	DeletionID string
	OwnerID    int
	Filename   string
	Title      *string
	Author     *string
	CreatedAt  time.Time
}

// Repository handles all upload database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert appends a new upload row.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO uploads (deletion_id, author, filename, title, audio_author)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.DeletionID, rec.OwnerID, rec.Filename, rec.Title, rec.Author,
	)
	if err != nil {
		return fmt.Errorf("insert upload: %w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// RemoveByTicketAndOwner atomically finds and deletes the row matching the
// deletion ticket and owner id, returning the stored filename. The single
// DELETE ... RETURNING statement guarantees that of any number of concurrent
// deletions for the same ticket, exactly one succeeds.
func (r *Repository) RemoveByTicketAndOwner(ctx context.Context, ticket string, ownerID int) (string, error) {
	var filename string
	err := r.db.QueryRow(ctx,
		`DELETE FROM uploads WHERE deletion_id = $1 AND author = $2 RETURNING filename`,
		ticket, ownerID,
	).Scan(&filename)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("remove upload: %w: %w", ErrStorageUnavailable, err)
	}
	return filename, nil
}
