package localstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

// Bookmark is one persisted bookmark reference. Bookmarks reference
// entries by their stable id, not by in-memory identity, since entry
// instances are recreated on every reload.
type Bookmark struct {
	EntryID   string    `db:"entry_id"`
	CreatedAt time.Time `db:"created_at"`
}

// BookmarkRepository defines operations on the bookmark set.
type BookmarkRepository interface {
	// Toggle adds the entry id when absent and removes it when present,
	// returning the resulting membership.
	Toggle(ctx context.Context, entryID string) (bool, error)
	IsBookmarked(ctx context.Context, entryID string) (bool, error)
	List(ctx context.Context) ([]Bookmark, error)
	Clear(ctx context.Context) error
}

// DBBookmarkRepository implements BookmarkRepository on SQLite.
type DBBookmarkRepository struct {
	db *sqlx.DB
}

// NewDBBookmarkRepository creates a new DBBookmarkRepository.
func NewDBBookmarkRepository(db *sqlx.DB) *DBBookmarkRepository {
	return &DBBookmarkRepository{db: db}
}

// Toggle flips membership inside a transaction so concurrent CLI
// invocations cannot double-insert.
func (r *DBBookmarkRepository) Toggle(ctx context.Context, entryID string) (bool, error) {
	var bookmarked bool
	err := RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM bookmarks WHERE entry_id = ?", entryID); err != nil {
			return fmt.Errorf("tx.GetContext(bookmarks) > %w", err)
		}
		if count > 0 {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM bookmarks WHERE entry_id = ?", entryID); err != nil {
				return fmt.Errorf("tx.ExecContext(delete bookmark) > %w", err)
			}
			bookmarked = false
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO bookmarks (entry_id) VALUES (?)", entryID); err != nil {
			return fmt.Errorf("tx.ExecContext(insert bookmark) > %w", err)
		}
		bookmarked = true
		return nil
	})
	return bookmarked, err
}

// IsBookmarked reports membership for an entry id.
func (r *DBBookmarkRepository) IsBookmarked(ctx context.Context, entryID string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM bookmarks WHERE entry_id = ?", entryID); err != nil {
		return false, fmt.Errorf("db.GetContext(bookmarks) > %w", err)
	}
	return count > 0, nil
}

// List returns all bookmarks ordered by creation time.
func (r *DBBookmarkRepository) List(ctx context.Context) ([]Bookmark, error) {
	var bookmarks []Bookmark
	if err := r.db.SelectContext(ctx, &bookmarks,
		"SELECT * FROM bookmarks ORDER BY created_at, entry_id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(bookmarks) > %w", err)
	}
	return bookmarks, nil
}

// Clear removes every bookmark.
func (r *DBBookmarkRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bookmarks"); err != nil {
		return fmt.Errorf("db.ExecContext(clear bookmarks) > %w", err)
	}
	return nil
}

// MemoryBookmarkRepository is the session-only fallback used when the
// database cannot be opened. It satisfies the same contract but loses
// its contents when the process exits.
type MemoryBookmarkRepository struct {
	bookmarks map[string]time.Time
}

// NewMemoryBookmarkRepository creates an empty in-memory bookmark set.
func NewMemoryBookmarkRepository() *MemoryBookmarkRepository {
	return &MemoryBookmarkRepository{bookmarks: make(map[string]time.Time)}
}

// Toggle flips membership.
func (r *MemoryBookmarkRepository) Toggle(_ context.Context, entryID string) (bool, error) {
	if _, ok := r.bookmarks[entryID]; ok {
		delete(r.bookmarks, entryID)
		return false, nil
	}
	r.bookmarks[entryID] = time.Now()
	return true, nil
}

// IsBookmarked reports membership.
func (r *MemoryBookmarkRepository) IsBookmarked(_ context.Context, entryID string) (bool, error) {
	_, ok := r.bookmarks[entryID]
	return ok, nil
}

// List returns the bookmarks ordered by creation time.
func (r *MemoryBookmarkRepository) List(_ context.Context) ([]Bookmark, error) {
	bookmarks := make([]Bookmark, 0, len(r.bookmarks))
	for entryID, createdAt := range r.bookmarks {
		bookmarks = append(bookmarks, Bookmark{EntryID: entryID, CreatedAt: createdAt})
	}
	sort.Slice(bookmarks, func(i, j int) bool {
		if !bookmarks[i].CreatedAt.Equal(bookmarks[j].CreatedAt) {
			return bookmarks[i].CreatedAt.Before(bookmarks[j].CreatedAt)
		}
		return bookmarks[i].EntryID < bookmarks[j].EntryID
	})
	return bookmarks, nil
}

// Clear removes every bookmark.
func (r *MemoryBookmarkRepository) Clear(_ context.Context) error {
	r.bookmarks = make(map[string]time.Time)
	return nil
}

// OpenBookmarks opens the persistent bookmark set at path, falling back
// to a session-only in-memory set when the database is unavailable. The
// fallback is a diagnostic, not a failure.
func OpenBookmarks(path string) BookmarkRepository {
	db, err := Open(path)
	if err != nil {
		slog.Default().Warn("local store unavailable, bookmarks are session-only",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return NewMemoryBookmarkRepository()
	}
	return NewDBBookmarkRepository(db)
}
