// Package shelf is the personal reading list: saved catalog books with a
// per-book reading status, persisted through the local store. The Store is
// the sole writer of the savedBooks key; every other part of the
// application goes through it.
package shelf

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/storage"
)

// Status is a book's reading state.
type Status string

const (
	StatusWantToRead       Status = "want-to-read"
	StatusCurrentlyReading Status = "currently-reading"
	StatusRead             Status = "read"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusRead:
		return true
	}
	return false
}

// ParseStatus converts user input to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q; valid statuses are: %s, %s, %s",
			raw, StatusWantToRead, StatusCurrentlyReading, StatusRead)
	}
	return s, nil
}

// SavedBook is a persisted shelf entry: a snapshot of the catalog book at
// save time plus the user's reading state. DateAdded is set once at
// creation and never changes.
type SavedBook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	PreviewLink string    `json:"previewLink,omitempty"`
	Status      Status    `json:"status"`
	DateAdded   time.Time `json:"dateAdded"`
}

// PrimaryAuthor returns the first listed author, or "" when none is known.
func (b SavedBook) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

// legacyBook is the deprecated parallel-list record shape kept under the
// readBooks / wantToReadBooks keys.
type legacyBook struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	PreviewLink string   `json:"previewLink,omitempty"`
}

// Store owns the saved-book collection. Mutations apply in memory first and
// persist synchronously; when persistence fails the in-memory state stays
// authoritative for the session and the failure is logged.
type Store struct {
	storage *storage.Store

	mu    sync.Mutex
	books []SavedBook

	now func() time.Time
}

// NewStore loads the shelf from the local store, normalizing legacy records
// and importing the deprecated parallel lists on first sight.
func NewStore(st *storage.Store) (*Store, error) {
	s := &Store{
		storage: st,
		now:     time.Now,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the collection from the local store, picking up writes
// made elsewhere. Must not be called from a storage subscriber on the same
// underlying store; the notification fires while this store's lock is held.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(storage.KeySavedBooks)
	if err != nil {
		return err
	}

	var books []SavedBook
	if ok {
		if err := json.Unmarshal([]byte(raw), &books); err != nil {
			return fmt.Errorf("corrupt saved books data: %w", err)
		}
	}

	changed := s.normalize(books)
	s.books = books

	if migrated, err := s.migrateLegacyLists(); err != nil {
		slog.Warn("Legacy list migration failed", "error", err)
	} else if migrated {
		changed = true
	}

	if changed {
		s.persistLocked()
	}
	return nil
}

// normalize assigns defaults to records missing a status or date (legacy
// data written before those fields existed). Reports whether anything
// changed.
func (s *Store) normalize(books []SavedBook) bool {
	changed := false
	for i := range books {
		if !books[i].Status.Valid() {
			books[i].Status = StatusWantToRead
			changed = true
		}
		if books[i].DateAdded.IsZero() {
			books[i].DateAdded = s.now()
			changed = true
		}
	}
	return changed
}

// migrateLegacyLists imports entries from the deprecated readBooks and
// wantToReadBooks keys that are not already on the shelf. savedBooks is
// canonical; the legacy keys are read once and left in place, never written.
func (s *Store) migrateLegacyLists() (bool, error) {
	imported := false

	lists := []struct {
		key    string
		status Status
	}{
		{storage.KeyLegacyRead, StatusRead},
		{storage.KeyLegacyWantToRead, StatusWantToRead},
	}

	for _, list := range lists {
		raw, ok, err := s.storage.Get(list.key)
		if err != nil {
			return imported, err
		}
		if !ok {
			continue
		}

		var legacy []legacyBook
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			return imported, fmt.Errorf("corrupt legacy list %q: %w", list.key, err)
		}

		for _, entry := range legacy {
			if entry.ID == "" || s.indexLocked(entry.ID) >= 0 {
				continue
			}
			s.books = append(s.books, SavedBook{
				ID:          entry.ID,
				Title:       entry.Title,
				Authors:     entry.Authors,
				Thumbnail:   entry.Thumbnail,
				PreviewLink: entry.PreviewLink,
				Status:      list.status,
				DateAdded:   s.now(),
			})
			imported = true
		}
	}

	if imported {
		slog.Info("Imported legacy reading lists into shelf")
	}
	return imported, nil
}

// Save adds a catalog book to the shelf with the default status. Saving a
// book that is already shelved is a no-op; the return value reports whether
// a record was added.
func (s *Store) Save(book catalog.Book) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(book.ID) >= 0 {
		return false
	}

	s.books = append(s.books, SavedBook{
		ID:          book.ID,
		Title:       book.Title,
		Authors:     book.Authors,
		Thumbnail:   book.Thumbnail,
		PreviewLink: book.PreviewLink,
		Status:      StatusWantToRead,
		DateAdded:   s.now(),
	})
	s.persistLocked()
	return true
}

// Remove deletes the record with the given id. Reports whether a record was
// removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}

	s.books = append(s.books[:idx], s.books[idx+1:]...)
	s.persistLocked()
	return true
}

// SetStatus updates the reading status in place, leaving DateAdded alone.
// Reports whether a record was updated.
func (s *Store) SetStatus(id string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}

	s.books[idx].Status = status
	s.persistLocked()
	return true
}

// List returns a copy of the shelf, optionally filtered by status
// (filter == "" returns everything).
func (s *Store) List(filter Status) []SavedBook {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SavedBook, 0, len(s.books))
	for _, book := range s.books {
		if filter != "" && book.Status != filter {
			continue
		}
		out = append(out, book)
	}
	return out
}

// Get returns the record with the given id, if shelved.
func (s *Store) Get(id string) (SavedBook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return SavedBook{}, false
	}
	return s.books[idx], true
}

// Len returns the number of shelved books.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func (s *Store) indexLocked(id string) int {
	for i, book := range s.books {
		if book.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection back to the local store. Write
// failures are logged, not returned: the in-memory shelf keeps working and
// the change is simply lost on reload.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.books)
	if err != nil {
		slog.Warn("Failed to marshal shelf", "error", err)
		return
	}
	if err := s.storage.Set(storage.KeySavedBooks, string(data)); err != nil {
		slog.Warn("Failed to persist shelf, keeping in-memory state", "error", err)
	}
}
