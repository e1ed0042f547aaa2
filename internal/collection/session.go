package collection

import (
	"context"
	"errors"
	"sync"
	"time"

	"bookmanager/internal/entity"
)

// ErrDuplicateISBN is returned by AddByISBN when the ISBN is already in the
// collection; the backend is never called in that case.
var ErrDuplicateISBN = errors.New("book already in collection")

// ErrNotLoaded is returned when a mutation is attempted before Load succeeded.
var ErrNotLoaded = errors.New("collection not loaded")

// RemoveNoticeTTL is how long the post-delete success notice stays visible.
const RemoveNoticeTTL = 3 * time.Second

// Session mirrors one user's collection for the lifetime of a detail view.
// It keeps two lists: current, which reflects the latest successful mutation
// or filter result, and baseline, the snapshot taken at load time that filter
// resets restore. Mutations apply to current only; baseline is replaced solely
// by a fresh Load.
//
// Gateway calls run outside the lock, so calls may be in flight concurrently;
// each completion is applied atomically, in completion order.
type Session struct {
	gw     Gateway
	userID string

	mu       sync.Mutex
	user     entity.User
	current  []entity.Book
	baseline []entity.Book
	loaded   bool
	notice   string
	noticeAt time.Time
}

func NewSession(gw Gateway, userID string) *Session {
	return &Session{gw: gw, userID: userID}
}

// Load fetches the user and their full collection, setting both current and
// baseline to independent copies of the fetched list. On failure both stay
// unset.
func (s *Session) Load(ctx context.Context) error {
	user, err := s.gw.GetUser(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.user.Books = nil
	s.current = cloneBooks(user.Books)
	s.baseline = cloneBooks(user.Books)
	s.loaded = true
	return nil
}

// User returns the loaded user without the book list; books are read through
// Current.
func (s *Session) User() entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Current returns a copy of the visible list.
func (s *Session) Current() []entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBooks(s.current)
}

// Book returns the visible book with the given ISBN, if present.
func (s *Session) Book(isbn string) (entity.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.current {
		if b.ISBN == isbn {
			return b.Clone(), true
		}
	}
	return entity.Book{}, false
}

// UserID returns the id the session was created for.
func (s *Session) UserID() string { return s.userID }

// AddByISBN adds a book to the collection. A locally known ISBN fails with
// ErrDuplicateISBN before any network call. On success the backend's book is
// appended to current; baseline is untouched.
func (s *Session) AddByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return entity.Book{}, ErrNotLoaded
	}
	for _, b := range s.current {
		if b.ISBN == isbn {
			s.mu.Unlock()
			return entity.Book{}, ErrDuplicateISBN
		}
	}
	s.mu.Unlock()

	book, err := s.gw.AddBookByISBN(ctx, s.userID, isbn)
	if err != nil {
		return entity.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check: a concurrent add for the same ISBN may have completed first.
	for _, b := range s.current {
		if b.ISBN == book.ISBN {
			return book, nil
		}
	}
	s.current = append(s.current, book.Clone())
	return book, nil
}

// Remove deletes a book from the collection. Callers are expected to have
// confirmed the deletion with the user beforehand. On success the book is
// removed from current and a transient success notice is set; on failure the
// list keeps the book.
func (s *Session) Remove(ctx context.Context, isbn string) error {
	if err := s.gw.DeleteBook(ctx, s.userID, isbn); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.current {
		if b.ISBN == isbn {
			s.current = append(s.current[:i], s.current[i+1:]...)
			break
		}
	}
	s.notice = "Book deleted."
	s.noticeAt = time.Now()
	return nil
}

// Notice returns the transient success message from the last Remove while it
// is still within its display window, and "" afterwards.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == "" || time.Since(s.noticeAt) > RemoveNoticeTTL {
		return ""
	}
	return s.notice
}

// ClearNotice drops the notice ahead of its window expiring.
func (s *Session) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

// UpdateRating stores a new rating for a book. Values outside [1,5] are a
// silent no-op with no network call; upstream validation is expected to have
// rejected them already, this only keeps an out-of-range value from ever
// reaching the backend or the list. On success the matching book in current is
// replaced wholesale with the server's representation.
func (s *Session) UpdateRating(ctx context.Context, isbn string, rating int) (entity.Book, error) {
	if rating < 1 || rating > 5 {
		book, _ := s.Book(isbn)
		return book, nil
	}

	book, err := s.gw.UpdateRating(ctx, s.userID, isbn, rating)
	if err != nil {
		return entity.Book{}, err
	}
	s.replaceBook(isbn, book)
	return book, nil
}

// UpdateDetails edits title/authors/description/cover of a book, replacing
// the local entry wholesale with the server's response.
func (s *Session) UpdateDetails(ctx context.Context, isbn string, details entity.BookDetails) (entity.Book, error) {
	book, err := s.gw.UpdateDetails(ctx, s.userID, isbn, details)
	if err != nil {
		return entity.Book{}, err
	}
	s.replaceBook(isbn, book)
	return book, nil
}

// AddReview appends the created review to the book's review list. The review
// id is assigned by the backend, so it is necessarily new to the list.
func (s *Session) AddReview(ctx context.Context, isbn string, review entity.Review) (entity.Review, error) {
	created, err := s.gw.AddReview(ctx, s.userID, isbn, review)
	if err != nil {
		return entity.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		if s.current[i].ISBN == isbn {
			s.current[i].Reviews = append(s.current[i].Reviews, created)
			break
		}
	}
	return created, nil
}

// UpdateReview replaces a review wholesale with the server's response. When
// the review id is not in the local list (stale after a concurrent deletion),
// the local update is dropped silently; the backend stays authoritative.
func (s *Session) UpdateReview(ctx context.Context, isbn, reviewID string, review entity.Review) (entity.Review, error) {
	updated, err := s.gw.UpdateReview(ctx, s.userID, isbn, reviewID, review)
	if err != nil {
		return entity.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		if s.current[i].ISBN != isbn {
			continue
		}
		for j := range s.current[i].Reviews {
			if s.current[i].Reviews[j].ID == reviewID {
				s.current[i].Reviews[j] = updated
				break
			}
		}
		break
	}
	return updated, nil
}

// DeleteReview removes a review from the book's review list by id.
func (s *Session) DeleteReview(ctx context.Context, isbn, reviewID string) error {
	if err := s.gw.DeleteReview(ctx, s.userID, isbn, reviewID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		if s.current[i].ISBN != isbn {
			continue
		}
		reviews := s.current[i].Reviews
		for j := range reviews {
			if reviews[j].ID == reviewID {
				s.current[i].Reviews = append(reviews[:j], reviews[j+1:]...)
				break
			}
		}
		break
	}
	return nil
}

// replaceBook swaps the book with the given ISBN for the server's version.
// A book that is not visible (filtered away or removed meanwhile) is left
// alone.
func (s *Session) replaceBook(isbn string, book entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		if s.current[i].ISBN == isbn {
			s.current[i] = book.Clone()
			return
		}
	}
}

// setCurrent and resetToBaseline are the filter engine's two ways of driving
// the visible list.

func (s *Session) setCurrent(books []entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cloneBooks(books)
}

func (s *Session) resetToBaseline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cloneBooks(s.baseline)
}

func cloneBooks(books []entity.Book) []entity.Book {
	out := make([]entity.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
