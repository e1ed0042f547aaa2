package mockstore

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"bookmanager/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateBook  = errors.New("book already in collection")
	ErrBookNotFound   = errors.New("book not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadISBN        = errors.New("invalid isbn")
	ErrBadRating      = errors.New("rating out of range")
)

var isbnPattern = regexp.MustCompile(`^[0-9Xx-]+$`)

// Store is the in-memory backing state of the mock backend. It mimics the
// remote store's contract closely enough for development and integration
// tests: server-assigned ids, per-user book lists keyed by ISBN, reviews
// keyed by id.
type Store struct {
	mu    sync.Mutex
	users []*entity.User
}

func NewStore() *Store {
	return &Store{}
}

// Seed inserts users verbatim, assigning ids where missing. Intended for
// tests and the mock server's startup fixtures.
func (s *Store) Seed(users ...entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		user := u
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		s.users = append(s.users, &user)
	}
}

func (s *Store) ListUsers() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		copied.Books = nil
		out = append(out, copied)
	}
	return out
}

func (s *Store) GetUser(id string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(id)
	if err != nil {
		return entity.User{}, err
	}
	copied := *u
	copied.Books = cloneBooks(u.Books)
	return copied, nil
}

func (s *Store) CreateUser(name, email string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return entity.User{}, ErrEmailTaken
		}
	}
	user := &entity.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Books: []entity.Book{},
	}
	s.users = append(s.users, user)
	return *user, nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

// AddBook creates a collection entry for the ISBN. Metadata comes from the
// built-in catalog when the ISBN is known, otherwise a stub entry is
// synthesized, which is enough for client flows.
func (s *Store) AddBook(userID, isbn string) (entity.Book, error) {
	if isbn == "" || !isbnPattern.MatchString(isbn) {
		return entity.Book{}, ErrBadISBN
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(userID)
	if err != nil {
		return entity.Book{}, err
	}
	for _, b := range u.Books {
		if b.ISBN == isbn {
			return entity.Book{}, ErrDuplicateBook
		}
	}

	book, ok := catalog[isbn]
	if !ok {
		book = entity.Book{
			ISBN:    isbn,
			Title:   "Unknown title (" + isbn + ")",
			Authors: []string{},
		}
	}
	book.ID = uuid.NewString()
	book.Reviews = []entity.Review{}
	u.Books = append(u.Books, book)
	return book.Clone(), nil
}

func (s *Store) GetBook(userID, isbn string) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return entity.Book{}, err
	}
	return b.Clone(), nil
}

func (s *Store) SetRating(userID, isbn string, rating int) (entity.Book, error) {
	if rating < 1 || rating > 5 {
		return entity.Book{}, ErrBadRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return entity.Book{}, err
	}
	b.Rating = &rating
	return b.Clone(), nil
}

func (s *Store) SetDetails(userID, isbn string, d entity.BookDetails) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return entity.Book{}, err
	}
	b.Title = d.Title
	b.Authors = append([]string(nil), d.Authors...)
	b.Description = d.Description
	b.CoverURL = d.CoverURL
	return b.Clone(), nil
}

func (s *Store) DeleteBook(userID, isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(userID)
	if err != nil {
		return err
	}
	for i, b := range u.Books {
		if b.ISBN == isbn {
			u.Books = append(u.Books[:i], u.Books[i+1:]...)
			return nil
		}
	}
	return ErrBookNotFound
}

// Search matches case-insensitive substrings on title and authors, and a
// prefix match of year against publishedDate. Blank criteria impose no
// constraint.
func (s *Store) Search(userID, title, author, year string) ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	out := []entity.Book{}
	for _, b := range u.Books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(title)) {
			continue
		}
		if author != "" && !authorMatches(b.Authors, author) {
			continue
		}
		if year != "" && !strings.HasPrefix(b.PublishedDate, year) {
			continue
		}
		out = append(out, b.Clone())
	}
	return out, nil
}

func (s *Store) ListByRating(userID string, rating int) ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	out := []entity.Book{}
	for _, b := range u.Books {
		if b.Rating != nil && *b.Rating == rating {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (s *Store) ListReviews(userID, isbn string) ([]entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return nil, err
	}
	return append([]entity.Review{}, b.Reviews...), nil
}

func (s *Store) AddReview(userID, isbn string, review entity.Review) (entity.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return entity.Review{}, ErrBadRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return entity.Review{}, err
	}
	review.ID = uuid.NewString()
	b.Reviews = append(b.Reviews, review)
	return review, nil
}

func (s *Store) UpdateReview(userID, isbn, reviewID string, review entity.Review) (entity.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return entity.Review{}, ErrBadRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return entity.Review{}, err
	}
	for i := range b.Reviews {
		if b.Reviews[i].ID == reviewID {
			review.ID = reviewID
			b.Reviews[i] = review
			return review, nil
		}
	}
	return entity.Review{}, ErrReviewNotFound
}

func (s *Store) DeleteReview(userID, isbn, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.findBook(userID, isbn)
	if err != nil {
		return err
	}
	for i := range b.Reviews {
		if b.Reviews[i].ID == reviewID {
			b.Reviews = append(b.Reviews[:i], b.Reviews[i+1:]...)
			return nil
		}
	}
	return ErrReviewNotFound
}

func (s *Store) findUser(id string) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *Store) findBook(userID, isbn string) (*entity.Book, error) {
	u, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range u.Books {
		if u.Books[i].ISBN == isbn {
			return &u.Books[i], nil
		}
	}
	return nil, ErrBookNotFound
}

func authorMatches(authors []string, needle string) bool {
	for _, a := range authors {
		if strings.Contains(strings.ToLower(a), strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

func cloneBooks(books []entity.Book) []entity.Book {
	out := make([]entity.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
