package collection

import (
	"context"

	"bookmanager/internal/entity"
	"bookmanager/internal/gateway"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetUser(ctx context.Context, userID string) (entity.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *mockGateway) AddBookByISBN(ctx context.Context, userID, isbn string) (entity.Book, error) {
	args := m.Called(ctx, userID, isbn)
	return args.Get(0).(entity.Book), args.Error(1)
}

func (m *mockGateway) DeleteBook(ctx context.Context, userID, isbn string) error {
	args := m.Called(ctx, userID, isbn)
	return args.Error(0)
}

func (m *mockGateway) UpdateRating(ctx context.Context, userID, isbn string, rating int) (entity.Book, error) {
	args := m.Called(ctx, userID, isbn, rating)
	return args.Get(0).(entity.Book), args.Error(1)
}

func (m *mockGateway) UpdateDetails(ctx context.Context, userID, isbn string, details entity.BookDetails) (entity.Book, error) {
	args := m.Called(ctx, userID, isbn, details)
	return args.Get(0).(entity.Book), args.Error(1)
}

func (m *mockGateway) AddReview(ctx context.Context, userID, isbn string, review entity.Review) (entity.Review, error) {
	args := m.Called(ctx, userID, isbn, review)
	return args.Get(0).(entity.Review), args.Error(1)
}

func (m *mockGateway) UpdateReview(ctx context.Context, userID, isbn, reviewID string, review entity.Review) (entity.Review, error) {
	args := m.Called(ctx, userID, isbn, reviewID, review)
	return args.Get(0).(entity.Review), args.Error(1)
}

func (m *mockGateway) DeleteReview(ctx context.Context, userID, isbn, reviewID string) error {
	args := m.Called(ctx, userID, isbn, reviewID)
	return args.Error(0)
}

func (m *mockGateway) SearchBooks(ctx context.Context, userID string, q gateway.SearchQuery) ([]entity.Book, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func (m *mockGateway) ListBooksByRating(ctx context.Context, userID string, rating int) ([]entity.Book, error) {
	args := m.Called(ctx, userID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func ratedBook(isbn, title string, rating int) entity.Book {
	b := entity.Book{
		ISBN:    isbn,
		Title:   title,
		Authors: []string{"Author of " + title},
		Reviews: []entity.Review{},
	}
	if rating != 0 {
		b.Rating = &rating
	}
	return b
}

// loadedSession returns a session primed with the given books as both current
// and baseline.
func loadedSession(gw *mockGateway, books ...entity.Book) *Session {
	gw.On("GetUser", mock.Anything, "u1").Return(entity.User{
		ID:    "u1",
		Name:  "Maja",
		Email: "maja@example.com",
		Books: books,
	}, nil).Once()

	s := NewSession(gw, "u1")
	if err := s.Load(context.Background()); err != nil {
		panic(err)
	}
	return s
}
