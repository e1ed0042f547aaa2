package collection

import (
	"context"

	"bookmanager/internal/entity"
	"bookmanager/internal/gateway"
)

// Gateway is the slice of the backend client the collection core consumes.
type Gateway interface {
	GetUser(ctx context.Context, userID string) (entity.User, error)
	AddBookByISBN(ctx context.Context, userID, isbn string) (entity.Book, error)
	DeleteBook(ctx context.Context, userID, isbn string) error
	UpdateRating(ctx context.Context, userID, isbn string, rating int) (entity.Book, error)
	UpdateDetails(ctx context.Context, userID, isbn string, details entity.BookDetails) (entity.Book, error)
	AddReview(ctx context.Context, userID, isbn string, review entity.Review) (entity.Review, error)
	UpdateReview(ctx context.Context, userID, isbn, reviewID string, review entity.Review) (entity.Review, error)
	DeleteReview(ctx context.Context, userID, isbn, reviewID string) error
	SearchBooks(ctx context.Context, userID string, q gateway.SearchQuery) ([]entity.Book, error)
	ListBooksByRating(ctx context.Context, userID string, rating int) ([]entity.Book, error)
}
