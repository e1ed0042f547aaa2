package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookmanager/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(server.URL, 1000, 0)
	return client, server
}

func TestClient_AddBookByISBN(t *testing.T) {
	t.Run("posts the isbn and decodes the created book", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users/u1/books", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "9780134190440", payload["isbn"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(entity.Book{ISBN: "9780134190440", Title: "The Go Programming Language"})
		})
		defer server.Close()

		book, err := client.AddBookByISBN(context.Background(), "u1", "9780134190440")
		require.NoError(t, err)
		assert.Equal(t, "The Go Programming Language", book.Title)
	})

	t.Run("400 maps to ErrInvalidISBN", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		defer server.Close()

		_, err := client.AddBookByISBN(context.Background(), "u1", "not-an-isbn")
		assert.ErrorIs(t, err, ErrInvalidISBN)
	})

	t.Run("other statuses stay transport errors", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer server.Close()

		_, err := client.AddBookByISBN(context.Background(), "u1", "9780134190440")
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusBadGateway, terr.Status)
	})
}

func TestClient_UpdateRating(t *testing.T) {
	t.Run("puts the rating", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/users/u1/books/10", r.URL.Path)

			var payload map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, 4, payload["rating"])

			rating := 4
			_ = json.NewEncoder(w).Encode(entity.Book{ISBN: "10", Rating: &rating})
		})
		defer server.Close()

		book, err := client.UpdateRating(context.Background(), "u1", "10", 4)
		require.NoError(t, err)
		require.NotNil(t, book.Rating)
		assert.Equal(t, 4, *book.Rating)
	})

	t.Run("400 maps to ErrInvalidRating", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		defer server.Close()

		_, err := client.UpdateRating(context.Background(), "u1", "10", 4)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}

func TestClient_GetUser(t *testing.T) {
	t.Run("decodes the user with books", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/abc", r.URL.Path)
			_ = json.NewEncoder(w).Encode(entity.User{
				ID:    "abc",
				Name:  "Max",
				Email: "max@example.com",
				Books: []entity.Book{{ISBN: "10", Title: "Book A"}},
			})
		})
		defer server.Close()

		user, err := client.GetUser(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "Max", user.Name)
		require.Len(t, user.Books, 1)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		_, err := client.GetUser(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_CreateUser(t *testing.T) {
	t.Run("409 maps to ErrConflict", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})
		defer server.Close()

		_, err := client.CreateUser(context.Background(), "Max", "max@example.com")
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestClient_SearchBooks(t *testing.T) {
	t.Run("blank criteria are omitted from the query string", func(t *testing.T) {
		var gotQuery string
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/u1/books/search", r.URL.Path)
			gotQuery = r.URL.RawQuery
			_ = json.NewEncoder(w).Encode([]entity.Book{})
		})
		defer server.Close()

		_, err := client.SearchBooks(context.Background(), "u1", SearchQuery{Title: "go"})
		require.NoError(t, err)
		assert.Equal(t, "title=go", gotQuery)

		_, err = client.SearchBooks(context.Background(), "u1", SearchQuery{})
		require.NoError(t, err)
		assert.Empty(t, gotQuery)
	})

	t.Run("all criteria present", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "go", q.Get("title"))
			assert.Equal(t, "donovan", q.Get("author"))
			assert.Equal(t, "2015", q.Get("year"))
			_ = json.NewEncoder(w).Encode([]entity.Book{{ISBN: "10"}})
		})
		defer server.Close()

		books, err := client.SearchBooks(context.Background(), "u1", SearchQuery{
			Title:  "go",
			Author: "donovan",
			Year:   "2015",
		})
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})
}

func TestClient_ListBooksByRating(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1/books", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("rating"))
		_ = json.NewEncoder(w).Encode([]entity.Book{{ISBN: "b"}})
	})
	defer server.Close()

	books, err := client.ListBooksByRating(context.Background(), "u1", 4)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestClient_DeleteBook(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/u1/books/10", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	assert.NoError(t, client.DeleteBook(context.Background(), "u1", "10"))
}

func TestClient_Reviews(t *testing.T) {
	t.Run("add posts rating and text without an id", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users/u1/books/10/reviews", r.URL.Path)

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.NotContains(t, payload, "id")

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(entity.Review{ID: "r1", Rating: 5, ReviewText: "great"})
		})
		defer server.Close()

		review, err := client.AddReview(context.Background(), "u1", "10", entity.Review{Rating: 5, ReviewText: "great"})
		require.NoError(t, err)
		assert.Equal(t, "r1", review.ID)
	})

	t.Run("update puts to the review path", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/users/u1/books/10/reviews/r1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(entity.Review{ID: "r1", Rating: 3, ReviewText: "ok"})
		})
		defer server.Close()

		review, err := client.UpdateReview(context.Background(), "u1", "10", "r1", entity.Review{Rating: 3, ReviewText: "ok"})
		require.NoError(t, err)
		assert.Equal(t, 3, review.Rating)
	})

	t.Run("get decodes the review list", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/users/u1/books/10/reviews", r.URL.Path)
			_ = json.NewEncoder(w).Encode([]entity.Review{{ID: "r1", Rating: 5}})
		})
		defer server.Close()

		reviews, err := client.GetReviews(context.Background(), "u1", "10")
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "r1", reviews[0].ID)
	})

	t.Run("delete hits the review path", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/users/u1/books/10/reviews/r1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		defer server.Close()

		assert.NoError(t, client.DeleteReview(context.Background(), "u1", "10", "r1"))
	})
}

func TestClient_NetworkFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // refuse connections

	_, err := client.GetUser(context.Background(), "u1")
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 0, terr.Status)
	assert.Error(t, terr.Err)
}

func TestClient_GetRetriesServerErrors(t *testing.T) {
	attempts := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(entity.User{ID: "u1", Name: "Max"})
	})
	defer server.Close()
	client.maxRetries = 1

	user, err := client.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Max", user.Name)
	assert.Equal(t, 2, attempts)
}

func TestClient_MutationsAreNotRetried(t *testing.T) {
	attempts := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()
	client.maxRetries = 3

	_, err := client.AddBookByISBN(context.Background(), "u1", "10")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
