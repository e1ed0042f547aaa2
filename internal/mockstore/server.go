package mockstore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookmanager/internal/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler mounts the full backend REST surface over the store. Bodies are
// plain JSON, matching the real backend's wire format: no envelopes, 201 on
// create, 204 on delete.
func Handler(s *Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, s.ListUsers())
		})
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var payload struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			}
			if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.Name == "" || payload.Email == "" {
				writeError(w, http.StatusBadRequest, "name and email are required")
				return
			}
			user, err := s.CreateUser(payload.Name, payload.Email)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, user)
		})

		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				user, err := s.GetUser(chi.URLParam(req, "userId"))
				if err != nil {
					writeStoreError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, user)
			})
			r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
				if err := s.DeleteUser(chi.URLParam(req, "userId")); err != nil {
					writeStoreError(w, err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Route("/books", func(r chi.Router) {
				r.Get("/", listBooks(s))
				r.Post("/", addBook(s))
				r.Get("/search", searchBooks(s))

				r.Route("/{isbn}", func(r chi.Router) {
					r.Get("/", getBook(s))
					r.Put("/", putRating(s))
					r.Put("/details", putDetails(s))
					r.Delete("/", deleteBook(s))

					r.Get("/reviews", listReviews(s))
					r.Post("/reviews", addReview(s))
					r.Put("/reviews/{reviewId}", putReview(s))
					r.Delete("/reviews/{reviewId}", deleteReview(s))
				})
			})
		})
	})

	return r
}

func listBooks(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userID := chi.URLParam(req, "userId")
		ratingStr := req.URL.Query().Get("rating")
		if ratingStr == "" {
			user, err := s.GetUser(userID)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, user.Books)
			return
		}
		rating, err := strconv.Atoi(ratingStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "rating must be an integer")
			return
		}
		books, err := s.ListByRating(userID, rating)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, books)
	}
}

func addBook(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var payload struct {
			ISBN string `json:"isbn"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		book, err := s.AddBook(chi.URLParam(req, "userId"), payload.ISBN)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, book)
	}
}

func searchBooks(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		books, err := s.Search(chi.URLParam(req, "userId"), q.Get("title"), q.Get("author"), q.Get("year"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, books)
	}
}

func getBook(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		book, err := s.GetBook(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

func putRating(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var payload struct {
			Rating int `json:"rating"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		book, err := s.SetRating(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"), payload.Rating)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

func putDetails(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var details entity.BookDetails
		if err := json.NewDecoder(req.Body).Decode(&details); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		book, err := s.SetDetails(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"), details)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

func deleteBook(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := s.DeleteBook(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listReviews(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reviews, err := s.ListReviews(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

func addReview(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var review entity.Review
		if err := json.NewDecoder(req.Body).Decode(&review); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		created, err := s.AddReview(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"), review)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func putReview(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var review entity.Review
		if err := json.NewDecoder(req.Body).Decode(&review); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		updated, err := s.UpdateReview(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"), chi.URLParam(req, "reviewId"), review)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteReview(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := s.DeleteReview(chi.URLParam(req, "userId"), chi.URLParam(req, "isbn"), chi.URLParam(req, "reviewId")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrBookNotFound), errors.Is(err, ErrReviewNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadISBN), errors.Is(err, ErrBadRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrDuplicateBook):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
