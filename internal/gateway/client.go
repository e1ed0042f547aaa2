package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bookmanager/internal/entity"

	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// SearchQuery carries the server-search criteria. Blank fields are omitted
// from the query string entirely so the backend applies its own
// "no constraint" semantics instead of matching the empty string.
type SearchQuery struct {
	Title  string
	Author string
	Year   string
}

// Client talks to the Bookmanager backend. All methods map remote failures to
// the typed errors in errors.go; raw transport errors never escape.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

func New(baseURL string, rps int, maxRetries int) *Client {
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

// SetTimeout overrides the per-request timeout of the underlying HTTP client.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := c.get(ctx, c.baseURL+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (entity.User, error) {
	var user entity.User
	err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID)), &user)
	if err != nil {
		return entity.User{}, mapStatus(err, map[int]error{http.StatusNotFound: ErrNotFound})
	}
	return user, nil
}

func (c *Client) CreateUser(ctx context.Context, name, email string) (entity.User, error) {
	var user entity.User
	payload := map[string]string{"name": name, "email": email}
	err := c.send(ctx, http.MethodPost, c.baseURL+"/users", payload, &user)
	if err != nil {
		return entity.User{}, mapStatus(err, map[int]error{http.StatusConflict: ErrConflict})
	}
	return user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	return c.send(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) AddBookByISBN(ctx context.Context, userID, isbn string) (entity.Book, error) {
	var book entity.Book
	err := c.send(ctx, http.MethodPost, c.booksURL(userID), map[string]string{"isbn": isbn}, &book)
	if err != nil {
		return entity.Book{}, mapStatus(err, map[int]error{http.StatusBadRequest: ErrInvalidISBN})
	}
	return book, nil
}

func (c *Client) GetBook(ctx context.Context, userID, isbn string) (entity.Book, error) {
	var book entity.Book
	err := c.get(ctx, c.bookURL(userID, isbn), &book)
	if err != nil {
		return entity.Book{}, mapStatus(err, map[int]error{http.StatusNotFound: ErrNotFound})
	}
	return book, nil
}

func (c *Client) UpdateRating(ctx context.Context, userID, isbn string, rating int) (entity.Book, error) {
	var book entity.Book
	err := c.send(ctx, http.MethodPut, c.bookURL(userID, isbn), map[string]int{"rating": rating}, &book)
	if err != nil {
		return entity.Book{}, mapStatus(err, map[int]error{http.StatusBadRequest: ErrInvalidRating})
	}
	return book, nil
}

func (c *Client) UpdateDetails(ctx context.Context, userID, isbn string, details entity.BookDetails) (entity.Book, error) {
	var book entity.Book
	err := c.send(ctx, http.MethodPut, c.bookURL(userID, isbn)+"/details", details, &book)
	if err != nil {
		return entity.Book{}, err
	}
	return book, nil
}

func (c *Client) DeleteBook(ctx context.Context, userID, isbn string) error {
	return c.send(ctx, http.MethodDelete, c.bookURL(userID, isbn), nil, nil)
}

func (c *Client) SearchBooks(ctx context.Context, userID string, q SearchQuery) ([]entity.Book, error) {
	params := url.Values{}
	if q.Title != "" {
		params.Set("title", q.Title)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if q.Year != "" {
		params.Set("year", q.Year)
	}
	searchURL := c.booksURL(userID) + "/search"
	if encoded := params.Encode(); encoded != "" {
		searchURL += "?" + encoded
	}

	var books []entity.Book
	if err := c.get(ctx, searchURL, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) ListBooksByRating(ctx context.Context, userID string, rating int) ([]entity.Book, error) {
	var books []entity.Book
	endpoint := fmt.Sprintf("%s?rating=%d", c.booksURL(userID), rating)
	if err := c.get(ctx, endpoint, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetReviews(ctx context.Context, userID, isbn string) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := c.get(ctx, c.bookURL(userID, isbn)+"/reviews", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) AddReview(ctx context.Context, userID, isbn string, review entity.Review) (entity.Review, error) {
	var created entity.Review
	review.ID = ""
	err := c.send(ctx, http.MethodPost, c.bookURL(userID, isbn)+"/reviews", review, &created)
	if err != nil {
		return entity.Review{}, err
	}
	return created, nil
}

func (c *Client) UpdateReview(ctx context.Context, userID, isbn, reviewID string, review entity.Review) (entity.Review, error) {
	var updated entity.Review
	review.ID = ""
	endpoint := fmt.Sprintf("%s/reviews/%s", c.bookURL(userID, isbn), url.PathEscape(reviewID))
	err := c.send(ctx, http.MethodPut, endpoint, review, &updated)
	if err != nil {
		return entity.Review{}, err
	}
	return updated, nil
}

func (c *Client) DeleteReview(ctx context.Context, userID, isbn, reviewID string) error {
	endpoint := fmt.Sprintf("%s/reviews/%s", c.bookURL(userID, isbn), url.PathEscape(reviewID))
	return c.send(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) booksURL(userID string) string {
	return fmt.Sprintf("%s/users/%s/books", c.baseURL, url.PathEscape(userID))
}

func (c *Client) bookURL(userID, isbn string) string {
	return fmt.Sprintf("%s/%s", c.booksURL(userID), url.PathEscape(isbn))
}

// get issues a GET with retry-and-backoff on 5xx, since reads are idempotent.
func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &TransportError{Err: ctx.Err()}
			}
		}

		err := c.do(ctx, http.MethodGet, url, nil, target)
		var terr *TransportError
		if errors.As(err, &terr) && (terr.Status >= 500 || terr.Status == 0) {
			lastErr = err
			continue
		}
		return err
	}
	return lastErr
}

// send issues a mutating request exactly once; a retried POST could
// double-apply on the backend.
func (c *Client) send(ctx context.Context, method, url string, body, target interface{}) error {
	return c.do(ctx, method, url, body, target)
}

func (c *Client) do(ctx context.Context, method, url string, body, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Err: err}
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Status: resp.StatusCode}
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// mapStatus converts a TransportError into a domain sentinel when its status
// is one the caller recognizes; everything else passes through unchanged.
func mapStatus(err error, statuses map[int]error) error {
	var terr *TransportError
	if errors.As(err, &terr) {
		if mapped, ok := statuses[terr.Status]; ok {
			return mapped
		}
	}
	return err
}
