package entity

// User is a backend account together with its book collection. GET /users/{id}
// returns the full collection inline; list endpoints may leave Books empty.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Books []Book `json:"books"`
}
