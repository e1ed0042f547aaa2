package entity

// Review is a single review attached to a book. The ID is assigned by the
// backend on creation and is empty on request bodies.
type Review struct {
	ID         string `json:"id,omitempty"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

// Book is one entry in a user's collection. ISBN is the stable identity used
// for lookups and deletion; Rating is nil while the book is unrated.
type Book struct {
	ID            string   `json:"id,omitempty"`
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"coverUrl"`
	Rating        *int     `json:"rating,omitempty"`
	Reviews       []Review `json:"reviews"`
}

// BookDetails is the editable subset of a book, sent on PUT .../details.
type BookDetails struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	CoverURL    string   `json:"coverUrl"`
}

// Clone returns a deep copy; the original's slices and rating are not shared.
// Empty slices stay empty rather than becoming nil, so the wire shape of a
// cloned book is unchanged.
func (b Book) Clone() Book {
	c := b
	if b.Authors != nil {
		c.Authors = make([]string, len(b.Authors))
		copy(c.Authors, b.Authors)
	}
	if b.Reviews != nil {
		c.Reviews = make([]Review, len(b.Reviews))
		copy(c.Reviews, b.Reviews)
	}
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	return c
}
