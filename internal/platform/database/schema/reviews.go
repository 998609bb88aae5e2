package schema

// ReviewsTable represents the 'reviews' table
type ReviewsTable struct {
	Table     string
	ID        string
	BookID    string
	UserID    string
	Text      string
	Rating    string
	CreatedAt string
	UpdatedAt string
}

// Reviews is the schema definition for reviews
var Reviews = ReviewsTable{
	Table:     "reviews",
	ID:        "id",
	BookID:    "book_id",
	UserID:    "user_id",
	Text:      "text",
	Rating:    "rating",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
