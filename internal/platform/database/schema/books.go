package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table       string
	ID          string
	Title       string
	Author      string
	Description string
	CoverURL    string
	Genres      string
	Year        string
	AvgRating   string
	ReviewCount string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:       "books",
	ID:          "id",
	Title:       "title",
	Author:      "author",
	Description: "description",
	CoverURL:    "cover_url",
	Genres:      "genres",
	Year:        "year",
	AvgRating:   "avg_rating",
	ReviewCount: "review_count",
}

// Columns returns all standard column names
func (t BooksTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.CoverURL,
		t.Genres, t.Year, t.AvgRating, t.ReviewCount,
	}
}
