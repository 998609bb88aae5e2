package schema

// FavouritesTable represents the 'favourites' table
type FavouritesTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	CreatedAt string
}

// Favourites is the schema definition for favourites
var Favourites = FavouritesTable{
	Table:     "favourites",
	ID:        "id",
	UserID:    "user_id",
	BookID:    "book_id",
	CreatedAt: "created_at",
}
