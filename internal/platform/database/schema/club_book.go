package schema

// ClubBookTable represents the 'club.book' table
type ClubBookTable struct {
	Table      string
	ID         string
	Slug       string
	Title      string
	Author     string
	Synopsis   string
	ImageURL   string
	Category   string
	Month      string
	Year       string
	IsSelected string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// ClubBook is the schema definition for club.book
var ClubBook = ClubBookTable{
	Table:      "club.book",
	ID:         "id",
	Slug:       "slug",
	Title:      "title",
	Author:     "author",
	Synopsis:   "synopsis",
	ImageURL:   "imageurl",
	Category:   "category",
	Month:      "month",
	Year:       "year",
	IsSelected: "isselected",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

// Columns returns all standard column names
func (t ClubBookTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Author, t.Synopsis, t.ImageURL,
		t.Category, t.Month, t.Year, t.IsSelected, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
