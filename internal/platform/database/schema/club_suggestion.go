package schema

// ClubSuggestionTable represents the 'club.suggestion' table
type ClubSuggestionTable struct {
	Table     string
	ID        string
	UserID    string
	Title     string
	Author    string
	Synopsis  string
	ImageURL  string
	Category  string
	Month     string
	Year      string
	VoteCount string
	CreatedAt string
}

// ClubSuggestion is the schema definition for club.suggestion
var ClubSuggestion = ClubSuggestionTable{
	Table:     "club.suggestion",
	ID:        "id",
	UserID:    "userid",
	Title:     "title",
	Author:    "author",
	Synopsis:  "synopsis",
	ImageURL:  "imageurl",
	Category:  "category",
	Month:     "month",
	Year:      "year",
	VoteCount: "votecount",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t ClubSuggestionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Author, t.Synopsis, t.ImageURL,
		t.Category, t.Month, t.Year, t.VoteCount, t.CreatedAt,
	}
}
