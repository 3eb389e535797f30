package schema

// ClubVoteTable represents the 'club.vote' table
type ClubVoteTable struct {
	Table        string
	ID           string
	UserID       string
	SuggestionID string
	CreatedAt    string
}

// ClubVote is the schema definition for club.vote
var ClubVote = ClubVoteTable{
	Table:        "club.vote",
	ID:           "id",
	UserID:       "userid",
	SuggestionID: "suggestionid",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t ClubVoteTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.SuggestionID, t.CreatedAt,
	}
}
