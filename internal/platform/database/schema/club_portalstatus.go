package schema

// ClubPortalStatusTable represents the 'club.portalstatus' table
type ClubPortalStatusTable struct {
	Table          string
	ID             string
	Month          string
	Year           string
	Category       string
	NominationOpen string
	VotingOpen     string
	CreatedAt      string
	UpdatedAt      string
}

// ClubPortalStatus is the schema definition for club.portalstatus
var ClubPortalStatus = ClubPortalStatusTable{
	Table:          "club.portalstatus",
	ID:             "id",
	Month:          "month",
	Year:           "year",
	Category:       "category",
	NominationOpen: "nominationopen",
	VotingOpen:     "votingopen",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t ClubPortalStatusTable) Columns() []string {
	return []string{
		t.ID, t.Month, t.Year, t.Category, t.NominationOpen, t.VotingOpen, t.CreatedAt, t.UpdatedAt,
	}
}
