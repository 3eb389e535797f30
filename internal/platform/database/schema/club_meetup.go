package schema

// ClubMeetupTable represents the 'club.meetup' table
type ClubMeetupTable struct {
	Table         string
	ID            string
	Title         string
	Description   string
	VenueName     string
	Address       string
	City          string
	Latitude      string
	Longitude     string
	GoogleMapsURL string
	EventDate     string
	EndTime       string
	Month         string
	Year          string
	ImageURL      string
	IsPublished   string
	CreatedAt     string
	UpdatedAt     string
}

// ClubMeetup is the schema definition for club.meetup
var ClubMeetup = ClubMeetupTable{
	Table:         "club.meetup",
	ID:            "id",
	Title:         "title",
	Description:   "description",
	VenueName:     "venuename",
	Address:       "address",
	City:          "city",
	Latitude:      "latitude",
	Longitude:     "longitude",
	GoogleMapsURL: "googlemapsurl",
	EventDate:     "eventdate",
	EndTime:       "endtime",
	Month:         "month",
	Year:          "year",
	ImageURL:      "imageurl",
	IsPublished:   "ispublished",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t ClubMeetupTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.VenueName, t.Address, t.City,
		t.Latitude, t.Longitude, t.GoogleMapsURL, t.EventDate, t.EndTime,
		t.Month, t.Year, t.ImageURL, t.IsPublished, t.CreatedAt, t.UpdatedAt,
	}
}
