package dto

// Actor identidad de quien ejecuta la operación, extraída del JWT y de la petición.
type Actor struct {
	UserID    string
	VenueID   string
	Role      string
	IPAddress string
	UserAgent string
}
