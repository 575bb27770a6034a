package models

// Bus is an operator-owned vehicle. Fare is per seat for the full
// route, stored in whole rupees.
type Bus struct {
	ID           int64  `json:"id"`
	TravelerID   int64  `json:"travelerId"`
	BusNumber    string `json:"busNumber"`
	BusType      string `json:"busType"`
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	Fare         int64  `json:"fare"`
	TotalSeats   int    `json:"totalSeats"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
