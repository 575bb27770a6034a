package models

// Schedule statuses.
const (
	ScheduleActive    = "ACTIVE"
	ScheduleCancelled = "CANCELLED"
	ScheduleCompleted = "COMPLETED"
)

// Schedule is one bus running on one calendar date. The seat counters
// satisfy available+booked == total and are written only by the
// reservation and cancellation transactions.
type Schedule struct {
	ID             int64  `json:"id"`
	BusID          int64  `json:"busId"`
	JourneyDate    string `json:"journeyDate"`
	DepartureTime  string `json:"departureTime"`
	ArrivalTime    string `json:"arrivalTime"`
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
	BookedSeats    int    `json:"bookedSeats"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
