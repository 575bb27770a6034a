package models

// Seat is one physical seat slot for one schedule. (schedule_id,
// seat_number) is unique; IsBooked is true iff BookingID is set.
type Seat struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	SeatNumber string `json:"seatNumber"`
	SeatType   string `json:"seatType"`
	RowNo      int    `json:"rowNo"`
	ColNo      int    `json:"colNo"`
	Deck       string `json:"deck"`
	IsBooked   bool   `json:"isBooked"`
	BookingID  *int64 `json:"bookingId,omitempty"`
}
