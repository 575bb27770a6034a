package models

// Booking statuses.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Payment statuses.
const (
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

// Booking is one purchase transaction by a customer. SeatNumbers is a
// comma-joined snapshot of the purchased seat labels.
type Booking struct {
	ID               int64   `json:"id"`
	Reference        string  `json:"reference"`
	UserID           int64   `json:"userId"`
	ScheduleID       int64   `json:"scheduleId"`
	TravelerID       int64   `json:"travelerId"`
	NumberOfSeats    int     `json:"numberOfSeats"`
	SeatNumbers      string  `json:"seatNumbers"`
	TotalAmount      int64   `json:"totalAmount"`
	BookingStatus    string  `json:"bookingStatus"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentMethod    string  `json:"paymentMethod"`
	BookingDate      string  `json:"bookingDate"`
	CancellationDate *string `json:"cancellationDate"`
	RefundAmount     int64   `json:"refundAmount"`
}

// BookingSeat binds one passenger's details to one purchased seat.
// Retained after cancellation for history.
type BookingSeat struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"bookingId"`
	SeatID        int64  `json:"seatId"`
	SeatNumber    string `json:"seatNumber"`
	PassengerName string `json:"passengerName"`
	PassengerAge  int    `json:"passengerAge"`
	Gender        string `json:"gender"`
	IDType        string `json:"idType"`
	IDNumber      string `json:"idNumber"`
}

// PassengerInput carries per-seat passenger info on a reservation
// request.
type PassengerInput struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`
}
