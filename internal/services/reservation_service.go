package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/utils"

	"github.com/google/uuid"
)

// MaxSeatsPerBooking bounds one reservation request.
const MaxSeatsPerBooking = 6

const (
	defaultIDType   = "Aadhar"
	defaultIDNumber = "N/A"
)

// ReservationService sells seats on a schedule. The whole
// check-and-mutate sequence runs in one InnoDB transaction with the
// schedule row and the requested seat rows locked, so two requests
// racing for the same seat cannot both commit.
type ReservationService struct {
	DB        *sql.DB
	RequestID string
}

type ReserveRequest struct {
	ScheduleID    int64                   `json:"scheduleId"`
	SeatIDs       []int64                 `json:"seatIds"`
	Passengers    []models.PassengerInput `json:"passengers"`
	PaymentMethod string                  `json:"paymentMethod"`
	UserID        int64                   `json:"-"`
}

type ReserveResult struct {
	Booking    models.Booking       `json:"booking"`
	Passengers []models.BookingSeat `json:"passengers"`
	Bus        models.Bus           `json:"bus"`
	Journey    JourneySnapshot      `json:"journey"`
}

// JourneySnapshot echoes trip details back to the client.
type JourneySnapshot struct {
	JourneyDate   string `json:"journeyDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	FromLocation  string `json:"fromLocation"`
	ToLocation    string `json:"toLocation"`
}

func (s ReservationService) Reserve(req ReserveRequest) (*ReserveResult, error) {
	if err := validateReserveRequest(req); err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to open transaction", Err: err}
	}
	defer tx.Rollback()

	sched, err := lockSchedule(tx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if sched.Status != models.ScheduleActive {
		return nil, domain.ConflictError{Resource: "schedule", Msg: "schedule is not active"}
	}
	journey, err := utils.ParseDate(sched.JourneyDate)
	if err != nil {
		return nil, domain.InternalError{Msg: "bad journey date on schedule", Err: err}
	}
	if utils.BeforeToday(journey) {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "journey date has already passed"}
	}

	var bus models.Bus
	err = tx.QueryRow(`
		SELECT id, traveler_id, bus_number, bus_type, from_location, to_location, fare, total_seats
		FROM buses
		WHERE id = ?
		LIMIT 1
	`, sched.BusID).Scan(&bus.ID, &bus.TravelerID, &bus.BusNumber, &bus.BusType, &bus.FromLocation, &bus.ToLocation, &bus.Fare, &bus.TotalSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "bus"}
		}
		return nil, domain.InternalError{Msg: "failed to load bus", Err: err}
	}

	seatByID, err := lockSeats(tx, req.ScheduleID, req.SeatIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range req.SeatIDs {
		if seatByID[id].IsBooked {
			return nil, domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %s is already booked", seatByID[id].SeatNumber)}
		}
	}
	if sched.AvailableSeats < len(req.SeatIDs) {
		return nil, domain.ConflictError{Resource: "schedule", Msg: "not enough seats available"}
	}

	seatNumbers := make([]string, 0, len(req.SeatIDs))
	for _, id := range req.SeatIDs {
		seatNumbers = append(seatNumbers, seatByID[id].SeatNumber)
	}
	total := bus.Fare * int64(len(req.SeatIDs))
	reference := newBookingReference()

	// Payment is stubbed: every booking is created already paid.
	res, err := tx.Exec(`
		INSERT INTO bookings (reference, user_id, schedule_id, traveler_id, number_of_seats, seat_numbers,
			total_amount, booking_status, payment_status, payment_method, booking_date, refund_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'CONFIRMED', 'PAID', ?, NOW(), 0)
	`, reference, req.UserID, req.ScheduleID, bus.TravelerID, len(req.SeatIDs), utils.JoinSeatNumbers(seatNumbers),
		total, req.PaymentMethod)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	bookingID, _ := res.LastInsertId()

	lines := make([]models.BookingSeat, 0, len(req.SeatIDs))
	for i, seatID := range req.SeatIDs {
		p := req.Passengers[i]
		idType := strings.TrimSpace(p.IDType)
		if idType == "" {
			idType = defaultIDType
		}
		idNumber := strings.TrimSpace(p.IDNumber)
		if idNumber == "" {
			idNumber = defaultIDNumber
		}
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, seat_id, seat_number, passenger_name, passenger_age, gender, id_type, id_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, bookingID, seatID, seatByID[seatID].SeatNumber, strings.TrimSpace(p.Name), p.Age, p.Gender, idType, idNumber); err != nil {
			return nil, domain.InternalError{Msg: "failed to save passenger details", Err: err}
		}
		lines = append(lines, models.BookingSeat{
			BookingID:     bookingID,
			SeatID:        seatID,
			SeatNumber:    seatByID[seatID].SeatNumber,
			PassengerName: strings.TrimSpace(p.Name),
			PassengerAge:  p.Age,
			Gender:        p.Gender,
			IDType:        idType,
			IDNumber:      idNumber,
		})
	}

	// Conditional flip: the WHERE is_booked = 0 guard re-validates on
	// the locked row, so an unexpected zero row count aborts instead of
	// silently double-selling.
	for _, seatID := range req.SeatIDs {
		flip, err := tx.Exec(`
			UPDATE seats SET is_booked = 1, booking_id = ? WHERE id = ? AND is_booked = 0
		`, bookingID, seatID)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to mark seat booked", Err: err}
		}
		if n, _ := flip.RowsAffected(); n != 1 {
			return nil, domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %s is already booked", seatByID[seatID].SeatNumber)}
		}
	}

	count, err := tx.Exec(`
		UPDATE schedules
		SET available_seats = available_seats - ?, booked_seats = booked_seats + ?
		WHERE id = ? AND available_seats >= ?
	`, len(req.SeatIDs), len(req.SeatIDs), req.ScheduleID, len(req.SeatIDs))
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to update seat counters", Err: err}
	}
	if n, _ := count.RowsAffected(); n != 1 {
		return nil, domain.ConflictError{Resource: "schedule", Msg: "not enough seats available"}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Msg: "failed to commit booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "reserve",
		fmt.Sprintf("booking_id=%d schedule_id=%d seats=%d total=%d", bookingID, req.ScheduleID, len(req.SeatIDs), total))

	booking := models.Booking{
		ID:            bookingID,
		Reference:     reference,
		UserID:        req.UserID,
		ScheduleID:    req.ScheduleID,
		TravelerID:    bus.TravelerID,
		NumberOfSeats: len(req.SeatIDs),
		SeatNumbers:   utils.JoinSeatNumbers(seatNumbers),
		TotalAmount:   total,
		BookingStatus: models.BookingConfirmed,
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: req.PaymentMethod,
	}
	return &ReserveResult{
		Booking:    booking,
		Passengers: lines,
		Bus:        bus,
		Journey: JourneySnapshot{
			JourneyDate:   sched.JourneyDate,
			DepartureTime: sched.DepartureTime,
			ArrivalTime:   sched.ArrivalTime,
			FromLocation:  bus.FromLocation,
			ToLocation:    bus.ToLocation,
		},
	}, nil
}

func validateReserveRequest(req ReserveRequest) error {
	if req.ScheduleID <= 0 {
		return domain.ValidationError{Field: "scheduleId", Msg: "required"}
	}
	if len(req.SeatIDs) == 0 {
		return domain.ValidationError{Field: "seatIds", Msg: "select at least one seat"}
	}
	if len(req.SeatIDs) > MaxSeatsPerBooking {
		return domain.ValidationError{Field: "seatIds", Msg: fmt.Sprintf("at most %d seats per booking", MaxSeatsPerBooking)}
	}
	seen := map[int64]bool{}
	for _, id := range req.SeatIDs {
		if id <= 0 {
			return domain.ValidationError{Field: "seatIds", Msg: "invalid seat id"}
		}
		if seen[id] {
			return domain.ValidationError{Field: "seatIds", Msg: "duplicate seat selection"}
		}
		seen[id] = true
	}
	if len(req.Passengers) != len(req.SeatIDs) {
		return domain.ValidationError{Field: "passengers", Msg: "passenger count must match seat count"}
	}
	for _, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return domain.ValidationError{Field: "passengers", Msg: "passenger name is required"}
		}
		if p.Age <= 0 {
			return domain.ValidationError{Field: "passengers", Msg: "passenger age must be a positive number"}
		}
		if strings.TrimSpace(p.Gender) == "" {
			return domain.ValidationError{Field: "passengers", Msg: "passenger gender is required"}
		}
	}
	return nil
}

// lockSchedule reads the schedule row under an exclusive lock so the
// seat counters cannot move under this transaction.
func lockSchedule(tx *sql.Tx, scheduleID int64) (models.Schedule, error) {
	var s models.Schedule
	err := tx.QueryRow(`
		SELECT id, bus_id, DATE_FORMAT(journey_date, '%Y-%m-%d'), departure_time, arrival_time,
			total_seats, available_seats, booked_seats, status
		FROM schedules
		WHERE id = ?
		FOR UPDATE
	`, scheduleID).Scan(&s.ID, &s.BusID, &s.JourneyDate, &s.DepartureTime, &s.ArrivalTime,
		&s.TotalSeats, &s.AvailableSeats, &s.BookedSeats, &s.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, domain.NotFoundError{Resource: "schedule"}
		}
		return s, domain.InternalError{Msg: "failed to load schedule", Err: err}
	}
	return s, nil
}

// lockSeats resolves the requested seat ids against the schedule under
// row locks and fails if any id does not belong to it.
func lockSeats(tx *sql.Tx, scheduleID int64, seatIDs []int64) (map[int64]models.Seat, error) {
	placeholders := make([]string, 0, len(seatIDs))
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, scheduleID)
	for _, id := range seatIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	rows, err := tx.Query(`
		SELECT id, seat_number, seat_type, is_booked
		FROM seats
		WHERE schedule_id = ? AND id IN (`+strings.Join(placeholders, ",")+`)
		FOR UPDATE
	`, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load seats", Err: err}
	}
	defer rows.Close()

	out := map[int64]models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.SeatType, &s.IsBooked); err != nil {
			return nil, domain.InternalError{Msg: "failed to read seats", Err: err}
		}
		s.ScheduleID = scheduleID
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to read seats", Err: err}
	}
	if len(out) != len(seatIDs) {
		return nil, domain.NotFoundError{Resource: "one or more seats"}
	}
	return out, nil
}

func newBookingReference() string {
	return "BY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
