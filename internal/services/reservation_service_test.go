package services

import (
	"strings"
	"testing"
	"time"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}

func scheduleRow(available, booked, total int, status, date string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bus_id", "journey_date", "departure_time", "arrival_time",
		"total_seats", "available_seats", "booked_seats", "status",
	}).AddRow(1, 7, date, "08:00", "14:00", total, available, booked, status)
}

func busRow(fare int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "traveler_id", "bus_number", "bus_type", "from_location", "to_location", "fare", "total_seats",
	}).AddRow(7, 3, "KA01AB1234", "Seater", "Bengaluru", "Mysuru", fare, 2)
}

func onePassenger() []models.PassengerInput {
	return []models.PassengerInput{{Name: "A", Age: 30, Gender: "Male"}}
}

func TestReserveSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").WithArgs(int64(1)).
		WillReturnRows(scheduleRow(2, 0, 2, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").WithArgs(int64(7)).
		WillReturnRows(busRow(500))
	mock.ExpectQuery("SELECT id, seat_number, seat_type, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "is_booked"}).
			AddRow(11, "A1", "Seater", false))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(501, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE seats SET is_booked = 1").WithArgs(int64(501), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE schedules").WithArgs(1, 1, int64(1), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := ReservationService{DB: db}
	out, err := svc.Reserve(ReserveRequest{
		ScheduleID: 1,
		SeatIDs:    []int64{11},
		Passengers: onePassenger(),
		UserID:     42,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Booking.TotalAmount != 500 {
		t.Fatalf("total amount = %d, want 500", out.Booking.TotalAmount)
	}
	if out.Booking.BookingStatus != models.BookingConfirmed || out.Booking.PaymentStatus != models.PaymentPaid {
		t.Fatalf("unexpected statuses %s/%s", out.Booking.BookingStatus, out.Booking.PaymentStatus)
	}
	if out.Booking.SeatNumbers != "A1" {
		t.Fatalf("seat numbers = %q", out.Booking.SeatNumbers)
	}
	if !strings.HasPrefix(out.Booking.Reference, "BY-") {
		t.Fatalf("reference = %q, want BY- prefix", out.Booking.Reference)
	}
	if len(out.Passengers) != 1 {
		t.Fatalf("passenger lines = %d, want 1", len(out.Passengers))
	}
	if out.Passengers[0].IDType != "Aadhar" || out.Passengers[0].IDNumber != "N/A" {
		t.Fatalf("identity defaults not applied: %s/%s", out.Passengers[0].IDType, out.Passengers[0].IDNumber)
	}
	if out.Journey.FromLocation != "Bengaluru" || out.Journey.ToLocation != "Mysuru" {
		t.Fatalf("unexpected journey snapshot %+v", out.Journey)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatAlreadyBooked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(1, 1, 2, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))
	mock.ExpectQuery("SELECT id, seat_number, seat_type, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "is_booked"}).
			AddRow(11, "A1", "Seater", true))
	mock.ExpectRollback()

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "A1") {
		t.Fatalf("error should name the offending seat: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveJourneyInPast(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(2, 0, 2, "ACTIVE", yesterday()))
	mock.ExpectRollback()

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservePassengerCountMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Fails before any store is touched: no Begin expected.
	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11, 12}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatCapEnforced(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	seats := []int64{1, 2, 3, 4, 5, 6, 7}
	passengers := make([]models.PassengerInput, len(seats))
	for i := range passengers {
		passengers[i] = models.PassengerInput{Name: "P", Age: 20, Gender: "Female"}
	}

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: seats, Passengers: passengers, UserID: 42})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReserveScheduleNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 9, SeatIDs: []int64{11}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(2, 0, 2, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))
	// only one of the two requested seats belongs to the schedule
	mock.ExpectQuery("SELECT id, seat_number, seat_type, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "is_booked"}).
			AddRow(11, "A1", "Seater", false))
	mock.ExpectRollback()

	passengers := []models.PassengerInput{
		{Name: "A", Age: 30, Gender: "Male"},
		{Name: "B", Age: 28, Gender: "Female"},
	}
	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11, 99}, Passengers: passengers, UserID: 42})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveInsufficientAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(0, 2, 2, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))
	mock.ExpectQuery("SELECT id, seat_number, seat_type, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "is_booked"}).
			AddRow(11, "A1", "Seater", false))
	mock.ExpectRollback()

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A racing transaction can slip between nothing here: the seat rows
// are locked. Still, the conditional UPDATE must abort when it flips
// zero rows.
func TestReserveAbortsWhenSeatFlipMisses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(2, 0, 2, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))
	mock.ExpectQuery("SELECT id, seat_number, seat_type, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "is_booked"}).
			AddRow(11, "A1", "Seater", false))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(501, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE seats SET is_booked = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := ReservationService{DB: db}
	_, err = svc.Reserve(ReserveRequest{ScheduleID: 1, SeatIDs: []int64{11}, Passengers: onePassenger(), UserID: 42})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
