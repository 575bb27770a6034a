package services

import (
	"testing"

	"busyatra/internal/domain"
	"busyatra/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func fullBookingRow(userID int64, paymentStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference", "user_id", "schedule_id", "traveler_id", "number_of_seats", "seat_numbers",
		"total_amount", "booking_status", "payment_status", "payment_method",
		"booking_date", "cancellation_date", "refund_amount",
	}).AddRow(77, "BY-ABC123DEF0", userID, 1, 3, 2, "A1,A2",
		1000, "CONFIRMED", paymentStatus, "card",
		"2026-08-30 10:00:00", nil, 0)
}

func bookingSeatRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "seat_id", "seat_number", "passenger_name", "passenger_age", "gender", "id_type", "id_number",
	}).
		AddRow(1, 77, 11, "A1", "Asha", 30, "Female", "Aadhar", "1234").
		AddRow(2, 77, 12, "A2", "Ravi", 33, "Male", "Aadhar", "N/A")
}

func newBookingQueryService(t *testing.T) (BookingQueryService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingQueryService{
		BookingRepo:     repositories.BookingRepository{DB: db},
		BookingSeatRepo: repositories.BookingSeatRepository{DB: db},
		ScheduleRepo:    repositories.ScheduleRepository{DB: db},
		BusRepo:         repositories.BusRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestBookingDetailOwner(t *testing.T) {
	svc, mock, done := newBookingQueryService(t)
	defer done()

	mock.ExpectQuery("SELECT id, reference, user_id").WithArgs(int64(77)).
		WillReturnRows(fullBookingRow(42, "PAID"))
	mock.ExpectQuery("SELECT id, booking_id, seat_id").WithArgs(int64(77)).
		WillReturnRows(bookingSeatRows())
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").WithArgs(int64(1)).
		WillReturnRows(scheduleRow(3, 2, 5, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").WithArgs(int64(7)).
		WillReturnRows(busRow(500))

	out, err := svc.Detail(77, domain.RequestContext{UserID: 42, Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Booking.Reference != "BY-ABC123DEF0" || len(out.Passengers) != 2 {
		t.Fatalf("unexpected detail %+v", out)
	}
	if out.Bus.BusNumber != "KA01AB1234" {
		t.Fatalf("bus snapshot missing: %+v", out.Bus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDetailForbiddenForStranger(t *testing.T) {
	svc, mock, done := newBookingQueryService(t)
	defer done()

	mock.ExpectQuery("SELECT id, reference, user_id").
		WillReturnRows(fullBookingRow(42, "PAID"))

	_, err := svc.Detail(77, domain.RequestContext{UserID: 99, Role: domain.RoleCustomer})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBookingDetailAdminOverride(t *testing.T) {
	svc, mock, done := newBookingQueryService(t)
	defer done()

	mock.ExpectQuery("SELECT id, reference, user_id").
		WillReturnRows(fullBookingRow(42, "PAID"))
	mock.ExpectQuery("SELECT id, booking_id, seat_id").
		WillReturnRows(bookingSeatRows())
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(3, 2, 5, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))

	if _, err := svc.Detail(77, domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin should read any booking, got %v", err)
	}
}

func TestManifestRejectsForeignSchedule(t *testing.T) {
	svc, mock, done := newBookingQueryService(t)
	defer done()

	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").
		WillReturnRows(scheduleRow(3, 2, 5, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(busRow(500))

	_, err := svc.Manifest(1, 999)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
