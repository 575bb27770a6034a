package services

import (
	"testing"

	"busyatra/internal/domain"
	"busyatra/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerateSeatsLayout(t *testing.T) {
	seats := GenerateSeats(6, "Seater")
	if len(seats) != 6 {
		t.Fatalf("generated %d seats, want 6", len(seats))
	}
	if seats[0].SeatNumber != "A1" || seats[3].SeatNumber != "A4" {
		t.Fatalf("first row labels wrong: %s..%s", seats[0].SeatNumber, seats[3].SeatNumber)
	}
	if seats[4].SeatNumber != "B1" || seats[4].RowNo != 2 || seats[4].ColNo != 1 {
		t.Fatalf("row wrap wrong: %+v", seats[4])
	}
	for _, s := range seats {
		if s.SeatType != "Seater" || s.IsBooked {
			t.Fatalf("unexpected seat %+v", s)
		}
	}
}

func TestGenerateSeatsSleeper(t *testing.T) {
	seats := GenerateSeats(2, "sleeper")
	if seats[0].SeatType != "Sleeper" {
		t.Fatalf("seat type = %q, want Sleeper", seats[0].SeatType)
	}
}

func TestRowLettersBeyondZ(t *testing.T) {
	if got := rowLetters(1); got != "A" {
		t.Fatalf("rowLetters(1) = %q", got)
	}
	if got := rowLetters(26); got != "Z" {
		t.Fatalf("rowLetters(26) = %q", got)
	}
	if got := rowLetters(27); got != "AA" {
		t.Fatalf("rowLetters(27) = %q", got)
	}
}

func newScheduleService(t *testing.T) (ScheduleService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ScheduleService{
		DB:           db,
		ScheduleRepo: repositories.ScheduleRepository{DB: db},
		SeatRepo:     repositories.SeatRepository{DB: db},
		BusRepo:      repositories.BusRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateScheduleGeneratesSeats(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectQuery("SELECT id, traveler_id, bus_number").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "traveler_id", "bus_number", "bus_type", "from_location", "to_location", "fare", "total_seats",
		}).AddRow(7, 3, "KA01AB1234", "Seater", "Bengaluru", "Mysuru", 500, 4))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedules").
		WillReturnResult(sqlmock.NewResult(21, 1))
	for i := 0; i < 4; i++ {
		mock.ExpectExec("INSERT INTO seats").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	out, err := svc.Create(CreateScheduleRequest{
		BusID:         7,
		JourneyDate:   tomorrow(),
		DepartureTime: "08:00",
		ArrivalTime:   "14:00",
		TravelerID:    3,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.ID != 21 || out.TotalSeats != 4 || out.AvailableSeats != 4 || out.Status != "ACTIVE" {
		t.Fatalf("unexpected schedule %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateScheduleRejectsForeignBus(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectQuery("SELECT id, traveler_id, bus_number").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "traveler_id", "bus_number", "bus_type", "from_location", "to_location", "fare", "total_seats",
		}).AddRow(7, 99, "KA01AB1234", "Seater", "Bengaluru", "Mysuru", 500, 4))

	_, err := svc.Create(CreateScheduleRequest{
		BusID:         7,
		JourneyDate:   tomorrow(),
		DepartureTime: "08:00",
		ArrivalTime:   "14:00",
		TravelerID:    3,
	})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCancelScheduleBlockedWhileBooked(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").WithArgs(int64(21)).
		WillReturnRows(scheduleRow(3, 2, 5, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT traveler_id FROM buses").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"traveler_id"}).AddRow(3))
	mock.ExpectRollback()

	err := svc.Cancel(21, 3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelScheduleEmpty(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, bus_id, DATE_FORMAT").WithArgs(int64(21)).
		WillReturnRows(scheduleRow(5, 0, 5, "ACTIVE", tomorrow()))
	mock.ExpectQuery("SELECT traveler_id FROM buses").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"traveler_id"}).AddRow(3))
	mock.ExpectExec("UPDATE schedules SET status = 'CANCELLED'").WithArgs(int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM seats").WithArgs(int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	if err := svc.Cancel(21, 3); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
