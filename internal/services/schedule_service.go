package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"busyatra/internal/db"
	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
	"busyatra/internal/utils"

	"github.com/go-sql-driver/mysql"
)

const seatsPerRow = 4

// ScheduleService owns the schedule lifecycle: creation together with
// its seat rows, route search, and operator cancellation. It never
// touches the availability counters of a schedule with sold seats;
// those belong to the reservation and cancellation transactions.
type ScheduleService struct {
	DB           *sql.DB
	ScheduleRepo repositories.ScheduleRepository
	SeatRepo     repositories.SeatRepository
	BusRepo      repositories.BusRepository
	RequestID    string
}

type CreateScheduleRequest struct {
	BusID         int64  `json:"busId"`
	JourneyDate   string `json:"journeyDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	TravelerID    int64  `json:"-"`
}

func (s ScheduleService) Create(req CreateScheduleRequest) (*models.Schedule, error) {
	if req.BusID <= 0 {
		return nil, domain.ValidationError{Field: "busId", Msg: "required"}
	}
	journey, err := utils.ParseDate(req.JourneyDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD"}
	}
	if utils.BeforeToday(journey) {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "journey date has already passed"}
	}
	dep, ok := utils.NormalizeClock(req.DepartureTime)
	if !ok {
		return nil, domain.ValidationError{Field: "departureTime", Msg: "expected HH:MM"}
	}
	arr, ok := utils.NormalizeClock(req.ArrivalTime)
	if !ok {
		return nil, domain.ValidationError{Field: "arrivalTime", Msg: "expected HH:MM"}
	}

	bus, err := s.BusRepo.GetByID(req.BusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "bus"}
		}
		return nil, domain.InternalError{Msg: "failed to load bus", Err: err}
	}
	if bus.TravelerID != req.TravelerID {
		return nil, domain.ForbiddenError{Msg: "bus belongs to another traveler"}
	}

	sched := models.Schedule{
		BusID:         bus.ID,
		JourneyDate:   utils.FormatDate(journey),
		DepartureTime: dep,
		ArrivalTime:   arr,
		TotalSeats:    bus.TotalSeats,
	}

	var id int64
	err = db.WithTx(s.DB, func(tx *sql.Tx) error {
		var err error
		id, err = s.ScheduleRepo.Create(tx, sched)
		if err != nil {
			return domain.InternalError{Msg: "failed to create schedule", Err: err}
		}
		if err := s.SeatRepo.BulkInsert(tx, id, GenerateSeats(bus.TotalSeats, bus.BusType)); err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1062 {
				return domain.ConflictError{Resource: "seat", Msg: "duplicate seat number for schedule"}
			}
			return domain.InternalError{Msg: "failed to create seats", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sched.ID = id
	sched.AvailableSeats = bus.TotalSeats
	sched.Status = models.ScheduleActive
	utils.LogEvent(s.RequestID, "schedule", "create",
		fmt.Sprintf("schedule_id=%d bus_id=%d date=%s seats=%d", id, bus.ID, sched.JourneyDate, bus.TotalSeats))
	return &sched, nil
}

// Search lists ACTIVE schedules for a route and date. Past ACTIVE
// schedules are swept to COMPLETED lazily on this read path.
func (s ScheduleService) Search(from, to, date string) ([]repositories.ScheduleWithBus, error) {
	from = utils.NormalizeSpace(from)
	to = utils.NormalizeSpace(to)
	if from == "" || to == "" {
		return nil, domain.ValidationError{Field: "from/to", Msg: "required"}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
	}

	if err := s.ScheduleRepo.SweepCompleted(); err != nil {
		return nil, domain.InternalError{Msg: "failed to sweep schedules", Err: err}
	}
	out, err := s.ScheduleRepo.Search(from, to, strings.TrimSpace(date))
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to search schedules", Err: err}
	}
	return out, nil
}

// Cancel marks an operator's schedule CANCELLED and drops its seat
// rows. Only allowed while nothing is booked on it.
func (s ScheduleService) Cancel(scheduleID, travelerID int64) error {
	if scheduleID <= 0 {
		return domain.ValidationError{Field: "scheduleId", Msg: "required"}
	}

	err := db.WithTx(s.DB, func(tx *sql.Tx) error {
		sched, err := lockSchedule(tx, scheduleID)
		if err != nil {
			return err
		}

		var ownerID int64
		if err := tx.QueryRow(`SELECT traveler_id FROM buses WHERE id = ? LIMIT 1`, sched.BusID).Scan(&ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "bus"}
			}
			return domain.InternalError{Msg: "failed to load bus", Err: err}
		}
		if ownerID != travelerID {
			return domain.ForbiddenError{Msg: "schedule belongs to another traveler"}
		}
		if sched.BookedSeats > 0 {
			return domain.ConflictError{Resource: "schedule", Msg: "schedule has confirmed bookings"}
		}

		if _, err := tx.Exec(`UPDATE schedules SET status = 'CANCELLED' WHERE id = ?`, scheduleID); err != nil {
			return domain.InternalError{Msg: "failed to cancel schedule", Err: err}
		}
		return s.SeatRepo.DeleteBySchedule(tx, scheduleID)
	})
	if err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "schedule", "cancel", fmt.Sprintf("schedule_id=%d", scheduleID))
	return nil
}

// GenerateSeats lays out seat rows for a new schedule: four seats per
// row (A1..A4, B1..B4, ...), sleeper buses get Sleeper-typed seats on
// a single lower deck.
func GenerateSeats(totalSeats int, busType string) []models.Seat {
	seatType := "Seater"
	if strings.EqualFold(strings.TrimSpace(busType), "sleeper") {
		seatType = "Sleeper"
	}

	out := make([]models.Seat, 0, totalSeats)
	for i := 0; i < totalSeats; i++ {
		row := i/seatsPerRow + 1
		col := i%seatsPerRow + 1
		out = append(out, models.Seat{
			SeatNumber: fmt.Sprintf("%s%d", rowLetters(row), col),
			SeatType:   seatType,
			RowNo:      row,
			ColNo:      col,
			Deck:       "lower",
		})
	}
	return out
}

// rowLetters produces A..Z, AA.. for row numbers past 26.
func rowLetters(row int) string {
	s := ""
	for row > 0 {
		row--
		s = string(rune('A'+row%26)) + s
		row /= 26
	}
	return s
}
