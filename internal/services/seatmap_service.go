package services

import (
	"database/sql"
	"errors"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
)

// SeatmapService is the advisory read path: which seats of a schedule
// are free right now. The authoritative check happens inside the
// reservation transaction, so no locks here.
type SeatmapService struct {
	ScheduleRepo repositories.ScheduleRepository
	SeatRepo     repositories.SeatRepository
}

type Seatmap struct {
	Schedule  models.Schedule `json:"schedule"`
	Available []models.Seat   `json:"available"`
	Booked    []models.Seat   `json:"booked"`
}

func (s SeatmapService) ListAvailableSeats(scheduleID int64) (*Seatmap, error) {
	if scheduleID <= 0 {
		return nil, domain.ValidationError{Field: "scheduleId", Msg: "required"}
	}

	sched, err := s.ScheduleRepo.GetByID(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "schedule"}
		}
		return nil, domain.InternalError{Msg: "failed to load schedule", Err: err}
	}
	if sched.Status != models.ScheduleActive {
		return nil, domain.ConflictError{Resource: "schedule", Msg: "schedule is not active"}
	}

	seats, err := s.SeatRepo.ListBySchedule(scheduleID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load seats", Err: err}
	}
	if len(seats) == 0 {
		return nil, domain.NotFoundError{Resource: "seats for schedule"}
	}

	out := &Seatmap{Schedule: sched, Available: []models.Seat{}, Booked: []models.Seat{}}
	for _, seat := range seats {
		if seat.IsBooked {
			out.Booked = append(out.Booked, seat)
		} else {
			out.Available = append(out.Available, seat)
		}
	}
	return out, nil
}
