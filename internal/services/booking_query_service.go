package services

import (
	"database/sql"
	"errors"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
)

// BookingQueryService serves the booking read paths: detail for the
// owner (or an admin), the customer's history, and the traveler's
// passenger manifest for one schedule.
type BookingQueryService struct {
	BookingRepo     repositories.BookingRepository
	BookingSeatRepo repositories.BookingSeatRepository
	ScheduleRepo    repositories.ScheduleRepository
	BusRepo         repositories.BusRepository
}

type BookingDetail struct {
	Booking    models.Booking       `json:"booking"`
	Passengers []models.BookingSeat `json:"passengers"`
	Schedule   models.Schedule      `json:"schedule"`
	Bus        models.Bus           `json:"bus"`
}

func (s BookingQueryService) Detail(bookingID int64, rc domain.RequestContext) (*BookingDetail, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "bookingId", Msg: "required"}
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "booking"}
		}
		return nil, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	if booking.UserID != int64(rc.UserID) && rc.Role != domain.RoleAdmin {
		return nil, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}

	passengers, err := s.BookingSeatRepo.ListByBooking(bookingID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load passengers", Err: err}
	}

	out := &BookingDetail{Booking: booking, Passengers: passengers}
	if sched, err := s.ScheduleRepo.GetByID(booking.ScheduleID); err == nil {
		out.Schedule = sched
		if bus, err := s.BusRepo.GetByID(sched.BusID); err == nil {
			out.Bus = bus
		}
	}
	return out, nil
}

func (s BookingQueryService) ListForUser(userID int64) ([]models.Booking, error) {
	out, err := s.BookingRepo.ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	return out, nil
}

// ManifestEntry is one confirmed booking with its passenger lines.
type ManifestEntry struct {
	Booking    models.Booking       `json:"booking"`
	Passengers []models.BookingSeat `json:"passengers"`
}

func (s BookingQueryService) Manifest(scheduleID, travelerID int64) ([]ManifestEntry, error) {
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
	bus, err := s.BusRepo.GetByID(sched.BusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "bus"}
		}
		return nil, domain.InternalError{Msg: "failed to load bus", Err: err}
	}
	if bus.TravelerID != travelerID {
		return nil, domain.ForbiddenError{Msg: "schedule belongs to another traveler"}
	}

	bookings, err := s.BookingRepo.ListConfirmedBySchedule(scheduleID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}

	out := make([]ManifestEntry, 0, len(bookings))
	for _, b := range bookings {
		lines, err := s.BookingSeatRepo.ListByBooking(b.ID)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to load passengers", Err: err}
		}
		out = append(out, ManifestEntry{Booking: b, Passengers: lines})
	}
	return out, nil
}
