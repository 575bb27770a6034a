package services

import (
	"database/sql"
	"errors"
	"fmt"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/utils"
)

// CancellationService reverses a booking's effect on seat inventory:
// seats released, counters restored, full amount refunded. Runs in the
// same lock scope as the reservation so the two can never interleave
// on one schedule.
type CancellationService struct {
	DB        *sql.DB
	RequestID string
}

type CancelResult struct {
	BookingID        int64  `json:"bookingId"`
	Reference        string `json:"reference"`
	RefundAmount     int64  `json:"refundAmount"`
	CancellationDate string `json:"cancellationDate"`
}

func (s CancellationService) Cancel(bookingID, userID int64) (*CancelResult, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "bookingId", Msg: "required"}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to open transaction", Err: err}
	}
	defer tx.Rollback()

	var (
		reference   string
		ownerID     int64
		scheduleID  int64
		seatCount   int
		totalAmount int64
		status      string
	)
	err = tx.QueryRow(`
		SELECT reference, user_id, schedule_id, number_of_seats, total_amount, booking_status
		FROM bookings
		WHERE id = ?
		FOR UPDATE
	`, bookingID).Scan(&reference, &ownerID, &scheduleID, &seatCount, &totalAmount, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "booking"}
		}
		return nil, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	if ownerID != userID {
		return nil, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	if status == models.BookingCancelled {
		return nil, domain.ConflictError{Resource: "booking", Msg: "booking is already cancelled"}
	}

	sched, err := lockSchedule(tx, scheduleID)
	if err != nil {
		return nil, err
	}
	journey, err := utils.ParseDate(sched.JourneyDate)
	if err != nil {
		return nil, domain.InternalError{Msg: "bad journey date on schedule", Err: err}
	}
	if utils.BeforeToday(journey) {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "cannot cancel a past journey"}
	}

	// Full refund; there is no partial-refund policy.
	refund := totalAmount
	if _, err := tx.Exec(`
		UPDATE bookings
		SET booking_status = 'CANCELLED', payment_status = 'REFUNDED', cancellation_date = NOW(), refund_amount = ?
		WHERE id = ?
	`, refund, bookingID); err != nil {
		return nil, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}

	released, err := tx.Exec(`
		UPDATE seats SET is_booked = 0, booking_id = NULL WHERE booking_id = ?
	`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to release seats", Err: err}
	}
	freed, _ := released.RowsAffected()

	if _, err := tx.Exec(`
		UPDATE schedules
		SET available_seats = available_seats + ?, booked_seats = booked_seats - ?
		WHERE id = ?
	`, freed, freed, scheduleID); err != nil {
		return nil, domain.InternalError{Msg: "failed to update seat counters", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Msg: "failed to commit cancellation", Err: err}
	}

	now := utils.FormatDateTime(timeNow())
	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d schedule_id=%d released=%d refund=%d", bookingID, scheduleID, freed, refund))

	return &CancelResult{
		BookingID:        bookingID,
		Reference:        reference,
		RefundAmount:     refund,
		CancellationDate: now,
	}, nil
}
