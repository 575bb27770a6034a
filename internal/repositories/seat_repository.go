package repositories

import (
	"database/sql"

	"busyatra/internal/db"
	"busyatra/internal/domain/models"
)

type SeatRepository struct {
	DB *sql.DB
}

// ListBySchedule returns every seat of a schedule in layout order.
func (r SeatRepository) ListBySchedule(scheduleID int64) ([]models.Seat, error) {
	rows, err := r.DB.Query(`
		SELECT id, schedule_id, seat_number, seat_type, row_no, col_no, deck, is_booked, booking_id
		FROM seats
		WHERE schedule_id = ?
		ORDER BY deck ASC, row_no ASC, col_no ASC
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		var bookingID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.SeatNumber, &s.SeatType, &s.RowNo, &s.ColNo, &s.Deck, &s.IsBooked, &bookingID); err != nil {
			return out, err
		}
		if bookingID.Valid {
			v := bookingID.Int64
			s.BookingID = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// BulkInsert creates the seat rows generated for a new schedule.
func (r SeatRepository) BulkInsert(q db.Querier, scheduleID int64, seats []models.Seat) error {
	for _, s := range seats {
		if _, err := q.Exec(`
			INSERT INTO seats (schedule_id, seat_number, seat_type, row_no, col_no, deck, is_booked, booking_id)
			VALUES (?, ?, ?, ?, ?, ?, 0, NULL)
		`, scheduleID, s.SeatNumber, s.SeatType, s.RowNo, s.ColNo, s.Deck); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBySchedule removes all seat rows of a cancelled schedule.
func (r SeatRepository) DeleteBySchedule(q db.Querier, scheduleID int64) error {
	_, err := q.Exec(`DELETE FROM seats WHERE schedule_id = ?`, scheduleID)
	return err
}
