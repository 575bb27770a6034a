package repositories

import (
	"database/sql"

	"busyatra/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingCols = `id, reference, user_id, schedule_id, traveler_id, number_of_seats, seat_numbers,
		total_amount, booking_status, payment_status, payment_method,
		DATE_FORMAT(booking_date, '%Y-%m-%d %H:%i:%s'),
		DATE_FORMAT(cancellation_date, '%Y-%m-%d %H:%i:%s'),
		refund_amount`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	var cancelled sql.NullString
	err := scan(&b.ID, &b.Reference, &b.UserID, &b.ScheduleID, &b.TravelerID, &b.NumberOfSeats, &b.SeatNumbers,
		&b.TotalAmount, &b.BookingStatus, &b.PaymentStatus, &b.PaymentMethod,
		&b.BookingDate, &cancelled, &b.RefundAmount)
	if cancelled.Valid {
		v := cancelled.String
		b.CancellationDate = &v
	}
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.DB.QueryRow(`
		SELECT `+bookingCols+`
		FROM bookings
		WHERE id = ?
		LIMIT 1
	`, id)
	return scanBooking(row.Scan)
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingCols+`
		FROM bookings
		WHERE user_id = ?
		ORDER BY booking_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListConfirmedBySchedule feeds the traveler's passenger manifest.
func (r BookingRepository) ListConfirmedBySchedule(scheduleID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingCols+`
		FROM bookings
		WHERE schedule_id = ? AND booking_status = 'CONFIRMED'
		ORDER BY booking_date ASC
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
