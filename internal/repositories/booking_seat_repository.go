package repositories

import (
	"database/sql"

	"busyatra/internal/domain/models"
)

type BookingSeatRepository struct {
	DB *sql.DB
}

func (r BookingSeatRepository) ListByBooking(bookingID int64) ([]models.BookingSeat, error) {
	rows, err := r.DB.Query(`
		SELECT id, booking_id, seat_id, seat_number, passenger_name, passenger_age, gender, id_type, id_number
		FROM booking_seats
		WHERE booking_id = ?
		ORDER BY id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingSeat{}
	for rows.Next() {
		var s models.BookingSeat
		if err := rows.Scan(&s.ID, &s.BookingID, &s.SeatID, &s.SeatNumber, &s.PassengerName, &s.PassengerAge, &s.Gender, &s.IDType, &s.IDNumber); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
