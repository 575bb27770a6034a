package repositories

import (
	"database/sql"

	"busyatra/internal/db"
	"busyatra/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

const scheduleCols = `id, bus_id, DATE_FORMAT(journey_date, '%Y-%m-%d'), departure_time, arrival_time,
		total_seats, available_seats, booked_seats, status`

func scanSchedule(row *sql.Row) (models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(&s.ID, &s.BusID, &s.JourneyDate, &s.DepartureTime, &s.ArrivalTime,
		&s.TotalSeats, &s.AvailableSeats, &s.BookedSeats, &s.Status)
	return s, err
}

func (r ScheduleRepository) GetByID(id int64) (models.Schedule, error) {
	return scanSchedule(r.DB.QueryRow(`
		SELECT `+scheduleCols+`
		FROM schedules
		WHERE id = ?
		LIMIT 1
	`, id))
}

// ScheduleWithBus is the search-result row shown to customers.
type ScheduleWithBus struct {
	models.Schedule
	BusNumber    string `json:"busNumber"`
	BusType      string `json:"busType"`
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	Fare         int64  `json:"fare"`
}

// Search lists ACTIVE schedules for a route on a journey date.
func (r ScheduleRepository) Search(from, to, date string) ([]ScheduleWithBus, error) {
	rows, err := r.DB.Query(`
		SELECT s.id, s.bus_id, DATE_FORMAT(s.journey_date, '%Y-%m-%d'), s.departure_time, s.arrival_time,
			s.total_seats, s.available_seats, s.booked_seats, s.status,
			b.bus_number, b.bus_type, b.from_location, b.to_location, b.fare
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE b.from_location = ? AND b.to_location = ? AND s.journey_date = ? AND s.status = 'ACTIVE'
		ORDER BY s.departure_time ASC
	`, from, to, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ScheduleWithBus{}
	for rows.Next() {
		var s ScheduleWithBus
		if err := rows.Scan(&s.ID, &s.BusID, &s.JourneyDate, &s.DepartureTime, &s.ArrivalTime,
			&s.TotalSeats, &s.AvailableSeats, &s.BookedSeats, &s.Status,
			&s.BusNumber, &s.BusType, &s.FromLocation, &s.ToLocation, &s.Fare); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts the schedule row; callers run it inside the same
// transaction that bulk-creates the seats.
func (r ScheduleRepository) Create(q db.Querier, s models.Schedule) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO schedules (bus_id, journey_date, departure_time, arrival_time, total_seats, available_seats, booked_seats, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, 'ACTIVE', NOW())
	`, s.BusID, s.JourneyDate, s.DepartureTime, s.ArrivalTime, s.TotalSeats, s.TotalSeats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SweepCompleted lazily moves past ACTIVE schedules to COMPLETED.
// Called on the read paths rather than by a background job.
func (r ScheduleRepository) SweepCompleted() error {
	_, err := r.DB.Exec(`
		UPDATE schedules
		SET status = 'COMPLETED'
		WHERE status = 'ACTIVE' AND journey_date < CURDATE()
	`)
	return err
}
