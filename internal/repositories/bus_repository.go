package repositories

import (
	"database/sql"

	"busyatra/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.DB.QueryRow(`
		SELECT id, traveler_id, bus_number, bus_type, from_location, to_location, fare, total_seats
		FROM buses
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&b.ID, &b.TravelerID, &b.BusNumber, &b.BusType, &b.FromLocation, &b.ToLocation, &b.Fare, &b.TotalSeats)
	return b, err
}

func (r BusRepository) ListByTraveler(travelerID int64) ([]models.Bus, error) {
	rows, err := r.DB.Query(`
		SELECT id, traveler_id, bus_number, bus_type, from_location, to_location, fare, total_seats
		FROM buses
		WHERE traveler_id = ?
		ORDER BY created_at DESC
	`, travelerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.TravelerID, &b.BusNumber, &b.BusType, &b.FromLocation, &b.ToLocation, &b.Fare, &b.TotalSeats); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) Create(b models.Bus) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO buses (traveler_id, bus_number, bus_type, from_location, to_location, fare, total_seats, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, b.TravelerID, b.BusNumber, b.BusType, b.FromLocation, b.ToLocation, b.Fare, b.TotalSeats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(b models.Bus) error {
	_, err := r.DB.Exec(`
		UPDATE buses
		SET bus_number=?, bus_type=?, from_location=?, to_location=?, fare=?, total_seats=?
		WHERE id=? AND traveler_id=?
	`, b.BusNumber, b.BusType, b.FromLocation, b.ToLocation, b.Fare, b.TotalSeats, b.ID, b.TravelerID)
	return err
}

func (r BusRepository) Delete(id, travelerID int64) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM buses WHERE id=? AND traveler_id=?`, id, travelerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
