package db

import "database/sql"

// EnsureSchema creates the tables the service needs when they do not
// exist yet. The UNIQUE KEY on (schedule_id, seat_number) is the
// structural guard against allocating the same seat twice.
func EnsureSchema(database *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'customer',
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	traveler_id BIGINT NOT NULL,
	bus_number VARCHAR(50) NOT NULL,
	bus_type VARCHAR(50) NOT NULL DEFAULT 'Seater',
	from_location VARCHAR(255) NOT NULL,
	to_location VARCHAR(255) NOT NULL,
	fare BIGINT NOT NULL,
	total_seats INT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_bus_number (bus_number),
	KEY idx_traveler (traveler_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS schedules (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	departure_time VARCHAR(10) NOT NULL,
	arrival_time VARCHAR(10) NOT NULL,
	total_seats INT NOT NULL,
	available_seats INT NOT NULL,
	booked_seats INT NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bus_date (bus_id, journey_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	schedule_id BIGINT NOT NULL,
	seat_number VARCHAR(10) NOT NULL,
	seat_type VARCHAR(20) NOT NULL DEFAULT 'Seater',
	row_no INT NOT NULL DEFAULT 0,
	col_no INT NOT NULL DEFAULT 0,
	deck VARCHAR(10) NOT NULL DEFAULT 'lower',
	is_booked TINYINT(1) NOT NULL DEFAULT 0,
	booking_id BIGINT NULL,
	UNIQUE KEY uniq_schedule_seat (schedule_id, seat_number),
	KEY idx_schedule (schedule_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(40) NOT NULL,
	user_id BIGINT NOT NULL,
	schedule_id BIGINT NOT NULL,
	traveler_id BIGINT NOT NULL,
	number_of_seats INT NOT NULL,
	seat_numbers TEXT NOT NULL,
	total_amount BIGINT NOT NULL,
	booking_status VARCHAR(20) NOT NULL DEFAULT 'CONFIRMED',
	payment_status VARCHAR(20) NOT NULL DEFAULT 'PAID',
	payment_method VARCHAR(20) NOT NULL DEFAULT 'card',
	booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	cancellation_date TIMESTAMP NULL,
	refund_amount BIGINT NOT NULL DEFAULT 0,
	UNIQUE KEY uniq_reference (reference),
	KEY idx_user (user_id),
	KEY idx_schedule (schedule_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS booking_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	seat_id BIGINT NOT NULL,
	seat_number VARCHAR(10) NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_age INT NOT NULL,
	gender VARCHAR(20) NOT NULL,
	id_type VARCHAR(30) NOT NULL DEFAULT 'Aadhar',
	id_number VARCHAR(50) NOT NULL DEFAULT 'N/A',
	UNIQUE KEY uniq_booking_seat (booking_id, seat_id),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range stmts {
		if _, err := database.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
