// Package postgres persists the planning data in PostgreSQL via the pgx
// stdlib driver. Apply runs the whole mutation in one transaction so the
// atomic-replacement contract of core/store holds.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

// Store implements core/store.Store on a PostgreSQL database.
type Store struct {
	db *sql.DB
}

// Open connects to the database and verifies the connection.
func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// InitSchema creates the planning tables when they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id          TEXT PRIMARY KEY,
		customer    TEXT NOT NULL DEFAULT '',
		vehicle_id  TEXT NOT NULL DEFAULT '',
		driver_id   TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL DEFAULT '',
		end_date    TEXT NOT NULL DEFAULT '',
		end_time    TEXT NOT NULL DEFAULT '',
		block_id    TEXT NOT NULL DEFAULT '',
		status      INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS blocks (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		booking_ids TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS vehicles (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL DEFAULT '',
		active             BOOLEAN NOT NULL DEFAULT TRUE,
		authorized_drivers TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS drivers (
		id     TEXT PRIMARY KEY,
		name   TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE
	);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Load reads one consistent snapshot of the planning data.
func (s *Store) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return snap, fmt.Errorf("load: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap.Bookings, err = loadBookings(ctx, tx)
	if err != nil {
		return snap, err
	}
	snap.Blocks, err = loadBlocks(ctx, tx)
	if err != nil {
		return snap, err
	}
	snap.Vehicles, err = loadVehicles(ctx, tx)
	if err != nil {
		return snap, err
	}
	snap.Drivers, err = loadDrivers(ctx, tx)
	if err != nil {
		return snap, err
	}
	if err := tx.Commit(); err != nil {
		return snap, fmt.Errorf("load: commit: %w", err)
	}
	return snap, nil
}

// Apply commits the mutation in one transaction and returns the
// resulting snapshot.
func (s *Store) Apply(ctx context.Context, m store.Mutation) (store.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("apply: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, b := range m.Bookings {
		w := b.Window.Normalized()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (id, customer, vehicle_id, driver_id, start_date, start_time, end_date, end_time, block_id, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (id) DO UPDATE SET
				customer=$2, vehicle_id=$3, driver_id=$4, start_date=$5,
				start_time=$6, end_date=$7, end_time=$8, block_id=$9, status=$10`,
			b.ID, b.Customer, b.Assignment.VehicleID, b.Assignment.DriverID,
			w.StartDate, w.StartTime, w.EndDate, w.EndTime, b.BlockID, int(b.Status))
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("apply: upsert booking %s: %w", b.ID, err)
		}
	}
	for _, blk := range m.Blocks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blocks (id, name, booking_ids) VALUES ($1,$2,$3)
			ON CONFLICT (id) DO UPDATE SET name=$2, booking_ids=$3`,
			blk.ID, blk.Name, joinIDs(blk.BookingIDs))
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("apply: upsert block %s: %w", blk.ID, err)
		}
	}
	for _, id := range m.DeleteBlockIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE id=$1`, id); err != nil {
			return store.Snapshot{}, fmt.Errorf("apply: delete block %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return store.Snapshot{}, fmt.Errorf("apply: commit: %w", err)
	}
	return s.Load(ctx)
}

func loadBookings(ctx context.Context, tx *sql.Tx) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, customer, vehicle_id, driver_id, start_date, start_time, end_date, end_time, block_id, status
		FROM bookings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		var status int
		if err := rows.Scan(&b.ID, &b.Customer, &b.Assignment.VehicleID, &b.Assignment.DriverID,
			&b.Window.StartDate, &b.Window.StartTime, &b.Window.EndDate, &b.Window.EndTime,
			&b.BlockID, &status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = model.Status(status)
		out = append(out, b)
	}
	return out, rows.Err()
}

func loadBlocks(ctx context.Context, tx *sql.Tx) ([]model.Block, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, booking_ids FROM blocks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	defer rows.Close()
	var out []model.Block
	for rows.Next() {
		var blk model.Block
		var ids string
		if err := rows.Scan(&blk.ID, &blk.Name, &ids); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blk.BookingIDs = splitIDs(ids)
		out = append(out, blk)
	}
	return out, rows.Err()
}

func loadVehicles(ctx context.Context, tx *sql.Tx) ([]model.Vehicle, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, active, authorized_drivers FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	defer rows.Close()
	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		var drivers string
		if err := rows.Scan(&v.ID, &v.Name, &v.Active, &drivers); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		v.AuthorizedDrivers = splitIDs(drivers)
		out = append(out, v)
	}
	return out, rows.Err()
}

func loadDrivers(ctx context.Context, tx *sql.Tx) ([]model.Driver, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, active FROM drivers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load drivers: %w", err)
	}
	defer rows.Close()
	var out []model.Driver
	for rows.Next() {
		var d model.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Active); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func joinIDs(ids []string) string { return strings.Join(ids, ",") }

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
