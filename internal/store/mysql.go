package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// errNoRooms marks a room table with no rows.  A fresh database has never
// been seeded, so the Store must treat it the same as a missing file.
var errNoRooms = errors.New("no rooms in database")

// MySQLBackend persists both collections in MySQL.  Loads select whole
// tables; saves run a transactional delete-all followed by a bulk insert,
// preserving the overwrite semantics of the persisted representation.
type MySQLBackend struct {
	db *sql.DB
}

// NewMySQLBackend binds a backend to db and creates the schema when it
// does not exist yet.
func NewMySQLBackend(ctx context.Context, db *sql.DB) (*MySQLBackend, error) {
	b := &MySQLBackend{db: db}
	if err := b.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return b, nil
}

func (b *MySQLBackend) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id INT NOT NULL,
			category VARCHAR(16) NOT NULL,
			price_cents BIGINT NOT NULL,
			PRIMARY KEY (id)
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			seq INT NOT NULL AUTO_INCREMENT,
			reservation_id VARCHAR(8) NOT NULL,
			room_id INT NOT NULL,
			guest_name VARCHAR(255) NOT NULL,
			check_in DATE NOT NULL,
			check_out DATE NOT NULL,
			amount_cents BIGINT NOT NULL,
			status VARCHAR(16) NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (seq)
		)`,
	}
	for _, q := range stmts {
		if _, err := b.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// LoadRooms selects the full room table in id order.  An empty table is
// reported as errNoRooms so the caller seeds it.
func (b *MySQLBackend) LoadRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT id, category, price_cents FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Room
	for rows.Next() {
		var r model.Room
		var cat string
		if err := rows.Scan(&r.ID, &cat, &r.PriceCents); err != nil {
			return nil, err
		}
		r.Category, err = model.ParseCategory(cat)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errNoRooms
	}
	return out, nil
}

// SaveRooms replaces the room table with the given collection.
func (b *MySQLBackend) SaveRooms(ctx context.Context, rooms []model.Room) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return err
	}
	if len(rooms) > 0 {
		query := `INSERT INTO rooms (id, category, price_cents) VALUES `
		args := make([]interface{}, 0, len(rooms)*3)
		for i, r := range rooms {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?)"
			args = append(args, r.ID, string(r.Category), r.PriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// LoadReservations selects the full reservation table in insertion order.
func (b *MySQLBackend) LoadReservations(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT reservation_id, room_id, guest_name, check_in, check_out,
	                  amount_cents, status, created_at
	           FROM reservations ORDER BY seq`
	rows, err := b.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		var r model.Reservation
		var status string
		if err := rows.Scan(&r.ID, &r.RoomID, &r.GuestName, &r.CheckIn, &r.CheckOut,
			&r.AmountCents, &status, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Status, err = model.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveReservations replaces the reservation table with the given
// collection, keeping slice order as insertion order.
func (b *MySQLBackend) SaveReservations(ctx context.Context, reservations []model.Reservation) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations`); err != nil {
		return err
	}
	if len(reservations) > 0 {
		query := `INSERT INTO reservations (reservation_id, room_id, guest_name, check_in, check_out, amount_cents, status, created_at) VALUES `
		args := make([]interface{}, 0, len(reservations)*8)
		for i, r := range reservations {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args,
				r.ID, r.RoomID, r.GuestName,
				r.CheckIn.UTC().Format("2006-01-02"),
				r.CheckOut.UTC().Format("2006-01-02"),
				r.AmountCents, string(r.Status),
				r.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
