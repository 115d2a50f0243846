package store

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Backend is the persisted representation of the store: two independent
// records, a room collection and a reservation collection, each loaded
// and saved as a whole.  Save calls fully overwrite the prior persisted
// state.  Load errors of any kind (missing data, corrupt data, schema
// mismatch) are treated by the Store as "absent" and trigger its
// fallback behavior; they must never be fatal.
type Backend interface {
	LoadRooms(ctx context.Context) ([]model.Room, error)
	SaveRooms(ctx context.Context, rooms []model.Room) error
	LoadReservations(ctx context.Context) ([]model.Reservation, error)
	SaveReservations(ctx context.Context, reservations []model.Reservation) error
}
