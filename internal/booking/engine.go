package booking

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/payment"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// idAttempts bounds how many random draws MakeReservation spends looking
// for an unused reservation id before giving up.
const idAttempts = 64

// EventSink receives reservation lifecycle notifications.  Publication
// is best-effort; implementations log their own failures and the engine
// ignores the returned error.
type EventSink interface {
	ReservationConfirmed(ctx context.Context, res model.Reservation) error
	ReservationCancelled(ctx context.Context, res model.Reservation) error
}

// Engine orchestrates search, booking, cancellation and queries over the
// store, and owns reservation id generation and status transitions.
//
// State machine per reservation:
//
//	{none} --book--> CONFIRMED | FAILED_PAYMENT
//	CONFIRMED      --cancel--> CANCELLED
//	FAILED_PAYMENT --cancel--> CANCELLED
//	CANCELLED is terminal.
//
// Cancelling a FAILED_PAYMENT reservation is intentionally permitted,
// matching the behavior callers already depend on.
//
// The engine serves concurrent callers: mu is held from the availability
// check through the append of the new reservation (payment included), so
// two simultaneous bookings can never both pass the check for the same
// room and range.
type Engine struct {
	mu       sync.Mutex
	store    *store.Store
	payments payment.Authorizer
	events   EventSink // may be nil
	log      *logrus.Logger
}

// New returns an engine over the given store and payment authorizer.
// events may be nil to disable event publication.
func New(st *store.Store, payments payment.Authorizer, events EventSink, log *logrus.Logger) *Engine {
	return &Engine{store: st, payments: payments, events: events, log: log}
}

// Rooms returns every room in store order.
func (e *Engine) Rooms() []model.Room {
	return e.store.Rooms()
}

// Reservations returns the full booking history in creation order.
func (e *Engine) Reservations() []model.Reservation {
	return e.store.Reservations()
}

// IsAvailable reports whether the room is free over the half-open range
// [from, to).  Only CONFIRMED reservations occupy a room; a stay may
// start the day another checks out.  Callers validate that from is
// strictly before to.
func (e *Engine) IsAvailable(roomID int, from, to time.Time) bool {
	for _, res := range e.store.Reservations() {
		if res.RoomID != roomID {
			continue
		}
		if !res.Status.Occupies() {
			continue
		}
		if res.Overlaps(from, to) {
			return false
		}
	}
	return true
}

// SearchAvailable returns the rooms of the given category that are free
// over [from, to), in store order.  An empty result is a valid outcome,
// not an error.
func (e *Engine) SearchAvailable(category model.Category, from, to time.Time) []model.Room {
	out := []model.Room{}
	for _, room := range e.store.Rooms() {
		if room.Category != category {
			continue
		}
		if e.IsAvailable(room.ID, from, to) {
			out = append(out, room)
		}
	}
	return out
}

// MakeReservation books a room for a guest over [checkIn, checkOut).
//
// It rejects bad date ordering (ErrInvalidDates), an occupied range
// (ErrRoomUnavailable) and an unknown room (ErrRoomNotFound), in that
// order, and fails with ErrIDSpaceExhausted when no fresh id can be
// drawn.  The id is drawn before the payment runs so an approved charge
// always has a record.  Past those guards a reservation is always
// produced: CONFIRMED when the payment is approved, FAILED_PAYMENT when
// it is declined or the authorizer cannot be reached.  Both outcomes
// persist the record and return it to the caller.
func (e *Engine) MakeReservation(ctx context.Context, roomID int, guestName string, checkIn, checkOut time.Time) (model.Reservation, error) {
	checkIn = midnightUTC(checkIn)
	checkOut = midnightUTC(checkOut)
	if !checkIn.Before(checkOut) {
		return model.Reservation{}, ErrInvalidDates
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.IsAvailable(roomID, checkIn, checkOut) {
		return model.Reservation{}, ErrRoomUnavailable
	}
	room, ok := e.store.RoomByID(roomID)
	if !ok {
		return model.Reservation{}, ErrRoomNotFound
	}

	nights := int64(checkOut.Sub(checkIn) / (24 * time.Hour))
	amount := nights * room.PriceCents

	// Draw the id before charging: once the payment goes through there
	// is no failure path left, so every authorized charge gets a record.
	id, err := e.newReservationID()
	if err != nil {
		return model.Reservation{}, err
	}

	approved, err := e.payments.Authorize(ctx, amount)
	if err != nil {
		e.log.WithError(err).Warn("payment authorizer unreachable, treating as declined")
		approved = false
	}

	status := model.StatusFailedPayment
	if approved {
		status = model.StatusConfirmed
	}
	res := model.Reservation{
		ID:          id,
		RoomID:      roomID,
		GuestName:   guestName,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		AmountCents: amount,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	e.store.AppendReservation(ctx, res)

	e.log.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"room_id":        res.RoomID,
		"guest":          res.GuestName,
		"amount_cents":   res.AmountCents,
		"status":         res.Status,
	}).Info("reservation created")

	if approved && e.events != nil {
		_ = e.events.ReservationConfirmed(ctx, res)
	}
	return res, nil
}

// CancelReservation moves a reservation to CANCELLED and persists the
// change.  It returns ErrReservationNotFound for an unknown id and
// ErrAlreadyCancelled when the reservation is already in its terminal
// state, leaving it untouched.
func (e *Engine) CancelReservation(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, ok := e.store.ReservationByID(id)
	if !ok {
		return ErrReservationNotFound
	}
	if res.Status == model.StatusCancelled {
		return ErrAlreadyCancelled
	}
	e.store.SetReservationStatus(ctx, id, model.StatusCancelled)

	e.log.WithField("reservation_id", id).Info("reservation cancelled")

	if e.events != nil {
		res.Status = model.StatusCancelled
		_ = e.events.ReservationCancelled(ctx, res)
	}
	return nil
}

// ReservationsForGuest returns every reservation for the guest name,
// matched case-insensitively, in creation order and regardless of status.
func (e *Engine) ReservationsForGuest(name string) []model.Reservation {
	return e.store.ReservationsForGuest(name)
}

// ReservationByID returns the reservation with the given id.
func (e *Engine) ReservationByID(id string) (model.Reservation, error) {
	res, ok := e.store.ReservationByID(id)
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, nil
}

// newReservationID draws ids of the form "R" + 4 digits in [1000,9999]
// until one is unused.  The format is fixed for compatibility with
// existing persisted records; the collision check is the one departure
// from the unchecked historical behavior.
func (e *Engine) newReservationID() (string, error) {
	for i := 0; i < idAttempts; i++ {
		id := fmt.Sprintf("R%d", 1000+rand.Intn(9000))
		if !e.store.HasReservationID(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

// midnightUTC normalizes a date to UTC midnight so that night counts are
// whole-day differences regardless of the caller's time zone.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
