// Package store holds the authoritative in-memory room and reservation
// collections and keeps them synchronized with a persisted representation
// through a pluggable Backend.  The in-memory state is always the source
// of truth: a failed persistence write is logged and the mutation that
// triggered it stands.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Store owns the room and reservation collections.  Rooms keep their
// insertion order for display; reservations keep creation order, which
// queries and searches rely on for stable iteration.  All accessors are
// safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	log     *logrus.Logger

	rooms        []model.Room
	reservations []model.Reservation
}

// Open loads both collections from the backend and returns a ready Store.
//
// A failed room load falls back to the fixed seed set, which is persisted
// immediately.  A failed reservation load degrades to an empty history and
// persists the empty set.  Neither failure blocks startup.
func Open(ctx context.Context, b Backend, log *logrus.Logger) *Store {
	s := &Store{backend: b, log: log}

	rooms, err := b.LoadRooms(ctx)
	if err == nil {
		err = validateRooms(rooms)
	}
	if err != nil {
		log.WithError(err).Warn("rooms unavailable in persisted store, seeding defaults")
		rooms = SeedRooms()
		if saveErr := b.SaveRooms(ctx, rooms); saveErr != nil {
			log.WithError(saveErr).Error("failed to persist seed rooms")
		}
	}
	s.rooms = rooms

	reservations, err := b.LoadReservations(ctx)
	if err == nil {
		err = validateReservations(reservations)
	}
	if err != nil {
		log.WithError(err).Warn("no usable reservation history, starting empty")
		reservations = []model.Reservation{}
		if saveErr := b.SaveReservations(ctx, reservations); saveErr != nil {
			log.WithError(saveErr).Error("failed to persist empty reservation set")
		}
	}
	s.reservations = reservations

	log.WithFields(logrus.Fields{
		"rooms":        len(s.rooms),
		"reservations": len(s.reservations),
	}).Info("store loaded")
	return s
}

// SeedRooms returns the fixed initial room set used when no persisted
// room data exists: two Standard, two Deluxe and one Suite.
func SeedRooms() []model.Room {
	return []model.Room{
		{ID: 101, Category: model.CategoryStandard, PriceCents: 4000},
		{ID: 102, Category: model.CategoryStandard, PriceCents: 4500},
		{ID: 201, Category: model.CategoryDeluxe, PriceCents: 8000},
		{ID: 202, Category: model.CategoryDeluxe, PriceCents: 8500},
		{ID: 301, Category: model.CategorySuite, PriceCents: 15000},
	}
}

func validateRooms(rooms []model.Room) error {
	for _, r := range rooms {
		if !r.Category.Valid() {
			return fmt.Errorf("room %d: invalid category %q", r.ID, r.Category)
		}
		if r.PriceCents < 0 {
			return fmt.Errorf("room %d: negative price", r.ID)
		}
	}
	return nil
}

func validateReservations(reservations []model.Reservation) error {
	for _, r := range reservations {
		if !r.Status.Valid() {
			return fmt.Errorf("reservation %s: invalid status %q", r.ID, r.Status)
		}
	}
	return nil
}

// Rooms returns a copy of the room collection in store order.
func (s *Store) Rooms() []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// RoomByID returns the room with the given id, if known.
func (s *Store) RoomByID(id int) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return model.Room{}, false
}

// Reservations returns a copy of the reservation collection in creation
// order.
func (s *Store) Reservations() []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// ReservationByID returns the first reservation with the given id.
func (s *Store) ReservationByID(id string) (model.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return r, true
		}
	}
	return model.Reservation{}, false
}

// ReservationsForGuest returns every reservation whose guest name matches
// case-insensitively, in store order, regardless of status.
func (s *Store) ReservationsForGuest(name string) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Reservation{}
	for _, r := range s.reservations {
		if strings.EqualFold(r.GuestName, name) {
			out = append(out, r)
		}
	}
	return out
}

// HasReservationID reports whether any reservation already carries the
// given id.  The engine uses this to reject identifier collisions before
// accepting a freshly generated id.
func (s *Store) HasReservationID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return true
		}
	}
	return false
}

// AppendReservation appends to the reservation collection and persists
// the whole collection.  A write failure is logged and does not undo the
// in-memory append.
func (s *Store) AppendReservation(ctx context.Context, r model.Reservation) {
	s.mu.Lock()
	s.reservations = append(s.reservations, r)
	snapshot := make([]model.Reservation, len(s.reservations))
	copy(snapshot, s.reservations)
	s.mu.Unlock()

	if err := s.backend.SaveReservations(ctx, snapshot); err != nil {
		s.log.WithError(err).WithField("reservation_id", r.ID).Error("failed to persist reservations")
	}
}

// SetReservationStatus updates the status of the reservation with the
// given id and persists the collection.  It reports whether the id was
// found.  The engine owns the legality of the transition.
func (s *Store) SetReservationStatus(ctx context.Context, id string, st model.Status) bool {
	s.mu.Lock()
	found := false
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations[i].Status = st
			found = true
			break
		}
	}
	var snapshot []model.Reservation
	if found {
		snapshot = make([]model.Reservation, len(s.reservations))
		copy(snapshot, s.reservations)
	}
	s.mu.Unlock()

	if !found {
		return false
	}
	if err := s.backend.SaveReservations(ctx, snapshot); err != nil {
		s.log.WithError(err).WithField("reservation_id", id).Error("failed to persist reservations")
	}
	return true
}

// SaveAll persists both collections.  It is called on orderly shutdown;
// failures are logged and otherwise ignored.
func (s *Store) SaveAll(ctx context.Context) {
	s.mu.RLock()
	rooms := make([]model.Room, len(s.rooms))
	copy(rooms, s.rooms)
	reservations := make([]model.Reservation, len(s.reservations))
	copy(reservations, s.reservations)
	s.mu.RUnlock()

	if err := s.backend.SaveRooms(ctx, rooms); err != nil {
		s.log.WithError(err).Error("final room save failed")
	}
	if err := s.backend.SaveReservations(ctx, reservations); err != nil {
		s.log.WithError(err).Error("final reservation save failed")
	}
}
