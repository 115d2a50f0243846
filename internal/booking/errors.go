// Package booking implements the reservation engine: availability
// computation over date ranges, the reservation state machine, and the
// queries exposed to the service surfaces.  These sentinel errors are the
// expected, recoverable outcomes of engine operations; callers match them
// with errors.Is and keep going.  Nothing the engine returns is fatal.
package booking

import "errors"

// ErrInvalidDates is returned when check-in is not strictly before
// check-out.  Zero-night stays are rejected even though the overlap
// predicate alone would tolerate them.
var ErrInvalidDates = errors.New("check-in must be strictly before check-out")

// ErrRoomNotFound is returned when a room id matches no known room.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomUnavailable is returned when a confirmed reservation already
// occupies part of the requested range.
var ErrRoomUnavailable = errors.New("room not available for the requested dates")

// ErrReservationNotFound is returned when a reservation id matches no
// known reservation.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrAlreadyCancelled signals the idempotent no-op cancel of an already
// cancelled reservation.  The reservation is left untouched.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// ErrIDSpaceExhausted is returned when no unused reservation id could be
// drawn from the 4-digit space within the retry limit.
var ErrIDSpaceExhausted = errors.New("reservation id space exhausted")
