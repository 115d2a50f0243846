package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the closed set of reservation states.
//
// CONFIRMED counts toward room occupancy.  FAILED_PAYMENT records a
// booking whose payment was declined; it does not occupy the room.
// CANCELLED is terminal and never transitions again.
type Status string

const (
	StatusConfirmed     Status = "CONFIRMED"
	StatusCancelled     Status = "CANCELLED"
	StatusFailedPayment Status = "FAILED_PAYMENT"
)

// ParseStatus converts a persisted string into a Status, rejecting
// anything outside the known enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusFailedPayment:
		return StatusFailedPayment, nil
	default:
		return "", fmt.Errorf("unknown reservation status: %q", s)
	}
}

// Valid reports whether st is a known status value.
func (st Status) Valid() bool {
	switch st {
	case StatusConfirmed, StatusCancelled, StatusFailedPayment:
		return true
	}
	return false
}

// Occupies reports whether a reservation in this status counts toward
// room occupancy for availability checks.  Only CONFIRMED does.
func (st Status) Occupies() bool {
	return st == StatusConfirmed
}

// Reservation records one guest's booking of one room over a half-open
// date interval [CheckIn, CheckOut): the check-out day itself is not
// occupied, so a new stay may begin the day another ends.
//
// Fields:
//  ID          - reservation identifier, "R" followed by four digits.
//  RoomID      - the booked room; a reference, not ownership.
//  GuestName   - free-text guest name.
//  CheckIn     - first occupied night, UTC midnight.
//  CheckOut    - day of departure, strictly after CheckIn.
//  AmountCents - nights × nightly price, computed once at booking time.
//  Status      - CONFIRMED, CANCELLED or FAILED_PAYMENT.
//  CreatedAt   - creation timestamp.
//
// Reservations are appended in creation order and never physically
// deleted; cancellation only flips the status.
type Reservation struct {
	ID          string    `json:"reservation_id"`
	RoomID      int       `json:"room_id"`
	GuestName   string    `json:"guest_name"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	AmountCents int64     `json:"amount_cents"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Nights returns the stay length in whole days.
func (r Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

// Overlaps applies the half-open interval predicate against another date
// range: [a,b) and [c,d) overlap iff a < d and c < b.
func (r Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckIn.Before(to) && from.Before(r.CheckOut)
}

// String renders the reservation in the display shape used by the console
// UI, e.g. "Reservation[R1234] Guest: Alice, Room: 101, 2024-01-01 -> 2024-01-03, Amount: 80.00, Status: CONFIRMED".
func (r Reservation) String() string {
	return fmt.Sprintf("Reservation[%s] Guest: %s, Room: %d, %s -> %s, Amount: %s, Status: %s",
		r.ID, r.GuestName, r.RoomID,
		r.CheckIn.Format("2006-01-02"), r.CheckOut.Format("2006-01-02"),
		FormatCents(r.AmountCents), r.Status)
}
