// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for reservation lifecycle events.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationEvent is published when a reservation is confirmed or
// cancelled.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the store.
type ReservationEvent struct {
	EventID       string `json:"event_id"`
	ReservationID string `json:"reservation_id"`
	RoomID        int    `json:"room_id"`
	GuestName     string `json:"guest_name"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
