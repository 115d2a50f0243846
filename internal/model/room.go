package model

import (
	"fmt"
	"strings"
)

// Category is the closed set of room categories offered by the property.
// Values are stored upper-case in the persisted representation.
type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategoryDeluxe   Category = "DELUXE"
	CategorySuite    Category = "SUITE"
)

// ParseCategory converts user input such as "Deluxe" into a Category.
// Unknown values are rejected so that bad input never reaches the engine.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryStandard:
		return CategoryStandard, nil
	case CategoryDeluxe:
		return CategoryDeluxe, nil
	case CategorySuite:
		return CategorySuite, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// Valid reports whether c is one of the three known categories.  It is
// used when decoding persisted data that may predate the current build.
func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryDeluxe, CategorySuite:
		return true
	}
	return false
}

// Room is a bookable unit of the property.
//
// Fields:
//  ID         - numeric identifier, assigned at creation, immutable.
//  Category   - room category (STANDARD, DELUXE, SUITE).
//  PriceCents - nightly price in integer cents; immutable after creation.
//
// Rooms are created from seed data or loaded from the persisted store and
// are never deleted.  A room's availability is derived from the confirmed
// reservations that reference it, never stored on the room itself.
type Room struct {
	ID         int      `json:"id"`
	Category   Category `json:"category"`
	PriceCents int64    `json:"price_cents"`
}

// String renders the room in the display shape used by the console UI,
// e.g. "Room[101] STANDARD - 40.00 per night".
func (r Room) String() string {
	return fmt.Sprintf("Room[%d] %s - %s per night", r.ID, r.Category, FormatCents(r.PriceCents))
}

// FormatCents renders a non-negative cent amount as a decimal string with
// two fractional digits.
func FormatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
