// Package console implements the interactive text menu.  It is a thin
// loop translating user input into engine calls: all parsing of dates
// and categories happens here, upstream of the core.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

const dateLayout = "2006-01-02"

// UI drives the menu over an input stream and an output writer.  Tests
// feed scripted input; the command wires stdin/stdout.
type UI struct {
	engine *booking.Engine
	store  *store.Store
	in     *bufio.Scanner
	out    io.Writer
}

// New returns a UI reading from in and writing to out.
func New(engine *booking.Engine, st *store.Store, in io.Reader, out io.Writer) *UI {
	return &UI{engine: engine, store: st, in: bufio.NewScanner(in), out: out}
}

// Run loops over the menu until the user exits or input ends.  A final
// save of both collections is attempted on exit; its failure is ignored.
func (u *UI) Run(ctx context.Context) {
	fmt.Fprintln(u.out, "=== Hotel Reservation System ===")
	for {
		u.printMenu()
		choice, ok := u.readLine()
		if !ok {
			u.exit(ctx)
			return
		}
		switch choice {
		case "1":
			u.searchAndBook(ctx)
		case "2":
			u.cancel(ctx)
		case "3":
			u.bookingsByGuest()
		case "4":
			u.reservationDetails()
		case "5":
			u.listRooms()
		case "0":
			u.exit(ctx)
			return
		default:
			fmt.Fprintln(u.out, "Unknown option. Try again.")
		}
	}
}

func (u *UI) printMenu() {
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "Menu:")
	fmt.Fprintln(u.out, "1) Search rooms & Book")
	fmt.Fprintln(u.out, "2) Cancel reservation")
	fmt.Fprintln(u.out, "3) View my bookings (by guest name)")
	fmt.Fprintln(u.out, "4) View booking details (by reservation id)")
	fmt.Fprintln(u.out, "5) List all rooms")
	fmt.Fprintln(u.out, "0) Exit")
	fmt.Fprint(u.out, "Choose: ")
}

func (u *UI) readLine() (string, bool) {
	if !u.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

func (u *UI) prompt(label string) (string, bool) {
	fmt.Fprint(u.out, label)
	return u.readLine()
}

func (u *UI) promptDate(label string) (time.Time, bool) {
	s, ok := u.prompt(label)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		fmt.Fprintf(u.out, "Invalid date %q, expected YYYY-MM-DD.\n", s)
		return time.Time{}, false
	}
	return t, true
}

func (u *UI) searchAndBook(ctx context.Context) {
	catInput, ok := u.prompt("Enter category (Standard/Deluxe/Suite): ")
	if !ok {
		return
	}
	category, err := model.ParseCategory(catInput)
	if err != nil {
		fmt.Fprintf(u.out, "Error: %v\n", err)
		return
	}
	from, ok := u.promptDate("Check-in date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	to, ok := u.promptDate("Check-out date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	if !from.Before(to) {
		fmt.Fprintln(u.out, "Invalid dates: check-in must be before check-out.")
		return
	}

	available := u.engine.SearchAvailable(category, from, to)
	if len(available) == 0 {
		fmt.Fprintln(u.out, "No available rooms found for those dates.")
		return
	}
	fmt.Fprintln(u.out, "Available rooms:")
	for _, room := range available {
		fmt.Fprintf(u.out, " - %s\n", room)
	}

	idInput, ok := u.prompt("Enter room id to book: ")
	if !ok {
		return
	}
	roomID, err := strconv.Atoi(idInput)
	if err != nil {
		fmt.Fprintf(u.out, "Invalid room id %q.\n", idInput)
		return
	}
	guest, ok := u.prompt("Your full name: ")
	if !ok {
		return
	}

	res, err := u.engine.MakeReservation(ctx, roomID, guest, from, to)
	if err != nil {
		fmt.Fprintf(u.out, "Error: %v\n", err)
		return
	}
	if res.Status == model.StatusConfirmed {
		fmt.Fprintf(u.out, "Payment succeeded. Reservation confirmed: %s\n", res.ID)
	} else {
		fmt.Fprintf(u.out, "Payment failed. Reservation recorded as FAILED_PAYMENT with id: %s\n", res.ID)
	}
	fmt.Fprintf(u.out, "Reservation result: %s\n", res)
}

func (u *UI) cancel(ctx context.Context) {
	id, ok := u.prompt("Enter reservation id to cancel (e.g. R1234): ")
	if !ok {
		return
	}
	switch err := u.engine.CancelReservation(ctx, id); err {
	case nil:
		fmt.Fprintf(u.out, "Reservation %s cancelled.\n", id)
	case booking.ErrAlreadyCancelled:
		fmt.Fprintln(u.out, "Reservation already cancelled.")
	case booking.ErrReservationNotFound:
		fmt.Fprintln(u.out, "Reservation id not found.")
	default:
		fmt.Fprintf(u.out, "Error: %v\n", err)
	}
}

func (u *UI) bookingsByGuest() {
	name, ok := u.prompt("Enter guest name: ")
	if !ok {
		return
	}
	list := u.engine.ReservationsForGuest(name)
	if len(list) == 0 {
		fmt.Fprintf(u.out, "No reservations found for %s\n", name)
		return
	}
	fmt.Fprintln(u.out, "Reservations:")
	for _, r := range list {
		fmt.Fprintf(u.out, " - %s\n", r)
	}
}

func (u *UI) reservationDetails() {
	id, ok := u.prompt("Enter reservation id: ")
	if !ok {
		return
	}
	res, err := u.engine.ReservationByID(id)
	if err != nil {
		fmt.Fprintln(u.out, "Reservation not found.")
		return
	}
	fmt.Fprintln(u.out, res)
}

func (u *UI) listRooms() {
	fmt.Fprintln(u.out, "Rooms in system:")
	for _, room := range u.engine.Rooms() {
		fmt.Fprintf(u.out, " - %s\n", room)
	}
}

func (u *UI) exit(ctx context.Context) {
	fmt.Fprintln(u.out, "Saving data and exiting. Goodbye!")
	u.store.SaveAll(ctx)
}
