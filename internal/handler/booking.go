// Package handler implements the HTTP surface over the booking engine.
// Handlers parse and validate input at the boundary (dates, categories),
// translate engine sentinels into HTTP status codes, and never let an
// expected outcome surface as a 5xx.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// BookingHandler serves room and reservation endpoints.
type BookingHandler struct {
	Engine *booking.Engine
}

// NewBookingHandler constructs a BookingHandler.  The engine must be
// non-nil.
func NewBookingHandler(engine *booking.Engine) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine}
}

// roomResp is the wire shape of a room.
type roomResp struct {
	ID         int    `json:"id"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
}

// reservationResp is the wire shape of a reservation.  Dates are plain
// calendar days; the amount is duplicated as a formatted string for
// display convenience.
type reservationResp struct {
	ReservationID string `json:"reservation_id"`
	RoomID        int    `json:"room_id"`
	GuestName     string `json:"guest_name"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	AmountCents   int64  `json:"amount_cents"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID:         r.ID,
		Category:   string(r.Category),
		PriceCents: r.PriceCents,
		Price:      model.FormatCents(r.PriceCents),
	}
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		GuestName:     r.GuestName,
		CheckIn:       r.CheckIn.Format(dateLayout),
		CheckOut:      r.CheckOut.Format(dateLayout),
		AmountCents:   r.AmountCents,
		Amount:        model.FormatCents(r.AmountCents),
		Status:        string(r.Status),
	}
}

func roomList(rooms []model.Room) []roomResp {
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return out
}

func reservationList(reservations []model.Reservation) []reservationResp {
	out := make([]reservationResp, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResp(r))
	}
	return out
}

// ListRooms handles GET /v1/rooms.
func (h *BookingHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, roomList(h.Engine.Rooms()))
}

// SearchRooms handles GET /v1/rooms/search?category=&from=&to=.  Unknown
// categories and bad date ranges are rejected here, upstream of the
// engine.  An empty result is returned as an empty array, not an error.
func (h *BookingHandler) SearchRooms(c echo.Context) error {
	category, err := model.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	from, err := time.Parse(dateLayout, c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.Parse(dateLayout, c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date, expected YYYY-MM-DD"})
	}
	if !from.Before(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be strictly before to"})
	}
	return c.JSON(http.StatusOK, roomList(h.Engine.SearchAvailable(category, from, to)))
}

type bookReq struct {
	RoomID    int    `json:"room_id" validate:"required,gt=0"`
	GuestName string `json:"guest_name" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

// CreateReservation handles POST /v1/reservations.  A declined payment
// is not an HTTP error: the reservation record is still created and
// returned, with status FAILED_PAYMENT.
func (h *BookingHandler) CreateReservation(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkIn, _ := time.Parse(dateLayout, req.CheckIn)
	checkOut, _ := time.Parse(dateLayout, req.CheckOut)

	res, err := h.Engine.MakeReservation(c.Request().Context(), req.RoomID, req.GuestName, checkIn, checkOut)
	switch {
	case errors.Is(err, booking.ErrInvalidDates):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-in must be strictly before check-out"})
	case errors.Is(err, booking.ErrRoomUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room not available for the requested dates"})
	case errors.Is(err, booking.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// CancelReservation handles DELETE /v1/reservations/:id.  Cancelling an
// already cancelled reservation is an idempotent no-op reported as a
// conflict.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	id := c.Param("id")
	err := h.Engine.CancelReservation(c.Request().Context(), id)
	switch {
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": id})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *BookingHandler) GetReservation(c echo.Context) error {
	res, err := h.Engine.ReservationByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// ListReservationsByGuest handles GET /v1/reservations?guest=.  The
// match is case-insensitive and includes cancelled and failed-payment
// records.
func (h *BookingHandler) ListReservationsByGuest(c echo.Context) error {
	guest := c.QueryParam("guest")
	if guest == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest query parameter is required"})
	}
	return c.JSON(http.StatusOK, reservationList(h.Engine.ReservationsForGuest(guest)))
}

// ListAllReservations handles GET /v1/staff/reservations, the staff-only
// view of the full booking history in creation order.  An optional
// ?room_id= filters to one room.
func (h *BookingHandler) ListAllReservations(c echo.Context) error {
	all := h.Engine.Reservations()
	if q := c.QueryParam("room_id"); q != "" {
		roomID, err := strconv.Atoi(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
		}
		filtered := all[:0:0]
		for _, r := range all {
			if r.RoomID == roomID {
				filtered = append(filtered, r)
			}
		}
		all = filtered
	}
	return c.JSON(http.StatusOK, reservationList(all))
}
