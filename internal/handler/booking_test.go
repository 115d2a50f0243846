package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/payment"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

func newTestHandler(t *testing.T, approve bool) *BookingHandler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	st := store.Open(context.Background(), store.NewFileBackend(t.TempDir()), log)
	auth := payment.AuthorizerFunc(func(ctx context.Context, amountCents int64) (bool, error) {
		return approve, nil
	})
	return NewBookingHandler(booking.New(st, auth, nil, log))
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reqBody)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestListRooms(t *testing.T) {
	h := newTestHandler(t, true)
	rec := doJSON(t, h.ListRooms, http.MethodGet, "/v1/rooms", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rooms []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rooms) != 5 {
		t.Errorf("got %d rooms, want 5", len(rooms))
	}
	if rooms[0]["price"] != "40.00" {
		t.Errorf("first room price = %v, want formatted 40.00", rooms[0]["price"])
	}
}

func TestSearchRoomsRejectsBadInput(t *testing.T) {
	h := newTestHandler(t, true)

	cases := []struct {
		name   string
		target string
	}{
		{"unknown category", "/v1/rooms/search?category=PENTHOUSE&from=2026-09-10&to=2026-09-12"},
		{"bad from", "/v1/rooms/search?category=STANDARD&from=sept-10&to=2026-09-12"},
		{"bad to", "/v1/rooms/search?category=STANDARD&from=2026-09-10&to=later"},
		{"reversed range", "/v1/rooms/search?category=STANDARD&from=2026-09-12&to=2026-09-10"},
		{"equal dates", "/v1/rooms/search?category=STANDARD&from=2026-09-10&to=2026-09-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.SearchRooms, http.MethodGet, tc.target, "", nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchRoomsFindsAvailable(t *testing.T) {
	h := newTestHandler(t, true)
	rec := doJSON(t, h.SearchRooms, http.MethodGet, "/v1/rooms/search?category=DELUXE&from=2026-09-10&to=2026-09-12", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rooms []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 2 {
		t.Errorf("got %d deluxe rooms, want 2", len(rooms))
	}
}

func TestCreateReservation(t *testing.T) {
	h := newTestHandler(t, true)
	body := `{"room_id":101,"guest_name":"Alice Smith","check_in":"2026-09-10","check_out":"2026-09-12"}`
	rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var res map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res["status"] != "CONFIRMED" {
		t.Errorf("status field = %v, want CONFIRMED", res["status"])
	}
	if res["amount_cents"] != float64(8000) {
		t.Errorf("amount_cents = %v, want 8000", res["amount_cents"])
	}
	if res["amount"] != "80.00" {
		t.Errorf("amount = %v, want 80.00", res["amount"])
	}
}

func TestCreateReservationValidation(t *testing.T) {
	h := newTestHandler(t, true)
	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing guest", `{"room_id":101,"check_in":"2026-09-10","check_out":"2026-09-12"}`, http.StatusBadRequest},
		{"bad date format", `{"room_id":101,"guest_name":"A","check_in":"10/09/2026","check_out":"2026-09-12"}`, http.StatusBadRequest},
		{"equal dates", `{"room_id":101,"guest_name":"A","check_in":"2026-09-10","check_out":"2026-09-10"}`, http.StatusBadRequest},
		{"unknown room", `{"room_id":999,"guest_name":"A","check_in":"2026-09-10","check_out":"2026-09-12"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", tc.body, nil)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body)
			}
		})
	}
}

func TestCreateReservationConflict(t *testing.T) {
	h := newTestHandler(t, true)
	body := `{"room_id":101,"guest_name":"Alice","check_in":"2026-09-10","check_out":"2026-09-12"}`
	if rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first booking status = %d", rec.Code)
	}
	rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("double booking status = %d, want 409", rec.Code)
	}
}

func TestCreateReservationDeclinedPaymentStillCreated(t *testing.T) {
	h := newTestHandler(t, false)
	body := `{"room_id":101,"guest_name":"Alice","check_in":"2026-09-10","check_out":"2026-09-12"}`
	rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 even when payment is declined", rec.Code)
	}
	var res map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res["status"] != "FAILED_PAYMENT" {
		t.Errorf("status field = %v, want FAILED_PAYMENT", res["status"])
	}
}

func TestCancelReservationFlow(t *testing.T) {
	h := newTestHandler(t, true)
	body := `{"room_id":101,"guest_name":"Alice","check_in":"2026-09-10","check_out":"2026-09-12"}`
	rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil)
	var created map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id := created["reservation_id"].(string)

	withID := func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if rec := doJSON(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/"+id, "", withID); rec.Code != http.StatusOK {
		t.Errorf("cancel status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/"+id, "", withID); rec.Code != http.StatusConflict {
		t.Errorf("repeat cancel status = %d, want 409", rec.Code)
	}

	unknown := func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("R0000")
	}
	if rec := doJSON(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/R0000", "", unknown); rec.Code != http.StatusNotFound {
		t.Errorf("unknown cancel status = %d, want 404", rec.Code)
	}
}

func TestListReservationsByGuest(t *testing.T) {
	h := newTestHandler(t, true)
	body := `{"room_id":101,"guest_name":"Alice Smith","check_in":"2026-09-10","check_out":"2026-09-12"}`
	if rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("booking status = %d", rec.Code)
	}

	rec := doJSON(t, h.ListReservationsByGuest, http.MethodGet, "/v1/reservations?guest=alice+smith", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("got %d reservations, want 1", len(list))
	}

	if rec := doJSON(t, h.ListReservationsByGuest, http.MethodGet, "/v1/reservations", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing guest param status = %d, want 400", rec.Code)
	}
}

func TestListAllReservationsRoomFilter(t *testing.T) {
	h := newTestHandler(t, true)
	for _, body := range []string{
		`{"room_id":101,"guest_name":"Alice","check_in":"2026-09-10","check_out":"2026-09-12"}`,
		`{"room_id":201,"guest_name":"Bob","check_in":"2026-09-10","check_out":"2026-09-12"}`,
	} {
		if rec := doJSON(t, h.CreateReservation, http.MethodPost, "/v1/reservations", body, nil); rec.Code != http.StatusCreated {
			t.Fatalf("booking status = %d", rec.Code)
		}
	}

	rec := doJSON(t, h.ListAllReservations, http.MethodGet, "/v1/staff/reservations?room_id=201", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0]["room_id"] != float64(201) {
		t.Errorf("filtered list = %v, want only room 201", list)
	}

	if rec := doJSON(t, h.ListAllReservations, http.MethodGet, "/v1/staff/reservations?room_id=abc", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad room_id status = %d, want 400", rec.Code)
	}
}
