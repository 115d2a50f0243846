package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func staffConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		AccessTTLMin:  30,
		BcryptCost:    4,
		StaffEmail:    "staff@hotel.test",
		StaffPassword: "hunter2",
	}
}

func TestLoginIssuesToken(t *testing.T) {
	h, err := NewAuthHandler(staffConfig())
	if err != nil {
		t.Fatalf("NewAuthHandler: %v", err)
	}

	body := `{"email":"Staff@Hotel.Test","password":"hunter2"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["token"] == "" || resp["token"] == nil {
		t.Error("empty token in response")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, err := NewAuthHandler(staffConfig())
	if err != nil {
		t.Fatalf("NewAuthHandler: %v", err)
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"email":"staff@hotel.test","password":"wrong"}`, http.StatusUnauthorized},
		{"wrong email", `{"email":"other@hotel.test","password":"hunter2"}`, http.StatusUnauthorized},
		{"empty body", `{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", tc.body, nil)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
