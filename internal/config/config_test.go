package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != "file" {
		t.Errorf("StoreBackend = %q, want file", cfg.StoreBackend)
	}
	if cfg.PaymentApproveRate != 0.85 {
		t.Errorf("PaymentApproveRate = %v, want 0.85", cfg.PaymentApproveRate)
	}
	if cfg.PaymentDelay != 400*time.Millisecond {
		t.Errorf("PaymentDelay = %v, want 400ms", cfg.PaymentDelay)
	}
	if cfg.StaffEnabled() {
		t.Error("staff surface should be disabled without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "mysql")
	t.Setenv("PAYMENT_APPROVE_RATE", "0.5")
	t.Setenv("PAYMENT_DELAY", "10ms")

	cfg := Load()
	if cfg.Port != "9090" || cfg.StoreBackend != "mysql" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.PaymentApproveRate != 0.5 || cfg.PaymentDelay != 10*time.Millisecond {
		t.Errorf("payment overrides not applied: %+v", cfg)
	}
}

func TestRateLimitWindowClamped(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "500ms")
	if got := LoadRateLimitConfig().Window; got < time.Second {
		t.Errorf("Window = %v, want at least one second", got)
	}

	t.Setenv("RATE_LIMIT_WINDOW", "-1s")
	if got := LoadRateLimitConfig().Window; got < time.Second {
		t.Errorf("Window = %v, want at least one second", got)
	}
}

func TestStaffEnabled(t *testing.T) {
	t.Setenv("STAFF_EMAIL", "staff@hotel.test")
	t.Setenv("STAFF_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "secret")

	if !Load().StaffEnabled() {
		t.Error("staff surface should be enabled when all three values are set")
	}
}
