package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/config"
)

// AuthHandler serves the staff login endpoint.  There is a single staff
// account, configured through the environment; its password is bcrypt
// hashed once at startup and only the hash is kept in memory.
type AuthHandler struct {
	Cfg       config.Config
	StaffHash string
}

// NewAuthHandler hashes the configured staff password and returns the
// handler.
func NewAuthHandler(cfg config.Config) (*AuthHandler, error) {
	hash, err := auth.HashPassword(cfg.StaffPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{Cfg: cfg, StaffHash: hash}, nil
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login verifies the staff credentials and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if req.Email != strings.ToLower(h.Cfg.StaffEmail) || !auth.VerifyPassword(h.StaffHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	token, err := auth.NewAccessToken(h.Cfg.JWTSecret, req.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: token.Token, Expires: token.Exp})
}
