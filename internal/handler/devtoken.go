package handler

// devtoken.go exposes a development-only endpoint that mints access tokens
// for a given user id.  In production the storefront obtains tokens from
// the identity service; this endpoint exists so the booking API can be
// exercised locally without standing that service up.  The router only
// registers it when APP_ENV is not "prod".

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idol0602/cinema-booking-engine/internal/utils"
)

// DevTokenHandler issues short-lived access tokens signed with the
// configured JWT secret.
type DevTokenHandler struct {
	Secret string
	TTLMin int
}

// Issue handles POST /v1/auth/dev-token.  It reads a user_id from the JSON
// body and responds with a signed bearer token and its expiry.
func (h *DevTokenHandler) Issue(c echo.Context) error {
	var req struct {
		UserID uint64 `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	tok, err := utils.NewAccessToken(h.Secret, req.UserID, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}
