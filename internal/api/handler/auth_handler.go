package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenResponse struct {
	Status  int    `json:"status"`
	Token   string `json:"token"`
	UID     int    `json:"uid"`
	Expires int64  `json:"expires"`
}

// Token exchanges basic-auth credentials for an access token.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /token [get]
func (h *AuthHandler) Token(c echo.Context) error {
	username, password, _ := c.Request().BasicAuth()

	issued, err := h.authService.IssueToken(c.Request().Context(), username, password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		Status:  http.StatusOK,
		Token:   issued.Token,
		UID:     issued.UID,
		Expires: issued.Expires,
	})
}
