package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/core/ports"
)

// UserHandler serves the directory routes. Every route expects the Token
// middleware to have run.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

type listUsersResponse struct {
	Status int            `json:"status"`
	Users  []domain.Entry `json:"users"`
}

type getUserResponse struct {
	Status int          `json:"status"`
	User   domain.Entry `json:"user"`
}

type statusResponse struct {
	Status int `json:"status"`
}

// List handles GET /users.
//
// @Summary      List the directory
// @Description  Staff entries plus the caller's own record, in random order.
// @Tags         users
// @Produce      json
// @Security     APIToken
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.directory.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listUsersResponse{Status: http.StatusOK, Users: users})
}

// Get handles GET /users/:uid.
//
// @Summary      Look up a directory entry
// @Tags         users
// @Produce      json
// @Security     APIToken
// @Param        uid  path      int  true  "User identifier"
// @Success      200  {object}  getUserResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{uid} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	uid, err := strconv.Atoi(c.Param("uid"))
	if err != nil {
		return respondError(c, domain.ErrUserNotFound)
	}

	user, err := h.directory.Get(c.Request().Context(), p, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, getUserResponse{Status: http.StatusOK, User: user})
}

// Update handles PUT /users/:uid.
//
// @Summary      Edit the caller's own record
// @Description  Body maps writable attributes (name, location, department, position, notes) to new values; null deletes an attribute.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     APIToken
// @Param        uid   path      int                true  "User identifier"
// @Param        body  body      map[string]string  true  "Attribute changes"
// @Success      200   {object}  statusResponse
// @Success      304
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /users/{uid} [put]
func (h *UserHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	uid, err := strconv.Atoi(c.Param("uid"))
	if err != nil {
		return respondError(c, domain.ErrUserNotFound)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, domain.ErrInvalidJSON)
	}

	if err := h.directory.Update(c.Request().Context(), p, uid, body); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK})
}
