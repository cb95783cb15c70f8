package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/api/middleware"
	"github.com/brightpixel/rolodex/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Token middleware. Its
// absence means the route was registered without the middleware.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if !ok || p == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, domain.ErrBadToken.Error())
	}
	return p, nil
}
