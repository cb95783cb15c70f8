package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/core/ports"
)

const (
	// HeaderAPIToken carries the access token. It wins over the query parameter.
	HeaderAPIToken = "X-API-Token"
	// QueryToken is the fallback query parameter for the access token.
	QueryToken = "token"
	// PrincipalKey is the echo context key holding the *domain.Principal.
	PrincipalKey = "principal"
)

// Token validates the access token and injects the resolved principal into
// the context.
func Token(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderAPIToken)
			if token == "" {
				token = c.QueryParam(QueryToken)
			}

			principal, err := auth.Authorize(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrBadToken) {
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrBadToken.Error())
				}
				return err
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}
