package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteledger/timesheets/internal/api/middleware"
	"github.com/siteledger/timesheets/internal/core/domain"
)

// ctxActor builds the caller identity injected by the Auth middleware and
// fails fast before any service call when the claims are unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	accountID, _ := c.Get(middleware.ContextAccountID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if accountID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !domain.Role(role).Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	username, _ := c.Get(middleware.ContextUsername).(string)
	return domain.Actor{
		AccountID: accountID,
		Username:  username,
		Role:      domain.Role(role),
	}, nil
}
