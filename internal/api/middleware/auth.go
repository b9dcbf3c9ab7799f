package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by Auth.
const (
	ContextAccountID    = "account_id"
	ContextUsername     = "username"
	ContextRole         = "role"
	ContextTokenID      = "token_id"
	ContextTokenExpires = "token_expires"
)

// RevocationChecker reports whether a token ID was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the JWT, rejects revoked tokens and injects claims into context.
func Auth(jwtSecret string, revocations RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)
			jti, _ := claims["jti"].(string)
			if sub == "" || role == "" || jti == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					c.Logger().Errorf("revocation lookup failed: %v", err)
					return echo.NewHTTPError(http.StatusServiceUnavailable, "unable to verify token")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			var expires time.Time
			if exp, _ := claims.GetExpirationTime(); exp != nil {
				expires = exp.Time
			}

			c.Set(ContextAccountID, sub)
			c.Set(ContextUsername, username)
			c.Set(ContextRole, role)
			c.Set(ContextTokenID, jti)
			c.Set(ContextTokenExpires, expires)

			return next(c)
		}
	}
}

// TokenExpiry reads the expiry stored by Auth. The zero time means no token.
func TokenExpiry(c echo.Context) time.Time {
	exp, _ := c.Get(ContextTokenExpires).(time.Time)
	return exp
}
