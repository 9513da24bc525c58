package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when a mutating operation is invoked without a
// resolved caller, by an unknown user, or by a caller lacking the required
// role. Gate checks run before any persistence side effect.
var ErrUnauthorized = errors.New("unauthorized")

// Directory resolves a caller's stored role by pin. Implemented by the
// identity service; the indirection keeps this package free of domain
// imports.
type Directory interface {
	RoleOf(ctx context.Context, pin string) (Role, bool, error)
}

// Gate wraps mutating operations with role checks. The session token names a
// caller, but the authoritative role is always re-read from the directory:
// a stale or tampered token never grants more than the stored role allows.
type Gate struct {
	dir Directory
}

func NewGate(dir Directory) *Gate {
	return &Gate{dir: dir}
}

// Require resolves the caller and checks it holds the given role. An empty
// role only requires a known caller.
func (g *Gate) Require(ctx context.Context, role Role) (Identity, error) {
	id, ok := CallerFromContext(ctx)
	if !ok {
		return Identity{}, ErrUnauthorized
	}

	actual, found, err := g.dir.RoleOf(ctx, id.PIN)
	if err != nil {
		return Identity{}, fmt.Errorf("resolve caller %s: %w", id.PIN, err)
	}
	if !found {
		return Identity{}, ErrUnauthorized
	}
	if role != "" && actual != role {
		return Identity{}, ErrUnauthorized
	}

	return Identity{PIN: id.PIN, Role: actual}, nil
}

// RequireAdmin is shorthand for Require(ctx, RoleAdmin).
func (g *Gate) RequireAdmin(ctx context.Context) (Identity, error) {
	return g.Require(ctx, RoleAdmin)
}

// RequireAdminMiddleware rejects requests whose caller is missing (401) or
// not an admin (403) before the handler runs.
func RequireAdminMiddleware(g *Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := CallerFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, err := g.RequireAdmin(ctx); err != nil {
				if errors.Is(err, ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusForbidden, "admin role required")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "caller resolution failed")
			}
			return next(c)
		}
	}
}
