package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const callerKey contextKey = "caller"

// Role of a User.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePatient Role = "PATIENT"
)

// Identity is the resolved caller of a request.
type Identity struct {
	PIN  string
	Role Role
}

// Claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	PIN  string `json:"pin"`
	Role string `json:"role"`
}

// SessionConfig configures session token issuance and verification.
type SessionConfig struct {
	SigningKey []byte
	TTL        time.Duration
	Issuer     string
}

// IssueToken signs a session token for the given identity.
func IssueToken(cfg SessionConfig, id Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   id.PIN,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
		PIN:  id.PIN,
		Role: string(id.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cfg.SigningKey)
}

// SessionMiddleware resolves the caller from a bearer session token when one
// is present. Requests without an Authorization header pass through with no
// identity: public operations stay reachable, and the authorization gate
// rejects unauthenticated mutations. A malformed or expired token is a hard
// 401 — it is never silently downgraded to "no caller".
func SessionMiddleware(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}
			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256"}),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.SigningKey, nil
			}, opts...)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := WithCaller(c.Request().Context(), Identity{
				PIN:  claims.PIN,
				Role: Role(claims.Role),
			})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// DevSessionMiddleware is a permissive middleware for development that makes
// every request act as the bootstrap admin.
func DevSessionMiddleware(adminPIN string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}
			ctx := WithCaller(c.Request().Context(), Identity{
				PIN:  adminPIN,
				Role: RoleAdmin,
			})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// WithCaller returns a context carrying the resolved caller identity.
func WithCaller(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, callerKey, id)
}

// CallerFromContext retrieves the resolved caller, if any.
func CallerFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(callerKey).(Identity)
	return id, ok
}
