package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	sessions auth.SessionConfig
}

func NewHandler(svc *Service, sessions auth.SessionConfig) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
}

type loginRequest struct {
	PIN      string `json:"pin"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	PIN   string    `json:"pin"`
	Name  string    `json:"name"`
	Role  auth.Role `json:"role"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.PIN, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid pin or password")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	token, err := auth.IssueToken(h.sessions, auth.Identity{PIN: u.PIN, Role: u.Role})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, PIN: u.PIN, Name: u.Name, Role: u.Role})
}
