package catalog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *CatalogService
}

func NewHandler(svc *CatalogService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the catalog reads. They are public: the intake form
// needs department and service options without a session.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/departments", h.ListDepartments)
	api.GET("/departments/grouped", h.Grouped)
	api.GET("/departments/:id/services", h.ListServices)
}

func (h *Handler) ListDepartments(c echo.Context) error {
	items, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list departments")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Grouped(c echo.Context) error {
	items, err := h.svc.Grouped(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list departments")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListServices(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid department id")
	}
	items, err := h.svc.ListServicesByDepartment(c.Request().Context(), id)
	if errors.Is(err, ErrDepartmentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "department not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list services")
	}
	return c.JSON(http.StatusOK, items)
}
