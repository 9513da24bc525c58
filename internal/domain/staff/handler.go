package staff

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

type Handler struct {
	engine *crud.Engine[*DoctorDetail]
	svc    *Service
}

func NewHandler(engine *crud.Engine[*DoctorDetail], svc *Service) *Handler {
	return &Handler{engine: engine, svc: svc}
}

// RegisterRoutes mounts doctor routes. Search is public; everything else
// sits behind the admin group.
func (h *Handler) RegisterRoutes(api, admin *echo.Group) {
	api.GET("/doctors/search", h.Search)

	admin.GET("/doctors", h.List)
	admin.POST("/doctors", h.Register)
	admin.GET("/doctors/:pin/edit", h.EditForm)
	admin.PUT("/doctors/:pin", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.engine.View(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctors")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Register(c echo.Context) error {
	var payload form.Values
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, errs, err := h.engine.SubmitCreate(c.Request().Context(), payload)
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	if err != nil {
		return doctorError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) EditForm(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), c.Param("pin"))
	if err != nil {
		return doctorError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"fields": h.engine.EditFields(),
		"values": h.engine.BeginEdit(d),
	})
}

func (h *Handler) Update(c echo.Context) error {
	var payload form.Values
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, errs, err := h.engine.SubmitEdit(c.Request().Context(), c.Param("pin"), payload)
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	if err != nil {
		return doctorError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Search(c echo.Context) error {
	items, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, items)
}

func doctorError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	case errors.Is(err, identity.ErrDuplicatePIN):
		return echo.NewHTTPError(http.StatusConflict, "pin already registered")
	case errors.Is(err, catalog.ErrDepartmentNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, catalog.ErrServiceDepartmentMismatch):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrDoctorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "operation failed")
	}
}
