package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

type Handler struct {
	engine *crud.Engine[*Patient]
	svc    *Service
}

func NewHandler(engine *crud.Engine[*Patient], svc *Service) *Handler {
	return &Handler{engine: engine, svc: svc}
}

func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/patients", h.List)
	admin.POST("/patients", h.Register)
	admin.GET("/patients/:pin/edit", h.EditForm)
	admin.PUT("/patients/:pin", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.engine.View(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patients")
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
		return patientError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) EditForm(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("pin"))
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"fields": h.engine.EditFields(),
		"values": h.engine.BeginEdit(p),
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
		return patientError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func patientError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	case errors.Is(err, identity.ErrDuplicatePIN):
		return echo.NewHTTPError(http.StatusConflict, "pin already registered")
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "operation failed")
	}
}
