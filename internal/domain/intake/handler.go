package intake

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

type Handler struct {
	svc       *Service
	validator *form.Validator
}

func NewHandler(svc *Service, fields []form.Field) *Handler {
	return &Handler{svc: svc, validator: form.Compile(fields)}
}

// RegisterRoutes mounts intake routes. Submission is public by design; only
// the review sits behind the admin group.
func (h *Handler) RegisterRoutes(api, admin *echo.Group) {
	api.POST("/appointments", h.Submit)
	admin.GET("/appointments", h.Review)
}

func (h *Handler) Submit(c echo.Context) error {
	var payload form.Values
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clean, errs := h.validator.Validate(payload)
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	a, err := h.svc.Submit(c.Request().Context(), SubmitInput{
		Name:         clean["name"],
		Surname:      clean["surname"],
		Phone:        clean["phone"],
		Email:        clean["email"],
		DepartmentID: clean["departmentId"],
		ServiceID:    clean["serviceId"],
		Date:         clean["date"],
		DoctorID:     clean["doctorId"],
	})
	if errors.Is(err, ErrBadDate) || errors.Is(err, ErrBadDoctorRef) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to submit appointment request")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Review(c echo.Context) error {
	items, err := h.svc.Review(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointment requests")
	}
	return c.JSON(http.StatusOK, items)
}
