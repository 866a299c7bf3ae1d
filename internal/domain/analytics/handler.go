package analytics

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/httperr"
	"github.com/surgicare/surgicare/pkg/pagination"
)

type Handler struct {
	svc     *Service
	callers *authz.CallerResolver
}

func NewHandler(svc *Service, callers *authz.CallerResolver) *Handler {
	return &Handler{svc: svc, callers: callers}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/historical-data", h.List)
	api.GET("/historical-data/:id", h.Get)
	api.POST("/historical-data", h.Create)
	api.PUT("/historical-data/:id", h.Update)
	api.DELETE("/historical-data/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	var v VolumeSample
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.Create(c.Request().Context(), caller, &v)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Update(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var v VolumeSample
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	updated, err := h.svc.Update(c.Request().Context(), caller, &v)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), caller, id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) List(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), caller, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
