package surgery

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
	api.GET("/surgical-cases", h.ListCases)
	api.GET("/surgical-cases/:id", h.GetCase)
	api.POST("/surgical-cases", h.CreateCase)
	api.PUT("/surgical-cases/:id", h.UpdateCase)
	api.DELETE("/surgical-cases/:id", h.DeleteCase)

	api.GET("/surgical-history", h.ListHistory)
	api.GET("/surgical-history/:id", h.GetHistory)
	api.POST("/surgical-history", h.AddHistory)
	api.PUT("/surgical-history/:id", h.UpdateHistory)
	api.DELETE("/surgical-history/:id", h.DeleteHistory)
}

// -- Surgical case handlers --

func (h *Handler) CreateCase(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	var sc Case
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreateCase(c.Request().Context(), caller, &sc)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetCase(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sc, err := h.svc.GetCase(c.Request().Context(), caller, id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, sc)
}

func (h *Handler) UpdateCase(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sc Case
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc.ID = id
	updated, err := h.svc.UpdateCase(c.Request().Context(), caller, &sc)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteCase(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteCase(c.Request().Context(), caller, id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListCases(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCases(c.Request().Context(), caller, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Surgical history handlers --

func (h *Handler) AddHistory(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	var rec History
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.AddHistory(c.Request().Context(), caller, &rec)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetHistory(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.GetHistory(c.Request().Context(), caller, id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) UpdateHistory(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rec History
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.ID = id
	updated, err := h.svc.UpdateHistory(c.Request().Context(), caller, &rec)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteHistory(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteHistory(c.Request().Context(), caller, id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListHistory(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHistory(c.Request().Context(), caller, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
