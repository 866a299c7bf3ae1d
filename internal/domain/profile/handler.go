package profile

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
	api.GET("/profiles", h.List)
	api.GET("/profiles/:id", h.Get)
	api.PUT("/profiles/:id", h.Update)
	api.DELETE("/profiles/:id", h.Delete)
	api.GET("/me", h.Me)
}

// RegisterIdentityHook mounts the signup hook called by the identity store.
// The route group is expected to be restricted to internal traffic.
func (h *Handler) RegisterIdentityHook(g *echo.Group) {
	g.POST("/identity-events", h.IdentityCreated)
}

// IdentityCreated provisions a profile for a new identity. A non-2xx
// response tells the identity store to abort the signup.
func (h *Handler) IdentityCreated(c echo.Context) error {
	var ev IdentityCreated
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Provision(c.Request().Context(), ev)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Me(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	p, err := h.svc.Get(c.Request().Context(), caller, caller.ID)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
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
	p, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
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

func (h *Handler) Update(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	updated, err := h.svc.Update(c.Request().Context(), caller, &p)
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
