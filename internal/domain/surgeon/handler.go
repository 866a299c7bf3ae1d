package surgeon

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
	api.GET("/surgeon-details", h.List)
	api.GET("/surgeon-details/:userID", h.Get)
	api.PUT("/surgeon-details/:userID", h.Save)
	api.DELETE("/surgeon-details/:userID", h.Delete)
}

func (h *Handler) Get(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	d, err := h.svc.Get(c.Request().Context(), caller, userID)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, d)
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

func (h *Handler) Save(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	var d Details
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.UserID = userID
	saved, err := h.svc.Save(c.Request().Context(), caller, &d)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) Delete(c echo.Context) error {
	caller, err := h.callers.Resolve(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.svc.Delete(c.Request().Context(), caller, userID); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
