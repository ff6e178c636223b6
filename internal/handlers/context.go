package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// getUserIDFromContext returns the authenticated user's id, 0 when absent
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

func parseIDParam(c echo.Context, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+what+" ID")
	}
	return uint(id), nil
}

// queryUint reads an optional numeric filter; absent means 0
func queryUint(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return uint(v), nil
}

func pageFromQuery(c echo.Context) services.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return services.NewPage(page, size)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// serviceError maps a service failure to an HTTP error. Anything that is not
// a typed service error is logged and hidden behind a 500.
func serviceError(c echo.Context, err error) error {
	var serr *services.Error
	if errors.As(err, &serr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(serr.Kind, services.ErrValidation), errors.Is(serr.Kind, services.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(serr.Kind, services.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(serr.Kind, services.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(serr.Kind, services.ErrNotFound):
			status = http.StatusNotFound
		}
		return echo.NewHTTPError(status, serr.Message)
	}

	logger.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// respondPage renders a page in the {success, data, meta} envelope
func respondPage[T any, R any](c echo.Context, key string, result services.PageResult[T], convert func(T) R) error {
	items := make([]R, len(result.Items))
	for i, item := range result.Items {
		items[i] = convert(item)
	}
	totalPages := result.TotalPages()
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			key: items,
		},
		"meta": echo.Map{
			"currentPage":     result.Page.Number,
			"totalPages":      totalPages,
			"totalItems":      result.Total,
			"itemsPerPage":    result.Page.Size,
			"hasNextPage":     result.HasNext(),
			"hasPreviousPage": result.HasPrevious(),
		},
	})
}

func identity[T any](v T) T { return v }
