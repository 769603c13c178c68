package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/app"
	"github.com/talkincode/sheetshop/internal/webserver"
	"go.uber.org/zap"
)

// reloadCatalog fetches the sheet again. A failed fetch keeps the current
// catalog.
func (h *handlers) reloadCatalog(c echo.Context) error {
	n, err := h.app.ReloadCatalog(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusBadGateway, "FEED_ERROR", "Failed to reload products", err.Error())
	}
	zap.L().Info("shopapi: catalog reloaded by admin", zap.Int("count", n))
	return ok(c, map[string]interface{}{"count": n})
}

func (h *handlers) listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	rows, total, err := h.app.OrderLog().List(c.Request().Context(), q, page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return webserver.Paged(c, rows, total, page, pageSize)
}

func (h *handlers) listJobs(c echo.Context) error {
	return ok(c, h.app.Jobs())
}

// runJob queues a scheduled job for an immediate run.
func (h *handlers) runJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.app.RunJob(name); err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Job not found", name)
		}
		return fail(c, http.StatusInternalServerError, "RUN_FAILED", "Failed to run job", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
