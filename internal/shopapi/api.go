package shopapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/sheetshop/internal/app"
	visitors "github.com/talkincode/sheetshop/internal/session"
	"github.com/talkincode/sheetshop/internal/webserver"
	"go.uber.org/zap"
)

const (
	cookieName   = "sheetshop"
	visitorKey   = "vid"
	noProductMsg = "No products found"
)

type handlers struct {
	app app.AppContext
}

// Register mounts every shop route on srv.
func Register(srv *webserver.Server, appCtx app.AppContext) {
	h := &handlers{app: appCtx}

	srv.GET("/health", h.health)

	srv.ApiGET("/products", h.listProducts)
	srv.ApiGET("/products/:id", h.getProduct)
	srv.ApiGET("/categories", h.listCategories)
	srv.ApiGET("/stats", h.catalogStats)
	srv.ApiGET("/links", h.quickLinks)

	srv.ApiGET("/order", h.getOrder)
	srv.ApiPOST("/order/open", h.openOrder)
	srv.ApiPOST("/order/close", h.closeOrder)
	srv.ApiPOST("/order/increment", h.incrementOrder)
	srv.ApiPOST("/order/decrement", h.decrementOrder)
	srv.ApiPUT("/order/buyer", h.setBuyer)
	srv.ApiPOST("/order/submit", h.submitOrder)

	srv.AdminPOST("/reload", h.reloadCatalog)
	srv.AdminGET("/orders", h.listOrders)
	srv.AdminGET("/jobs", h.listJobs)
	srv.AdminPOST("/jobs/:name/run", h.runJob)
}

func ok(c echo.Context, data interface{}) error {
	return webserver.Ok(c, data)
}

func fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return webserver.Fail(c, status, code, msg, details)
}

// visitor returns the caller's session, creating one (and its cookie) when
// the request carries no known visitor id.
func (h *handlers) visitor(c echo.Context) *visitors.Visitor {
	mgr := h.app.Sessions()
	sess, err := session.Get(cookieName, c)
	if err != nil {
		// a tampered or stale cookie still yields a fresh session
		zap.L().Debug("shopapi: invalid session cookie", zap.Error(err))
	}
	if sess == nil {
		return mgr.New()
	}
	id, _ := sess.Values[visitorKey].(string)
	v := mgr.GetOrNew(id)
	if v.ID() != id {
		sess.Values[visitorKey] = v.ID()
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			zap.L().Warn("shopapi: save session failed", zap.Error(err))
		}
	}
	return v
}

func (h *handlers) health(c echo.Context) error {
	cat := h.app.Catalog()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"products":  cat.Len(),
		"loaded_at": cat.LoadedAt().Format(time.RFC3339),
	})
}

// parsePagination reads page and perPage (or legacy pageSize).
func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	perPage := c.QueryParam("perPage")
	if perPage == "" {
		perPage = c.QueryParam("pageSize")
	}
	if ps, err := strconv.Atoi(perPage); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
