package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/webserver"
)

// listProducts renders the caller's product view. Send q while typing and
// category when the selector changes; search text is throttled per
// visitor, category changes apply at once.
func (h *handlers) listProducts(c echo.Context) error {
	v := h.visitor(c)
	params := c.QueryParams()

	var (
		view    catalog.View
		updated bool
	)
	if _, has := params["q"]; has {
		view = v.SetSearch(c.QueryParam("q"))
		updated = true
	}
	if _, has := params["category"]; has {
		cat := c.QueryParam("category")
		if cat != v.Query().Category {
			view = v.SetCategory(cat)
			updated = true
		}
	}
	if !updated {
		view = v.View()
	}

	if view.Empty {
		return webserver.OkMsg(c, noProductMsg, view)
	}
	return ok(c, view)
}

func (h *handlers) getProduct(c echo.Context) error {
	p, found := h.app.Catalog().Find(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func (h *handlers) listCategories(c echo.Context) error {
	return ok(c, h.app.Catalog().Categories())
}

func (h *handlers) catalogStats(c echo.Context) error {
	return ok(c, catalog.Stats(h.app.Catalog().Products()))
}

func (h *handlers) quickLinks(c echo.Context) error {
	return ok(c, h.app.Messenger().QuickLinks())
}
