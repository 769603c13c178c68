package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/sheetshop/internal/order"
	visitors "github.com/talkincode/sheetshop/internal/session"
)

// orderState is what the order modal needs to draw itself.
type orderState struct {
	Open     bool         `json:"open"`
	Draft    *order.Draft `json:"draft,omitempty"`
	Total    string       `json:"total,omitempty"`
	Selected *bool        `json:"selected,omitempty"`
}

func stateOf(draft order.Draft, open bool) orderState {
	if !open {
		return orderState{}
	}
	return orderState{
		Open:  true,
		Draft: &draft,
		Total: order.Total(draft.Product.Price, draft.Quantity).String(),
	}
}

func currentState(v *visitors.Visitor) orderState {
	return stateOf(v.Draft())
}

func (h *handlers) getOrder(c echo.Context) error {
	return ok(c, currentState(h.visitor(c)))
}

type openPayload struct {
	ID string `json:"id" form:"id" query:"id"`
}

// openOrder selects a product for ordering. An unknown id changes nothing
// and reports selected=false.
func (h *handlers) openOrder(c echo.Context) error {
	var payload openPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	v := h.visitor(c)
	_, selected := v.Select(payload.ID)
	state := currentState(v)
	state.Selected = &selected
	return ok(c, state)
}

func (h *handlers) closeOrder(c echo.Context) error {
	v := h.visitor(c)
	v.Close()
	return ok(c, currentState(v))
}

func (h *handlers) incrementOrder(c echo.Context) error {
	return ok(c, stateOf(h.visitor(c).Increment()))
}

func (h *handlers) decrementOrder(c echo.Context) error {
	return ok(c, stateOf(h.visitor(c).Decrement()))
}

type buyerPayload struct {
	Name    string `json:"name" form:"name"`
	Address string `json:"address" form:"address"`
}

func (h *handlers) setBuyer(c echo.Context) error {
	var payload buyerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	v := h.visitor(c)
	return ok(c, stateOf(v.SetBuyer(payload.Name, payload.Address)))
}

// submitOrder returns the order message and the wa.me link to open. With
// no open draft nothing happens and the closed state is returned.
func (h *handlers) submitOrder(c echo.Context) error {
	v := h.visitor(c)
	sub, submitted, err := v.Submit(c.Request().Context())
	if !submitted {
		return ok(c, currentState(v))
	}
	if err != nil {
		return fail(c, http.StatusServiceUnavailable, "SEND_FAILED", "Failed to build order link", strings.TrimSpace(err.Error()))
	}
	return ok(c, sub)
}
