package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/pos-terminal/application/terminal"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
)

// writeCart answers a cart mutation. Stock signals are not failures: the cart is
// returned as it now stands with the signal as a warning.
func writeCart(w http.ResponseWriter, t *terminal.Terminal, err error) {
	if err != nil && !isStockSignal(err) {
		writeError(w, err)
		return
	}

	view := toCartView(t)
	if err != nil {
		view.Warning = err.Error()
	}
	writeSuccess(w, view)
}

func isStockSignal(err error) bool {
	return errors.IsType(err, constant.ErrOutOfStock) || errors.IsType(err, constant.ErrStockLimitReached)
}

func productID(r *http.Request) model.ProductID {
	return model.ProductID(mux.Vars(r)["id"])
}

// GetCart handler
// @Summary Current cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartView
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toCartView(t))
}

// AddItem handler
// @Summary Add product to cart
// @Description Adds one unit of a product from the catalog page on display
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddItemRequest true "Add Item Request"
// @Success 200 {object} CartView
// @Failure 404 {object} Response
// @Router /cart/items [post]
func (s *RestHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req AddItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, ok := t.Catalog.Lookup(req.ProductID)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	writeCart(w, t, t.Cart.Add(product))
}

// SetQuantity handler
// @Summary Set line quantity
// @Description Below 1 removes the line; above stock clamps to stock
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body SetQuantityRequest true "Set Quantity Request"
// @Success 200 {object} CartView
// @Router /cart/items/{id} [put]
func (s *RestHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req SetQuantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeCart(w, t, t.Cart.SetQuantity(productID(r), *req.Quantity))
}

// IncrementItem handler
// @Summary Increment line quantity
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} CartView
// @Router /cart/items/{id}/increment [post]
func (s *RestHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCart(w, t, t.Cart.Increment(productID(r)))
}

// DecrementItem handler
// @Summary Decrement line quantity
// @Description Decrementing a quantity of 1 removes the line
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} CartView
// @Router /cart/items/{id}/decrement [post]
func (s *RestHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCart(w, t, t.Cart.Decrement(productID(r)))
}

// RemoveItem handler
// @Summary Remove line
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} CartView
// @Router /cart/items/{id} [delete]
func (s *RestHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	t.Cart.Remove(productID(r))
	writeCart(w, t, nil)
}
