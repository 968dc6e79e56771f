package transport

import (
	"net/http"
	"strconv"

	"github.com/muhammadheryan/pos-terminal/utils/currency"
)

// PreviewCheckout handler
// @Summary Validate payment and compute change
// @Description Never submits; lists every rule the payment currently violates
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment Request"
// @Success 200 {object} PreviewView
// @Router /checkout/preview [post]
func (s *RestHandler) PreviewCheckout(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toPreviewView(t.Checkout.Preview(req.PaymentMethod, currency.Parse(req.Tendered))))
}

// SubmitCheckout handler
// @Summary Submit transaction
// @Description Validates, then sends the cart to the backend exactly once
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment Request"
// @Success 200 {object} ResultView
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Failure 422 {object} Response
// @Failure 502 {object} Response
// @Router /checkout [post]
func (s *RestHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := t.Checkout.Submit(r.Context(), req.PaymentMethod, currency.Parse(req.Tendered))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toResultView(res))
}

// CheckoutState handler
// @Summary Checkout state
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusView
// @Router /checkout/state [get]
func (s *RestHandler) CheckoutState(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toStatusView(t.Checkout.Status()))
}

// AcknowledgeCheckout handler
// @Summary Dismiss checkout outcome
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusView
// @Router /checkout/ack [post]
func (s *RestHandler) AcknowledgeCheckout(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toStatusView(t.Checkout.Acknowledge()))
}

// CheckoutJournal handler
// @Summary Recent checkout attempts of this cashier
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 20)"
// @Success 200 {array} model.JournalEntry
// @Router /checkout/journal [get]
func (s *RestHandler) CheckoutJournal(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := t.Checkout.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, entries)
}
