package checkout

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/muhammadheryan/pos-terminal/application/cart"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	journalrepo "github.com/muhammadheryan/pos-terminal/repository/journal"
	"github.com/muhammadheryan/pos-terminal/thirdparty/backend"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/muhammadheryan/pos-terminal/utils/logger"
	validatorx "github.com/muhammadheryan/pos-terminal/utils/validator"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// TransactionSubmitter records a sale with the backend.
type TransactionSubmitter interface {
	CreateTransaction(ctx context.Context, token string, req *model.CheckoutRequest) (*model.TransactionReceipt, error)
}

// CatalogRefresher re-reads the catalog page on display so stock reflects the sale.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (*model.CatalogSnapshot, error)
}

type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, event model.ReceiptEvent) error
}

// submitTimeout bounds the transaction call once it is detached from the caller.
const submitTimeout = 30 * time.Second

type CheckoutApp interface {
	State() constant.CheckoutState
	Status() *model.CheckoutStatus
	Validate(method constant.PaymentMethod, tendered int64) error
	Change(method constant.PaymentMethod, tendered int64) (int64, bool)
	Preview(method constant.PaymentMethod, tendered int64) *model.CheckoutPreview
	Submit(ctx context.Context, method constant.PaymentMethod, tendered int64) (*model.CheckoutResult, error)
	Acknowledge() *model.CheckoutStatus
	History(ctx context.Context, limit int) ([]model.JournalEntry, error)
}

type checkoutAppImpl struct {
	session   *model.Session
	cart      cart.CartApp
	catalog   CatalogRefresher
	submitter TransactionSubmitter
	journal   journalrepo.JournalRepository
	publisher ReceiptPublisher

	mu      sync.Mutex
	state   constant.CheckoutState
	message string
	result  *model.CheckoutResult
}

// NewCheckoutApp wires the coordinator for one session. journal and publisher are
// optional and may be nil.
func NewCheckoutApp(session *model.Session, cart cart.CartApp, catalog CatalogRefresher, submitter TransactionSubmitter, journal journalrepo.JournalRepository, publisher ReceiptPublisher) CheckoutApp {
	return &checkoutAppImpl{
		session:   session,
		cart:      cart,
		catalog:   catalog,
		submitter: submitter,
		journal:   journal,
		publisher: publisher,
		state:     constant.CheckoutStateIdle,
	}
}

func (s *checkoutAppImpl) State() constant.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *checkoutAppImpl) Status() *model.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked()
}

func (s *checkoutAppImpl) statusLocked() *model.CheckoutStatus {
	return &model.CheckoutStatus{
		State:   s.state,
		Message: s.message,
		Result:  s.result,
	}
}

// Validate checks every payment rule against the current cart and reports all
// violations together.
func (s *checkoutAppImpl) Validate(method constant.PaymentMethod, tendered int64) error {
	return validatePayment(s.cart.IsEmpty(), s.cart.Total(), method, tendered)
}

func validatePayment(empty bool, total int64, method constant.PaymentMethod, tendered int64) error {
	var err error
	if empty {
		err = multierr.Append(err, errors.SetCustomError(constant.ErrEmptyCart))
	}

	switch method {
	case constant.PaymentMethodCash:
		if tendered < total {
			err = multierr.Append(err, errors.SetCustomError(constant.ErrInsufficientPayment))
		}
	case constant.PaymentMethodTransfer:
		if tendered != total {
			err = multierr.Append(err, errors.SetCustomError(constant.ErrTransferMismatch))
		}
	default:
		err = multierr.Append(err, errors.SetCustomError(constant.ErrInvalidPaymentMethod))
	}
	return err
}

// Change is tendered minus total for cash and not applicable for transfer.
func (s *checkoutAppImpl) Change(method constant.PaymentMethod, tendered int64) (int64, bool) {
	return change(s.cart.Total(), method, tendered)
}

func change(total int64, method constant.PaymentMethod, tendered int64) (int64, bool) {
	if method != constant.PaymentMethodCash {
		return 0, false
	}
	return tendered - total, true
}

func (s *checkoutAppImpl) Preview(method constant.PaymentMethod, tendered int64) *model.CheckoutPreview {
	empty, total := s.cart.IsEmpty(), s.cart.Total()
	chg, applicable := change(total, method, tendered)

	preview := &model.CheckoutPreview{
		PaymentMethod:    method,
		Total:            total,
		Tendered:         tendered,
		Change:           chg,
		ChangeApplicable: applicable,
		Valid:            true,
	}
	if err := validatePayment(empty, total, method, tendered); err != nil {
		preview.Valid = false
		for _, ce := range errors.Flatten(err) {
			preview.Violations = append(preview.Violations, ce.Error())
		}
	}
	return preview
}

// Submit validates the cart against the payment and sends exactly one transaction to
// the backend. It is not re-entrant: a second call while one is in flight fails with
// ErrCheckoutInProgress. A previous SUCCEEDED or FAILED outcome is acknowledged
// implicitly. Once submitting starts, cancelling ctx no longer aborts the sale.
func (s *checkoutAppImpl) Submit(ctx context.Context, method constant.PaymentMethod, tendered int64) (*model.CheckoutResult, error) {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return nil, errors.SetCustomError(constant.ErrCheckoutInProgress)
	}
	s.state = constant.CheckoutStateValidating
	s.message = ""
	s.result = nil
	s.mu.Unlock()

	log := logger.With(zap.String("session_id", s.session.ID), zap.Uint64("cashier_id", s.session.CashierID))

	lines := s.cart.Lines()
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}

	if err := validatePayment(len(lines) == 0, total, method, tendered); err != nil {
		s.setState(constant.CheckoutStateIdle, "", nil)
		return nil, err
	}

	req := buildRequest(s.session.CashierID, method, total, tendered, lines)
	if err := validatorx.ValidateStruct(req); err != nil {
		log.Error("[Submit] invalid transaction request", zap.String("error", err.Error()))
		s.setState(constant.CheckoutStateIdle, "", nil)
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	s.setState(constant.CheckoutStateSubmitting, "", nil)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), submitTimeout)
	defer cancel()

	receipt, err := s.submitter.CreateTransaction(ctx, s.session.Token, req)
	if err != nil {
		log.Error("[Submit] err submitter.CreateTransaction", zap.String("error", err.Error()))
		failure := classifyFailure(err)
		result := &model.CheckoutResult{
			State: constant.CheckoutStateFailed,
			Total: total,
			Paid:  req.PaidAmount,
		}
		s.setState(constant.CheckoutStateFailed, failure.Error(), result)
		s.record(ctx, req, total, constant.CheckoutStateFailed, failure.Error(), "")
		return nil, failure
	}

	chg, _ := change(total, method, tendered)
	result := &model.CheckoutResult{
		State:   constant.CheckoutStateSucceeded,
		Total:   total,
		Paid:    req.PaidAmount,
		Change:  chg,
		Receipt: receipt,
	}

	s.cart.Clear()
	if _, err := s.catalog.Refresh(ctx); err != nil {
		log.Warn("[Submit] catalog refresh after checkout", zap.String("error", err.Error()))
	}
	s.setState(constant.CheckoutStateSucceeded, "", result)

	log.Info("[Submit] transaction recorded", zap.String("invoice_number", receipt.InvoiceNumber), zap.Int64("total", total))
	s.record(ctx, req, total, constant.CheckoutStateSucceeded, "", receipt.InvoiceNumber)
	s.publish(ctx, req, result)

	return result, nil
}

func buildRequest(cashierID uint64, method constant.PaymentMethod, total, tendered int64, lines []model.CartLine) *model.CheckoutRequest {
	paid := total
	if method == constant.PaymentMethodCash {
		paid = tendered
	}

	items := make([]model.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.CheckoutItem{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	return &model.CheckoutRequest{
		CashierID:     cashierID,
		PaidAmount:    paid,
		PaymentMethod: method,
		Items:         items,
	}
}

// classifyFailure keeps a backend's own rejection message; anything else is reported
// as a generic failure.
func classifyFailure(err error) errors.CustomError {
	var apiErr *backend.APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.SetCustomErrorMessage(constant.ErrBackendRejected, apiErr.Message)
	}
	return errors.SetCustomError(constant.ErrTransactionFailed)
}

func (s *checkoutAppImpl) setState(state constant.CheckoutState, message string, result *model.CheckoutResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.message = message
	s.result = result
}

// Acknowledge returns a finished checkout to IDLE. It does nothing while a submission
// is in flight.
func (s *checkoutAppImpl) Acknowledge() *model.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsTerminal() {
		s.state = constant.CheckoutStateIdle
		s.message = ""
		s.result = nil
	}
	return s.statusLocked()
}

func (s *checkoutAppImpl) History(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	if s.journal == nil {
		return []model.JournalEntry{}, nil
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.journal.ListByCashier(ctx, s.session.CashierID, limit)
	if err != nil {
		logger.Error("[History] err journal.ListByCashier", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entries, nil
}

func (s *checkoutAppImpl) record(ctx context.Context, req *model.CheckoutRequest, total int64, status constant.CheckoutState, message, invoice string) {
	if s.journal == nil {
		return
	}

	entry := &model.JournalEntry{
		SessionID:     s.session.ID,
		CashierID:     req.CashierID,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   total,
		PaidAmount:    req.PaidAmount,
		Status:        status,
		Message:       message,
		InvoiceNumber: invoice,
		Items:         req.Items,
	}
	if _, err := s.journal.InsertAttempt(ctx, entry); err != nil {
		logger.Warn("[Submit] err journal.InsertAttempt", zap.String("session_id", s.session.ID), zap.String("error", err.Error()))
	}
}

func (s *checkoutAppImpl) publish(ctx context.Context, req *model.CheckoutRequest, result *model.CheckoutResult) {
	if s.publisher == nil {
		return
	}

	event := model.ReceiptEvent{
		SessionID:     s.session.ID,
		CashierID:     req.CashierID,
		InvoiceNumber: result.Receipt.InvoiceNumber,
		PaymentMethod: req.PaymentMethod,
		Total:         result.Total,
		Paid:          result.Paid,
		Change:        result.Change,
		Items:         req.Items,
		CompletedAt:   time.Now(),
	}
	if err := s.publisher.PublishReceipt(ctx, event); err != nil {
		logger.Warn("[Submit] err publisher.PublishReceipt", zap.String("session_id", s.session.ID), zap.String("error", err.Error()))
	}
}
