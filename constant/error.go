package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidCredential
	ErrEmptyCart
	ErrInsufficientPayment
	ErrTransferMismatch
	ErrInvalidPaymentMethod
	ErrOutOfStock
	ErrStockLimitReached
	ErrCheckoutInProgress
	ErrTransactionFailed
	ErrBackendRejected
	ErrCatalogUnavailable
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrInvalidCredential:    "invalid username or password",
	ErrEmptyCart:            "cart is empty",
	ErrInsufficientPayment:  "insufficient payment",
	ErrTransferMismatch:     "transfer amount must equal total exactly",
	ErrInvalidPaymentMethod: "payment method must be cash or transfer",
	ErrOutOfStock:           "product is out of stock",
	ErrStockLimitReached:    "stock limit reached",
	ErrCheckoutInProgress:   "checkout already in progress",
	ErrTransactionFailed:    "transaction failed",
	ErrBackendRejected:      "transaction rejected",
	ErrCatalogUnavailable:   "failed to load products",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusNotFound,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrInvalidCredential:    http.StatusUnauthorized,
	ErrEmptyCart:            http.StatusBadRequest,
	ErrInsufficientPayment:  http.StatusBadRequest,
	ErrTransferMismatch:     http.StatusBadRequest,
	ErrInvalidPaymentMethod: http.StatusBadRequest,
	ErrOutOfStock:           http.StatusConflict,
	ErrStockLimitReached:    http.StatusConflict,
	ErrCheckoutInProgress:   http.StatusConflict,
	ErrTransactionFailed:    http.StatusBadGateway,
	ErrBackendRejected:      http.StatusUnprocessableEntity,
	ErrCatalogUnavailable:   http.StatusBadGateway,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrInvalidCredential:    "0005",
	ErrEmptyCart:            "1001",
	ErrInsufficientPayment:  "1002",
	ErrTransferMismatch:     "1003",
	ErrInvalidPaymentMethod: "1004",
	ErrOutOfStock:           "1005",
	ErrStockLimitReached:    "1006",
	ErrCheckoutInProgress:   "1007",
	ErrTransactionFailed:    "2001",
	ErrBackendRejected:      "2002",
	ErrCatalogUnavailable:   "2003",
}
