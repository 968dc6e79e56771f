package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	sessionapp "github.com/muhammadheryan/pos-terminal/application/session"
	"github.com/muhammadheryan/pos-terminal/application/terminal"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	utilsContext "github.com/muhammadheryan/pos-terminal/utils/context"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
	validatorx "github.com/muhammadheryan/pos-terminal/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	SessionApp  sessionapp.SessionApp
	TerminalApp terminal.TerminalApp
}

func NewTransport(SessionApp sessionapp.SessionApp, TerminalApp terminal.TerminalApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		SessionApp:  SessionApp,
		TerminalApp: TerminalApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// protected routes
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodDelete)

	mux.HandleFunc("/catalog", rh.GetCatalog).Methods(http.MethodGet)
	mux.HandleFunc("/catalog/fetch", rh.FetchCatalog).Methods(http.MethodGet)
	mux.HandleFunc("/catalog/search", rh.SearchCatalog).Methods(http.MethodPost)
	mux.HandleFunc("/catalog/page", rh.RequestPage).Methods(http.MethodPost)

	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart/items", rh.AddItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{id}", rh.SetQuantity).Methods(http.MethodPut)
	mux.HandleFunc("/cart/items/{id}", rh.RemoveItem).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/items/{id}/increment", rh.IncrementItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{id}/decrement", rh.DecrementItem).Methods(http.MethodPost)

	mux.HandleFunc("/checkout/preview", rh.PreviewCheckout).Methods(http.MethodPost)
	mux.HandleFunc("/checkout", rh.SubmitCheckout).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/state", rh.CheckoutState).Methods(http.MethodGet)
	mux.HandleFunc("/checkout/ack", rh.AcknowledgeCheckout).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/journal", rh.CheckoutJournal).Methods(http.MethodGet)

	// middleware
	mux.Use(RequestIDMiddleware())
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(SessionApp))

	return mux
}

// currentTerminal returns the calling cashier's terminal.
func (s *RestHandler) currentTerminal(r *http.Request) (*terminal.Terminal, error) {
	session, ok := utilsContext.GetSession(r.Context())
	if !ok || s.TerminalApp == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.TerminalApp.Get(r.Context(), session), nil
}

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// Login handler
// @Summary Login cashier
// @Description Forward credentials to the backend and open a terminal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if s.SessionApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.SessionApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout cashier
// @Description Close the session and drop its cart
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /logout [delete]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, ok := utilsContext.GetSession(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.SessionApp.Logout(ctx, session.ID); err != nil {
		writeError(w, err)
		return
	}
	s.TerminalApp.Close(session.ID)

	writeSuccess(w, nil)
}

// GetCatalog handler
// @Summary Current catalog page
// @Description Products on display with in-cart quantities subtracted from stock
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CatalogView
// @Router /catalog [get]
func (s *RestHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toCatalogView(t))
}

// FetchCatalog handler
// @Summary Fetch catalog page
// @Description Fetch a page immediately, bypassing the search debounce
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param search query string false "Search text"
// @Success 200 {object} CatalogView
// @Router /catalog/fetch [get]
func (s *RestHandler) FetchCatalog(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
	}

	if _, err := t.Catalog.Fetch(r.Context(), page, r.URL.Query().Get("search")); err != nil && !errors.IsType(err, constant.ErrCatalogUnavailable) {
		writeError(w, err)
		return
	}

	// an unavailable backend keeps the previous page and shows the notice
	writeSuccess(w, toCatalogView(t))
}

// SearchCatalog handler
// @Summary Search text changed
// @Description Debounced: the catalog is re-fetched once typing pauses
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Search Request"
// @Success 202 {object} CatalogView
// @Router /catalog/search [post]
func (s *RestHandler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req SearchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	t.Catalog.OnSearchTextChanged(req.Text)

	writeJSON(w, http.StatusAccepted, Response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    toCatalogView(t),
	})
}

// RequestPage handler
// @Summary Go to catalog page
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PageRequest true "Page Request"
// @Success 200 {object} CatalogView
// @Failure 400 {object} Response
// @Router /catalog/page [post]
func (s *RestHandler) RequestPage(w http.ResponseWriter, r *http.Request) {
	t, err := s.currentTerminal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PageRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := t.Catalog.OnPageRequested(r.Context(), req.Page); err != nil && !errors.IsType(err, constant.ErrCatalogUnavailable) {
		writeError(w, err)
		return
	}

	writeSuccess(w, toCatalogView(t))
}
