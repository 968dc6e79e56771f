package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadheryan/pos-terminal/application/cart"
	"github.com/muhammadheryan/pos-terminal/application/catalog"
	"github.com/muhammadheryan/pos-terminal/application/checkout"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	"github.com/muhammadheryan/pos-terminal/model"
	journalrepo "github.com/muhammadheryan/pos-terminal/repository/journal"
	"github.com/muhammadheryan/pos-terminal/utils/logger"
	"go.uber.org/zap"
)

// Terminal is the cart, catalog view and checkout of one logged-in cashier.
type Terminal struct {
	Session  *model.Session
	Cart     cart.CartApp
	Catalog  catalog.CatalogApp
	Checkout checkout.CheckoutApp
}

type TerminalApp interface {
	Get(ctx context.Context, session *model.Session) *Terminal
	Close(sessionID string)
	Sweep(now time.Time) int
}

type terminalAppImpl struct {
	config    *config.Config
	fetcher   catalog.ProductFetcher
	submitter checkout.TransactionSubmitter
	journal   journalrepo.JournalRepository
	publisher checkout.ReceiptPublisher

	mu        sync.Mutex
	terminals map[string]*Terminal
}

func NewTerminalApp(config *config.Config, fetcher catalog.ProductFetcher, submitter checkout.TransactionSubmitter, journal journalrepo.JournalRepository, publisher checkout.ReceiptPublisher) TerminalApp {
	return &terminalAppImpl{
		config:    config,
		fetcher:   fetcher,
		submitter: submitter,
		journal:   journal,
		publisher: publisher,
		terminals: make(map[string]*Terminal),
	}
}

// Get returns the session's terminal, creating it and loading the first catalog page
// on first use.
func (s *terminalAppImpl) Get(ctx context.Context, session *model.Session) *Terminal {
	s.mu.Lock()
	t, ok := s.terminals[session.ID]
	if !ok {
		t = s.newTerminal(session)
		s.terminals[session.ID] = t
	}
	s.mu.Unlock()

	if !ok {
		if _, err := t.Catalog.Fetch(ctx, 1, ""); err != nil {
			logger.Warn("[Get] initial catalog fetch", zap.String("session_id", session.ID), zap.String("error", err.Error()))
		}
	}
	return t
}

func (s *terminalAppImpl) newTerminal(session *model.Session) *Terminal {
	c := cart.NewCartApp()
	cat := catalog.NewCatalogApp(session, s.fetcher, catalog.Options{
		PageSize:       s.config.Backend.PageSize,
		SearchDebounce: s.config.Catalog.SearchDebounce,
		FetchTimeout:   s.config.Catalog.FetchTimeout,
	})
	return &Terminal{
		Session:  session,
		Cart:     c,
		Catalog:  cat,
		Checkout: checkout.NewCheckoutApp(session, c, cat, s.submitter, s.journal, s.publisher),
	}
}

func (s *terminalAppImpl) Close(sessionID string) {
	s.mu.Lock()
	t, ok := s.terminals[sessionID]
	delete(s.terminals, sessionID)
	s.mu.Unlock()

	if ok {
		t.Catalog.Close()
	}
}

// Sweep drops terminals whose session expired before now and reports how many went.
func (s *terminalAppImpl) Sweep(now time.Time) int {
	s.mu.Lock()
	var expired []*Terminal
	for id, t := range s.terminals {
		if !t.Session.ExpiresAt.After(now) {
			expired = append(expired, t)
			delete(s.terminals, id)
		}
	}
	s.mu.Unlock()

	for _, t := range expired {
		t.Catalog.Close()
	}
	return len(expired)
}
