package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/muhammadheryan/pos-terminal/utils/logger"
	"go.uber.org/zap"
)

// ProductFetcher reads one page of sellable products from the backend.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, token string, page, limit int, search string) (*model.ProductPage, error)
}

type CatalogApp interface {
	Fetch(ctx context.Context, page int, search string) (*model.CatalogSnapshot, error)
	OnSearchTextChanged(text string)
	OnPageRequested(ctx context.Context, page int) (*model.CatalogSnapshot, error)
	Refresh(ctx context.Context) (*model.CatalogSnapshot, error)

	Snapshot() *model.CatalogSnapshot
	Lookup(productID model.ProductID) (model.Product, bool)
	Listing(inCart func(model.ProductID) int64) []model.CatalogListingItem
	Close()
}

type Options struct {
	PageSize       int
	SearchDebounce time.Duration
	FetchTimeout   time.Duration
}

type catalogAppImpl struct {
	session *model.Session
	fetcher ProductFetcher
	opts    Options

	mu         sync.Mutex
	products   []model.Product
	pagination model.PaginationState
	search     string
	query      string
	notice     string
	issued     uint64
	timer      *time.Timer
}

func NewCatalogApp(session *model.Session, fetcher ProductFetcher, opts Options) CatalogApp {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &catalogAppImpl{
		session:    session,
		fetcher:    fetcher,
		opts:       opts,
		products:   []model.Product{},
		pagination: model.PaginationState{CurrentPage: 1, PageSize: opts.PageSize, TotalPages: 1},
	}
}

// Fetch replaces the displayed page with the backend's answer for (page, search).
// Only the most recently issued fetch may apply its result; an older response that
// resolves late is dropped. On error the previous page stays displayed.
func (c *catalogAppImpl) Fetch(ctx context.Context, page int, search string) (*model.CatalogSnapshot, error) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.query = search
	c.mu.Unlock()

	res, err := c.fetcher.FetchProducts(ctx, c.session.Token, page, c.opts.PageSize, search)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued {
		logger.Debug("[Fetch] superseded response discarded",
			zap.String("session_id", c.session.ID), zap.Int("page", page), zap.String("search", search))
		return c.snapshotLocked(), nil
	}

	if err != nil {
		logger.Error("[Fetch] err fetcher.FetchProducts", zap.String("session_id", c.session.ID), zap.String("error", err.Error()))
		c.notice = constant.ErrorTypeMessage[constant.ErrCatalogUnavailable]
		return c.snapshotLocked(), errors.SetCustomError(constant.ErrCatalogUnavailable)
	}

	c.products = append(make([]model.Product, 0, len(res.Products)), res.Products...)
	c.pagination = normalizePagination(res.Pagination, page, c.opts.PageSize)
	c.search = search
	c.notice = ""
	return c.snapshotLocked(), nil
}

func normalizePagination(p model.PaginationState, page, pageSize int) model.PaginationState {
	if p.CurrentPage < 1 {
		p.CurrentPage = page
	}
	if p.PageSize < 1 {
		p.PageSize = pageSize
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	return p
}

// OnSearchTextChanged (re)schedules a fetch of page 1 once the text has been quiet
// for the debounce period.
func (c *catalogAppImpl) OnSearchTextChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.SearchDebounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.FetchTimeout)
		defer cancel()
		_, _ = c.Fetch(ctx, 1, text)
	})
}

func (c *catalogAppImpl) OnPageRequested(ctx context.Context, page int) (*model.CatalogSnapshot, error) {
	c.mu.Lock()
	totalPages := c.pagination.TotalPages
	query := c.query
	c.mu.Unlock()

	if page < 1 || page > totalPages {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return c.Fetch(ctx, page, query)
}

// Refresh re-fetches the page currently displayed.
func (c *catalogAppImpl) Refresh(ctx context.Context) (*model.CatalogSnapshot, error) {
	c.mu.Lock()
	page := c.pagination.CurrentPage
	search := c.search
	c.mu.Unlock()

	return c.Fetch(ctx, page, search)
}

func (c *catalogAppImpl) Snapshot() *model.CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *catalogAppImpl) snapshotLocked() *model.CatalogSnapshot {
	return &model.CatalogSnapshot{
		Products:   append(make([]model.Product, 0, len(c.products)), c.products...),
		Pagination: c.pagination,
		Search:     c.search,
		Notice:     c.notice,
	}
}

func (c *catalogAppImpl) Lookup(productID model.ProductID) (model.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

// Listing subtracts what is already in the cart from each product's stock so the
// cashier is never offered more than remains.
func (c *catalogAppImpl) Listing(inCart func(model.ProductID) int64) []model.CatalogListingItem {
	snap := c.Snapshot()

	items := make([]model.CatalogListingItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		var reserved int64
		if inCart != nil {
			reserved = inCart(p.ID)
		}
		available := p.AvailableStock - reserved
		if available < 0 {
			available = 0
		}
		items = append(items, model.CatalogListingItem{
			Product:    p,
			InCart:     reserved,
			Available:  available,
			OutOfStock: available < 1,
		})
	}
	return items
}

func (c *catalogAppImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
