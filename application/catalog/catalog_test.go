package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appcatalog "github.com/muhammadheryan/pos-terminal/application/catalog"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	cerr "github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	page   int
	limit  int
	search string
	token  string
}

// fakeFetcher answers by search text; a search listed in gates blocks until its
// channel is closed.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	pages map[string]*model.ProductPage
	errs  map[string]error
	gates map[string]chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]*model.ProductPage{},
		errs:  map[string]error{},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeFetcher) FetchProducts(ctx context.Context, token string, page, limit int, search string) (*model.ProductPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{page: page, limit: limit, search: search, token: token})
	gate := f.gates[search]
	res, err := f.pages[search], f.errs[search]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &model.ProductPage{Products: []model.Product{}}, nil
	}
	return res, nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func pageOf(page, totalPages int, products ...model.Product) *model.ProductPage {
	return &model.ProductPage{
		Products:   products,
		Pagination: model.PaginationState{CurrentPage: page, PageSize: 10, TotalItems: int64(len(products)), TotalPages: totalPages},
	}
}

var session = &model.Session{ID: "sess-1", Token: "tok", CashierID: 3}

func newCatalog(f *fakeFetcher) appcatalog.CatalogApp {
	return appcatalog.NewCatalogApp(session, f, appcatalog.Options{PageSize: 10, SearchDebounce: 30 * time.Millisecond, FetchTimeout: time.Second})
}

func TestCatalogApp_FetchReplacesState(t *testing.T) {
	f := newFakeFetcher()
	f.pages["a"] = pageOf(1, 3, model.Product{ID: "1", Name: "Apel", UnitPrice: 5000, AvailableStock: 4})
	c := newCatalog(f)

	snap, err := c.Fetch(context.Background(), 1, "a")
	require.NoError(t, err)
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, "a", snap.Search)
	assert.Equal(t, 3, snap.Pagination.TotalPages)
	assert.Equal(t, []fetchCall{{page: 1, limit: 10, search: "a", token: "tok"}}, f.Calls())

	p, ok := c.Lookup("1")
	assert.True(t, ok)
	assert.Equal(t, "Apel", p.Name)
	_, ok = c.Lookup("2")
	assert.False(t, ok)
}

func TestCatalogApp_FetchErrorKeepsPreviousList(t *testing.T) {
	f := newFakeFetcher()
	f.pages[""] = pageOf(1, 1, model.Product{ID: "1", Name: "Apel", AvailableStock: 4})
	f.errs["x"] = errors.New("connection refused")
	c := newCatalog(f)

	_, err := c.Fetch(context.Background(), 1, "")
	require.NoError(t, err)

	snap, err := c.Fetch(context.Background(), 1, "x")
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrCatalogUnavailable], ce.ErrorCode())
	require.NotNil(t, snap)
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, "", snap.Search)
	assert.NotEmpty(t, snap.Notice)

	// the notice clears with the next good answer
	snap, err = c.Fetch(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Empty(t, snap.Notice)
}

func TestCatalogApp_LateOlderResponseIsDiscarded(t *testing.T) {
	f := newFakeFetcher()
	f.pages["a"] = pageOf(1, 1, model.Product{ID: "1", Name: "Apel"})
	f.pages["ab"] = pageOf(1, 1, model.Product{ID: "2", Name: "Abon"})
	gate := make(chan struct{})
	f.gates["a"] = gate
	c := newCatalog(f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), 1, "a")
	}()
	require.Eventually(t, func() bool { return len(f.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	snap, err := c.Fetch(context.Background(), 1, "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", snap.Search)

	close(gate)
	<-done

	snap = c.Snapshot()
	assert.Equal(t, "ab", snap.Search)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, model.ProductID("2"), snap.Products[0].ID)
}

func TestCatalogApp_SearchIsDebounced(t *testing.T) {
	f := newFakeFetcher()
	f.pages["kop"] = pageOf(1, 1, model.Product{ID: "9", Name: "Kopi"})
	c := newCatalog(f)
	defer c.Close()

	c.OnSearchTextChanged("k")
	c.OnSearchTextChanged("ko")
	c.OnSearchTextChanged("kop")

	require.Eventually(t, func() bool { return c.Snapshot().Search == "kop" }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []fetchCall{{page: 1, limit: 10, search: "kop", token: "tok"}}, f.Calls())
}

func TestCatalogApp_OnPageRequested(t *testing.T) {
	f := newFakeFetcher()
	f.pages["s"] = pageOf(1, 3)
	c := newCatalog(f)

	_, err := c.Fetch(context.Background(), 1, "s")
	require.NoError(t, err)

	tests := []struct {
		name    string
		page    int
		wantErr bool
	}{
		{name: "error: page zero", page: 0, wantErr: true},
		{name: "error: past last page", page: 4, wantErr: true},
		{name: "success: last page keeps search", page: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			before := len(f.Calls())
			_, err := c.OnPageRequested(context.Background(), tt.page)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OnPageRequested() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assert.Len(t, f.Calls(), before)
				return
			}
			calls := f.Calls()
			assert.Equal(t, fetchCall{page: tt.page, limit: 10, search: "s", token: "tok"}, calls[len(calls)-1])
		})
	}
}

func TestCatalogApp_RefreshUsesDisplayedPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages["teh"] = pageOf(2, 2)
	c := newCatalog(f)

	_, err := c.Fetch(context.Background(), 2, "teh")
	require.NoError(t, err)
	_, err = c.Refresh(context.Background())
	require.NoError(t, err)

	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, fetchCall{page: 2, limit: 10, search: "teh", token: "tok"}, calls[1])
}

func TestCatalogApp_Listing(t *testing.T) {
	f := newFakeFetcher()
	f.pages[""] = pageOf(1, 1,
		model.Product{ID: "1", AvailableStock: 5},
		model.Product{ID: "2", AvailableStock: 1},
		model.Product{ID: "3", AvailableStock: 0},
	)
	c := newCatalog(f)
	_, err := c.Fetch(context.Background(), 1, "")
	require.NoError(t, err)

	inCart := map[model.ProductID]int64{"1": 2, "2": 1}
	items := c.Listing(func(id model.ProductID) int64 { return inCart[id] })

	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].Available)
	assert.Equal(t, int64(2), items[0].InCart)
	assert.False(t, items[0].OutOfStock)
	assert.Equal(t, int64(0), items[1].Available)
	assert.True(t, items[1].OutOfStock)
	assert.True(t, items[2].OutOfStock)

	// catalog stock is never touched by the listing
	p, _ := c.Lookup("1")
	assert.Equal(t, int64(5), p.AvailableStock)
}
