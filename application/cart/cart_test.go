package cart_test

import (
	"errors"
	"math/rand"
	"testing"

	appcart "github.com/muhammadheryan/pos-terminal/application/cart"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	cerr "github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price, stock int64) model.Product {
	return model.Product{ID: model.ProductID(id), Name: "Product " + id, UnitPrice: price, AvailableStock: stock, CategoryLabel: "Snack"}
}

func assertErrType(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestCartApp_Add(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c appcart.CartApp)
		product  model.Product
		wantQty  int64
		wantErr  bool
		errCode  constant.ErrorType
		wantLine bool
	}{
		{
			name:     "success: new line with quantity 1",
			product:  product("1", 10000, 5),
			wantQty:  1,
			wantLine: true,
		},
		{
			name:     "error: out of stock never creates a line",
			product:  product("1", 10000, 0),
			wantErr:  true,
			errCode:  constant.ErrOutOfStock,
			wantLine: false,
		},
		{
			name: "success: existing line is incremented",
			setup: func(c appcart.CartApp) {
				_ = c.Add(product("1", 10000, 5))
			},
			product:  product("1", 10000, 5),
			wantQty:  2,
			wantLine: true,
		},
		{
			name: "error: existing line at ceiling stays at ceiling",
			setup: func(c appcart.CartApp) {
				_ = c.Add(product("1", 10000, 2))
				_ = c.Add(product("1", 10000, 2))
			},
			product:  product("1", 10000, 2),
			wantQty:  2,
			wantErr:  true,
			errCode:  constant.ErrStockLimitReached,
			wantLine: true,
		},
		{
			name: "success: newer snapshot raises the ceiling",
			setup: func(c appcart.CartApp) {
				_ = c.Add(product("1", 10000, 1))
			},
			product:  product("1", 10000, 3),
			wantQty:  2,
			wantLine: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := appcart.NewCartApp()
			if tt.setup != nil {
				tt.setup(c)
			}

			err := c.Add(tt.product)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
			}

			if got := len(c.Lines()) == 1; got != tt.wantLine {
				t.Fatalf("line present = %v, want %v", got, tt.wantLine)
			}
			if got := c.Quantity(tt.product.ID); got != tt.wantQty {
				t.Fatalf("Quantity() = %d, want %d", got, tt.wantQty)
			}
		})
	}
}

func TestCartApp_Increment(t *testing.T) {
	c := appcart.NewCartApp()
	require.NoError(t, c.Add(product("1", 5000, 3)))

	require.NoError(t, c.Increment("1"))
	require.NoError(t, c.Increment("1"))
	assert.Equal(t, int64(3), c.Quantity("1"))

	err := c.Increment("1")
	assertErrType(t, err, constant.ErrStockLimitReached)
	assert.Equal(t, int64(3), c.Quantity("1"))

	err = c.Increment("missing")
	assertErrType(t, err, constant.ErrNotFound)
}

func TestCartApp_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		wantQty  int64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{name: "success: set exact", quantity: 4, wantQty: 4},
		{name: "success: set to ceiling", quantity: 5, wantQty: 5},
		{name: "error: clamp above ceiling", quantity: 9, wantQty: 5, wantErr: true, errCode: constant.ErrStockLimitReached},
		{name: "success: zero removes the line", quantity: 0, wantQty: 0},
		{name: "success: negative removes the line", quantity: -3, wantQty: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := appcart.NewCartApp()
			_ = c.Add(product("1", 10000, 5))

			err := c.SetQuantity("1", tt.quantity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetQuantity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
			}
			if got := c.Quantity("1"); got != tt.wantQty {
				t.Fatalf("Quantity() = %d, want %d", got, tt.wantQty)
			}
			if tt.wantQty == 0 && !c.IsEmpty() {
				t.Fatalf("line with quantity 0 must be removed")
			}
		})
	}
}

func TestCartApp_SetQuantityUnknown(t *testing.T) {
	c := appcart.NewCartApp()
	assertErrType(t, c.SetQuantity("nope", 2), constant.ErrNotFound)
	assert.True(t, c.IsEmpty())
}

func TestCartApp_DecrementAndRemove(t *testing.T) {
	c := appcart.NewCartApp()
	_ = c.Add(product("1", 10000, 5))
	_ = c.Add(product("1", 10000, 5))

	require.NoError(t, c.Decrement("1"))
	assert.Equal(t, int64(1), c.Quantity("1"))

	require.NoError(t, c.Decrement("1"))
	assert.True(t, c.IsEmpty())

	assertErrType(t, c.Decrement("1"), constant.ErrNotFound)

	// removing an absent id is a no-op
	c.Remove("1")
	c.Remove("never-added")
	assert.True(t, c.IsEmpty())
}

func TestCartApp_LinesKeepInsertionOrder(t *testing.T) {
	c := appcart.NewCartApp()
	_ = c.Add(product("3", 100, 5))
	_ = c.Add(product("1", 100, 5))
	_ = c.Add(product("2", 100, 5))
	_ = c.Add(product("1", 100, 5))
	c.Remove("3")
	_ = c.Add(product("3", 100, 5))

	var ids []model.ProductID
	for _, l := range c.Lines() {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []model.ProductID{"1", "2", "3"}, ids)
}

func TestCartApp_TotalsScenario(t *testing.T) {
	c := appcart.NewCartApp()
	_ = c.Add(product("A", 10000, 10))
	_ = c.Increment("A")

	assert.Equal(t, int64(20000), c.Total())
	assert.Equal(t, int64(2), c.ItemCount())

	_ = c.Add(product("B", 2500, 10))
	assert.Equal(t, int64(22500), c.Total())
	assert.Equal(t, int64(3), c.ItemCount())
	assert.Len(t, c.Lines(), 2)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, int64(0), c.ItemCount())
}

func TestCartApp_TotalMatchesLinesUnderRandomOperations(t *testing.T) {
	catalog := []model.Product{
		product("1", 1500, 3),
		product("2", 99000, 1),
		product("3", 250, 10),
		product("4", 7000, 0),
	}
	r := rand.New(rand.NewSource(42))
	c := appcart.NewCartApp()

	for i := 0; i < 500; i++ {
		p := catalog[r.Intn(len(catalog))]
		switch r.Intn(5) {
		case 0:
			_ = c.Add(p)
		case 1:
			_ = c.Increment(p.ID)
		case 2:
			_ = c.Decrement(p.ID)
		case 3:
			_ = c.SetQuantity(p.ID, int64(r.Intn(15)-2))
		case 4:
			c.Remove(p.ID)
		}

		var total, count int64
		for _, l := range c.Lines() {
			if l.Quantity < 1 || l.Quantity > l.Product.AvailableStock {
				t.Fatalf("line %s quantity %d outside 1..%d", l.Product.ID, l.Quantity, l.Product.AvailableStock)
			}
			total += l.Quantity * l.Product.UnitPrice
			count += l.Quantity
		}
		if c.Total() != total {
			t.Fatalf("Total() = %d, want %d", c.Total(), total)
		}
		if c.ItemCount() != count {
			t.Fatalf("ItemCount() = %d, want %d", c.ItemCount(), count)
		}
		if c.Quantity("4") != 0 {
			t.Fatalf("out of stock product ended up in the cart")
		}
	}
}
