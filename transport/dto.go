package transport

import (
	"github.com/muhammadheryan/pos-terminal/application/terminal"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/muhammadheryan/pos-terminal/utils/currency"
)

const currencyMarker = "Rp "

func rupiah(n int64) string {
	return currencyMarker + currency.Format(n)
}

type SearchRequest struct {
	Text string `json:"text"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type AddItemRequest struct {
	ProductID model.ProductID `json:"product_id" validate:"required"`
}

type SetQuantityRequest struct {
	Quantity *int64 `json:"quantity" validate:"required"`
}

// PaymentRequest carries the tendered amount as typed by the cashier, e.g. "Rp 25.000".
type PaymentRequest struct {
	PaymentMethod constant.PaymentMethod `json:"payment_method"`
	Tendered      string                 `json:"tendered"`
}

type CatalogItemView struct {
	ID         model.ProductID `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Price      int64           `json:"price"`
	PriceText  string          `json:"price_text"`
	Stock      int64           `json:"stock"`
	InCart     int64           `json:"in_cart"`
	Available  int64           `json:"available"`
	OutOfStock bool            `json:"out_of_stock"`
}

type CatalogView struct {
	Items      []CatalogItemView     `json:"items"`
	Pagination model.PaginationState `json:"pagination"`
	Search     string                `json:"search"`
	Notice     string                `json:"notice,omitempty"`
}

type CartLineView struct {
	ProductID    model.ProductID `json:"product_id"`
	Name         string          `json:"name"`
	UnitPrice    int64           `json:"unit_price"`
	PriceText    string          `json:"price_text"`
	Quantity     int64           `json:"quantity"`
	Stock        int64           `json:"stock"`
	Subtotal     int64           `json:"subtotal"`
	SubtotalText string          `json:"subtotal_text"`
}

type CartView struct {
	Lines     []CartLineView `json:"lines"`
	Total     int64          `json:"total"`
	TotalText string         `json:"total_text"`
	ItemCount int64          `json:"item_count"`
	Warning   string         `json:"warning,omitempty"`
}

type PreviewView struct {
	*model.CheckoutPreview
	TotalText    string `json:"total_text"`
	TenderedText string `json:"tendered_text"`
	ChangeText   string `json:"change_text,omitempty"`
}

type ResultView struct {
	*model.CheckoutResult
	TotalText  string `json:"total_text"`
	PaidText   string `json:"paid_text"`
	ChangeText string `json:"change_text"`
}

type StatusView struct {
	State   constant.CheckoutState `json:"state"`
	Message string                 `json:"message,omitempty"`
	Result  *ResultView            `json:"result,omitempty"`
}

func toCatalogView(t *terminal.Terminal) CatalogView {
	snap := t.Catalog.Snapshot()
	listing := t.Catalog.Listing(t.Cart.Quantity)

	items := make([]CatalogItemView, 0, len(listing))
	for _, it := range listing {
		items = append(items, CatalogItemView{
			ID:         it.Product.ID,
			Name:       it.Product.Name,
			Category:   it.Product.CategoryLabel,
			Price:      it.Product.UnitPrice,
			PriceText:  rupiah(it.Product.UnitPrice),
			Stock:      it.Product.AvailableStock,
			InCart:     it.InCart,
			Available:  it.Available,
			OutOfStock: it.OutOfStock,
		})
	}
	return CatalogView{
		Items:      items,
		Pagination: snap.Pagination,
		Search:     snap.Search,
		Notice:     snap.Notice,
	}
}

func toCartView(t *terminal.Terminal) CartView {
	lines := t.Cart.Lines()
	views := make([]CartLineView, 0, len(lines))
	var total, count int64
	for _, line := range lines {
		subtotal := line.Subtotal()
		total += subtotal
		count += line.Quantity
		views = append(views, CartLineView{
			ProductID:    line.Product.ID,
			Name:         line.Product.Name,
			UnitPrice:    line.Product.UnitPrice,
			PriceText:    rupiah(line.Product.UnitPrice),
			Quantity:     line.Quantity,
			Stock:        line.Product.AvailableStock,
			Subtotal:     subtotal,
			SubtotalText: rupiah(subtotal),
		})
	}
	return CartView{
		Lines:     views,
		Total:     total,
		TotalText: rupiah(total),
		ItemCount: count,
	}
}

func toPreviewView(p *model.CheckoutPreview) PreviewView {
	v := PreviewView{
		CheckoutPreview: p,
		TotalText:       rupiah(p.Total),
		TenderedText:    rupiah(p.Tendered),
	}
	if p.ChangeApplicable {
		v.ChangeText = rupiah(p.Change)
	}
	return v
}

func toResultView(r *model.CheckoutResult) *ResultView {
	if r == nil {
		return nil
	}
	return &ResultView{
		CheckoutResult: r,
		TotalText:      rupiah(r.Total),
		PaidText:       rupiah(r.Paid),
		ChangeText:     rupiah(r.Change),
	}
}

func toStatusView(s *model.CheckoutStatus) StatusView {
	return StatusView{
		State:   s.State,
		Message: s.Message,
		Result:  toResultView(s.Result),
	}
}
