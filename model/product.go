package model

import (
	"encoding/json"
	"strings"
)

// ProductID is an opaque product identifier. The backend sends numeric ids; the
// terminal treats them as strings and writes numeric ids back as JSON numbers.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

func (id ProductID) IsNumeric() bool {
	s := string(id)
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ProductID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ProductID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// Product is a read-only catalog snapshot as returned by GET /barang.
type Product struct {
	ID             ProductID `json:"id"`
	Name           string    `json:"nama"`
	UnitPrice      int64     `json:"harga"`
	AvailableStock int64     `json:"stok"`
	CategoryID     uint64    `json:"category_id"`
	CategoryLabel  string    `json:"category_title"`
}

type PaginationState struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"limit"`
	TotalItems  int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

type ProductPage struct {
	Products   []Product       `json:"data"`
	Pagination PaginationState `json:"pagination"`
}

// CatalogSnapshot is the catalog view state currently displayed to the cashier.
type CatalogSnapshot struct {
	Products   []Product       `json:"products"`
	Pagination PaginationState `json:"pagination"`
	Search     string          `json:"search"`
	Notice     string          `json:"notice,omitempty"`
}

// CatalogListingItem is a product with the in-cart quantity subtracted from its stock.
type CatalogListingItem struct {
	Product    Product `json:"product"`
	InCart     int64   `json:"in_cart"`
	Available  int64   `json:"available"`
	OutOfStock bool    `json:"out_of_stock"`
}
