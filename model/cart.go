package model

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

func (l CartLine) Subtotal() int64 {
	return l.Quantity * l.Product.UnitPrice
}
