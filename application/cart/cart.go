package cart

import (
	"sync"

	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
)

// CartApp holds the lines of one cashier session. Every quantity stays within
// 1..AvailableStock of the product snapshot the line was last given.
type CartApp interface {
	Add(product model.Product) error
	Increment(productID model.ProductID) error
	SetQuantity(productID model.ProductID, quantity int64) error
	Decrement(productID model.ProductID) error
	Remove(productID model.ProductID)
	Clear()

	Quantity(productID model.ProductID) int64
	Lines() []model.CartLine
	Total() int64
	ItemCount() int64
	IsEmpty() bool
}

type cartAppImpl struct {
	mu    sync.RWMutex
	order []model.ProductID
	lines map[model.ProductID]*model.CartLine
}

func NewCartApp() CartApp {
	return &cartAppImpl{
		lines: make(map[model.ProductID]*model.CartLine),
	}
}

// Add creates a line with quantity 1, or increments an existing one. An existing
// line takes the newer product snapshot before the increment is checked.
func (c *cartAppImpl) Add(product model.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.ID]; ok {
		line.Product = product
		return c.incrementLocked(line)
	}

	if product.AvailableStock < 1 {
		return errors.SetCustomError(constant.ErrOutOfStock)
	}

	c.lines[product.ID] = &model.CartLine{Product: product, Quantity: 1}
	c.order = append(c.order, product.ID)
	return nil
}

func (c *cartAppImpl) Increment(productID model.ProductID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return c.incrementLocked(line)
}

func (c *cartAppImpl) incrementLocked(line *model.CartLine) error {
	if line.Quantity+1 > line.Product.AvailableStock {
		return errors.SetCustomError(constant.ErrStockLimitReached)
	}
	line.Quantity++
	return nil
}

// SetQuantity removes the line below 1 and clamps to the stock ceiling above it.
// A clamp still changes the line and reports ErrStockLimitReached.
func (c *cartAppImpl) SetQuantity(productID model.ProductID, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setQuantityLocked(productID, quantity)
}

func (c *cartAppImpl) setQuantityLocked(productID model.ProductID, quantity int64) error {
	line, ok := c.lines[productID]
	if !ok {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if quantity < 1 {
		c.removeLocked(productID)
		return nil
	}

	if quantity > line.Product.AvailableStock {
		if line.Product.AvailableStock < 1 {
			c.removeLocked(productID)
		} else {
			line.Quantity = line.Product.AvailableStock
		}
		return errors.SetCustomError(constant.ErrStockLimitReached)
	}

	line.Quantity = quantity
	return nil
}

func (c *cartAppImpl) Decrement(productID model.ProductID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return c.setQuantityLocked(productID, line.Quantity-1)
}

func (c *cartAppImpl) Remove(productID model.ProductID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
}

func (c *cartAppImpl) removeLocked(productID model.ProductID) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *cartAppImpl) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[model.ProductID]*model.CartLine)
	c.order = nil
}

func (c *cartAppImpl) Quantity(productID model.ProductID) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns a copy of the lines in insertion order.
func (c *cartAppImpl) Lines() []model.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *cartAppImpl) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

func (c *cartAppImpl) ItemCount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int64
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *cartAppImpl) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.lines) == 0
}
