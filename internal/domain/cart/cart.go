package cart

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidProduct  = errors.New("product id is required")
)

const MinQuantity = 1

type Item struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPriceSnapshot is informational only; totals always reprice from the catalog.
	UnitPriceSnapshot *int64
}

// Cart is an ordered set of items keyed by product id. No two items share a product id.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// FromItems rebuilds a cart from persisted or remote rows. Duplicate product ids are
// summed and non-positive quantities dropped so the result always holds the invariant.
func FromItems(items []Item) *Cart {
	c := New()
	for _, it := range items {
		if it.ProductID == uuid.Nil || it.Quantity < MinQuantity {
			continue
		}
		if idx := c.indexOf(it.ProductID); idx >= 0 {
			c.items[idx].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Add increments the quantity when the product is already present.
func (c *Cart) Add(productID uuid.UUID, qty int) error {
	if productID == uuid.Nil {
		return ErrInvalidProduct
	}
	if qty < MinQuantity {
		return ErrInvalidQuantity
	}
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity += qty
		return nil
	}
	c.items = append(c.items, Item{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity sets an absolute quantity; anything below 1 removes the item.
// Setting a quantity for an absent product adds it.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	if productID == uuid.Nil {
		return ErrInvalidProduct
	}
	if qty < MinQuantity {
		c.Remove(productID)
		return nil
	}
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity = qty
		return nil
	}
	c.items = append(c.items, Item{ProductID: productID, Quantity: qty})
	return nil
}

// Remove reports whether the product was present.
func (c *Cart) Remove(productID uuid.UUID) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

func (c *Cart) Quantity(productID uuid.UUID) (int, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx].Quantity, true
	}
	return 0, false
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ProductID
	}
	return ids
}

func (c *Cart) Len() int      { return len(c.items) }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
