package cart

import "go-restaurant-pos/models"

// Cart is the working set of line items for an order in progress. One cart
// belongs to exactly one order-creation session; it is never persisted, only
// the line-item snapshots derived from it are. Entries are unique by product
// id and keep insertion order.
type Cart struct {
	items []models.OrderItem
}

func New() *Cart {
	return &Cart{items: []models.OrderItem{}}
}

// Add puts one more unit of the product in the cart. An existing entry has
// its quantity incremented; the subtotal is recomputed from the product's
// price text on every mutation, so a missing or malformed price counts as 0.
func (c *Cart) Add(product models.Product) {
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			c.items[i].Subtotal = float64(c.items[i].Quantity) * product.Price()
			return
		}
	}
	c.items = append(c.items, models.OrderItem{
		Product:  product,
		Quantity: 1,
		Subtotal: product.Price(),
	})
}

// Remove drops the entry for the product. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// SetQuantity updates an entry's quantity and recomputes its subtotal.
// A quantity of zero or less removes the entry; an absent product is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.items[i].Subtotal = float64(quantity) * c.items[i].Product.Price()
			return
		}
	}
}

// Total is the sum of all entry subtotals, 0 for an empty cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal
	}
	return total
}

func (c *Cart) Items() []models.OrderItem {
	return c.items
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// LineItems snapshots the cart into the persisted order-item form. The
// snapshot decouples historical orders from later product edits.
func (c *Cart) LineItems() []models.OrderLineItem {
	lineItems := make([]models.OrderLineItem, 0, len(c.items))
	for _, item := range c.items {
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID:    item.Product.ID,
			ProductTitle: item.Product.Title,
			Quantity:     item.Quantity,
			Price:        item.Product.Price(),
			Subtotal:     item.Subtotal,
		})
	}
	return lineItems
}
