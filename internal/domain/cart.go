package domain

// CartLine is a single cart entry. Name and PriceCents are captured
// from the product at the moment it is added and are never refreshed,
// even if the catalog record changes or disappears afterwards.
type CartLine struct {
	ProductID  int64  `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// TotalCents is the line subtotal.
func (l CartLine) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Cart is the session-scoped shopping cart. Lines keep insertion
// order; there is at most one line per product id.
type Cart struct {
	Lines []CartLine `json:"lines,omitempty"`
}

// Add merges quantity into the existing line for the product, or
// appends a new line with an add-time snapshot of name and price.
// It returns the line that was created or updated.
func (c *Cart) Add(p Product, quantity int) CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity += quantity
			return c.Lines[i]
		}
	}
	line := CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   quantity,
	}
	c.Lines = append(c.Lines, line)
	return line
}

// TotalCents sums price*quantity over all lines. Empty cart is 0.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.TotalCents()
	}
	return total
}

// TotalQuantity is the number of items across all lines.
func (c Cart) TotalQuantity() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Clear drops all lines. Safe to call on an empty cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
