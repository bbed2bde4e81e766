// Package cart is the session cart engine: merge-on-add with add-time
// product snapshots, total computation, and the clear/checkout/confirm
// lifecycle.
package cart

import (
	"context"
	"errors"

	"github.com/xDonalx/BuildStore/internal/domain"
)

// ErrInvalidQuantity is returned for a zero or negative quantity.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type productGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service mutates session-scoped carts. The catalog is consulted only
// when adding; lines keep their add-time snapshot afterwards.
type Service struct {
	products productGetter
}

func New(products productGetter) *Service {
	return &Service{products: products}
}

// Add merges quantity of the product into the cart. The product must
// exist; domain.ErrNotFound aborts before the cart is touched. The
// returned line reflects the post-merge state.
func (s *Service) Add(ctx context.Context, c *domain.Cart, productID int64, quantity int) (domain.CartLine, error) {
	if quantity < 1 {
		return domain.CartLine{}, ErrInvalidQuantity
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	return c.Add(*p, quantity), nil
}

// Total returns the cart total in cents.
func (s *Service) Total(c domain.Cart) int64 {
	return c.TotalCents()
}

// Clear empties the cart. Idempotent.
func (s *Service) Clear(c *domain.Cart) {
	c.Clear()
}

// ConfirmPurchase completes the purchase flow. There is no order
// record or payment step; confirmation just empties the cart.
func (s *Service) ConfirmPurchase(c *domain.Cart) {
	c.Clear()
}

// ViewLine is a display row of the cart projection.
type ViewLine struct {
	ProductID int64
	Name      string
	Price     string
	Quantity  int
	Subtotal  string
}

// View is a read-only projection of a cart for rendering.
type View struct {
	Lines      []ViewLine
	TotalCents int64
	Total      string
	Empty      bool
}

// Checkout builds the read-only projection without mutating the cart.
func (s *Service) Checkout(c domain.Cart) View {
	v := View{
		Lines:      make([]ViewLine, 0, len(c.Lines)),
		TotalCents: c.TotalCents(),
		Empty:      c.IsEmpty(),
	}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, ViewLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     domain.FormatCents(l.PriceCents),
			Quantity:  l.Quantity,
			Subtotal:  domain.FormatCents(l.TotalCents()),
		})
	}
	v.Total = domain.FormatCents(v.TotalCents)
	return v
}
