package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/xDonalx/BuildStore/internal/domain"
)

type stubProducts struct {
	byID map[int64]domain.Product
	err  error
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := p
	return &clone, nil
}

func newService(products ...domain.Product) (*Service, *stubProducts) {
	stub := &stubProducts{byID: make(map[int64]domain.Product)}
	for _, p := range products {
		stub.byID[p.ID] = p
	}
	return New(stub), stub
}

func TestAddMergesRepeatedProduct(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, Name: "Tea", PriceCents: 500})

	var c domain.Cart
	ctx := context.Background()

	if _, err := svc.Add(ctx, &c, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, err := svc.Add(ctx, &c, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines))
	}
	if line.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", line.Quantity)
	}
	if got := svc.Total(c); got != 2500 {
		t.Fatalf("expected subtotal 2500, got %d", got)
	}
}

func TestAddTwoProductsTotal(t *testing.T) {
	svc, _ := newService(
		domain.Product{ID: 1, Name: "A", PriceCents: 500},
		domain.Product{ID: 2, Name: "B", PriceCents: 1000},
	)

	var c domain.Cart
	ctx := context.Background()

	if _, err := svc.Add(ctx, &c, 1, 2); err != nil {
		t.Fatalf("add A x2: %v", err)
	}
	if _, err := svc.Add(ctx, &c, 1, 3); err != nil {
		t.Fatalf("add A x3: %v", err)
	}
	if got := svc.Total(c); got != 2500 {
		t.Fatalf("expected 2500 after merging A, got %d", got)
	}
	if _, err := svc.Add(ctx, &c, 2, 1); err != nil {
		t.Fatalf("add B: %v", err)
	}
	if got := svc.Total(c); got != 3500 {
		t.Fatalf("expected 3500, got %d", got)
	}
}

func TestAddFractionalPriceTotal(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, Name: "P", PriceCents: 999})

	var c domain.Cart
	if _, err := svc.Add(context.Background(), &c, 1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.Total(c); got != 2997 {
		t.Fatalf("expected 2997, got %d", got)
	}
}

func TestAddUnknownProductLeavesCartUntouched(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, Name: "Tea", PriceCents: 500})

	var c domain.Cart
	ctx := context.Background()
	if _, err := svc.Add(ctx, &c, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Add(ctx, &c, 99, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
		t.Fatalf("cart was mutated: %+v", c.Lines)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, PriceCents: 500})

	var c domain.Cart
	for _, q := range []int{0, -1, -100} {
		if _, err := svc.Add(context.Background(), &c, 1, q); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
	if !c.IsEmpty() {
		t.Fatalf("cart was mutated: %+v", c.Lines)
	}
}

func TestSnapshotSurvivesCatalogDelete(t *testing.T) {
	svc, stub := newService(domain.Product{ID: 1, Name: "Tea", PriceCents: 500})

	var c domain.Cart
	ctx := context.Background()
	if _, err := svc.Add(ctx, &c, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delete(stub.byID, 1)

	if c.Lines[0].Name != "Tea" || c.Lines[0].PriceCents != 500 {
		t.Fatalf("snapshot changed after catalog delete: %+v", c.Lines[0])
	}
	if got := svc.Total(c); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}

	// Adding the deleted product again is a NotFound, cart unchanged.
	if _, err := svc.Add(ctx, &c, 1, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("cart was mutated: %+v", c.Lines)
	}
}

func TestClearThenTotalIsZero(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, PriceCents: 750})

	var c domain.Cart
	if _, err := svc.Add(context.Background(), &c, 1, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Clear(&c)
	if got := svc.Total(c); got != 0 {
		t.Fatalf("expected 0 after clear, got %d", got)
	}
	svc.Clear(&c)
	if got := svc.Total(c); got != 0 {
		t.Fatalf("clear is not idempotent, got %d", got)
	}
}

func TestConfirmPurchaseEmptiesCart(t *testing.T) {
	svc, _ := newService(
		domain.Product{ID: 1, PriceCents: 500},
		domain.Product{ID: 2, PriceCents: 300},
	)

	var c domain.Cart
	ctx := context.Background()
	if _, err := svc.Add(ctx, &c, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(ctx, &c, 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.ConfirmPurchase(&c)
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after purchase, got %+v", c.Lines)
	}
	if got := svc.Total(c); got != 0 {
		t.Fatalf("expected 0 after purchase, got %d", got)
	}
}

func TestCheckoutProjectionDoesNotMutate(t *testing.T) {
	svc, _ := newService(domain.Product{ID: 1, Name: "Tea", PriceCents: 999})

	var c domain.Cart
	if _, err := svc.Add(context.Background(), &c, 1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := svc.Checkout(c)
	if view.Empty {
		t.Fatal("expected non-empty view")
	}
	if view.Total != "29.97" || view.TotalCents != 2997 {
		t.Fatalf("unexpected total: %q (%d)", view.Total, view.TotalCents)
	}
	if len(view.Lines) != 1 || view.Lines[0].Subtotal != "29.97" || view.Lines[0].Price != "9.99" {
		t.Fatalf("unexpected lines: %+v", view.Lines)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 3 {
		t.Fatalf("checkout mutated the cart: %+v", c.Lines)
	}
}
