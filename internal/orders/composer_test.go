package orders

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

func newFixture() (*Composer, *storage.MemoryProductStore, *storage.MemoryOrderItemStore, *storage.MemoryOrderStore) {
	products := storage.NewMemoryProductStore()
	items := storage.NewMemoryOrderItemStore()
	orders := storage.NewMemoryOrderStore()
	return &Composer{Items: items, Products: products, Orders: orders}, products, items, orders
}

func mustCreateProduct(t *testing.T, s *storage.MemoryProductStore, name string, price float64) primitive.ObjectID {
	t.Helper()
	id, err := s.Create(context.Background(), &models.Product{Name: name, Price: price})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return id
}

func TestComposeTotalPrice(t *testing.T) {
	c, products, _, _ := newFixture()
	ctx := context.Background()

	productA := mustCreateProduct(t, products, "a", 10)
	productB := mustCreateProduct(t, products, "b", 5)

	order, err := c.Compose(ctx, Draft{Items: []ItemRequest{
		{Product: productA, Quantity: 2},
		{Product: productB, Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if order.TotalPrice != 25 {
		t.Fatalf("TotalPrice = %v, want 25", order.TotalPrice)
	}
	if len(order.OrderItems) != 2 {
		t.Fatalf("order should reference 2 items, got %d", len(order.OrderItems))
	}
	if order.Status != "Pending" {
		t.Fatalf("default status = %q, want Pending", order.Status)
	}
}

func TestComposeTotalPriceIsSnapshot(t *testing.T) {
	c, products, _, orderStore := newFixture()
	ctx := context.Background()

	productA := mustCreateProduct(t, products, "a", 10)
	order, err := c.Compose(ctx, Draft{Items: []ItemRequest{{Product: productA, Quantity: 3}}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if order.TotalPrice != 30 {
		t.Fatalf("TotalPrice = %v, want 30", order.TotalPrice)
	}

	// A later price change must not alter the stored total.
	if _, err := products.Update(ctx, productA, &models.Product{Name: "a", Price: 999}); err != nil {
		t.Fatalf("update product: %v", err)
	}
	stored, err := orderStore.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if stored.TotalPrice != 30 {
		t.Fatalf("stored TotalPrice changed to %v after price update", stored.TotalPrice)
	}
}

func TestComposeRejectsEmptyOrder(t *testing.T) {
	c, _, _, _ := newFixture()
	_, err := c.Compose(context.Background(), Draft{})
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("want ErrEmptyOrder, got %v", err)
	}
}

func TestComposeRejectsNonPositiveQuantity(t *testing.T) {
	c, products, _, _ := newFixture()
	productA := mustCreateProduct(t, products, "a", 10)
	for _, q := range []int{0, -1} {
		_, err := c.Compose(context.Background(), Draft{Items: []ItemRequest{{Product: productA, Quantity: q}}})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: want ErrInvalidQuantity, got %v", q, err)
		}
	}
}

func TestComposeUnknownProductReportsPartialState(t *testing.T) {
	c, products, itemStore, _ := newFixture()
	ctx := context.Background()

	productA := mustCreateProduct(t, products, "a", 10)
	missing := primitive.NewObjectID()

	_, err := c.Compose(ctx, Draft{Items: []ItemRequest{
		{Product: productA, Quantity: 1},
		{Product: missing, Quantity: 1},
	}})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	var pnf *ProductNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("error should be *ProductNotFoundError, got %T", err)
	}
	if pnf.Product != missing {
		t.Fatalf("failing product = %s, want %s", pnf.Product.Hex(), missing.Hex())
	}
	// Both items were persisted before resolution failed; they stay behind
	// and the error names them.
	if len(pnf.Created) != 2 {
		t.Fatalf("Created = %d ids, want 2", len(pnf.Created))
	}
	for _, id := range pnf.Created {
		if _, err := itemStore.Get(ctx, id); err != nil {
			t.Fatalf("orphaned item %s should still exist: %v", id.Hex(), err)
		}
	}
}

func TestComposeZeroPricePassesThrough(t *testing.T) {
	c, products, _, _ := newFixture()
	free := mustCreateProduct(t, products, "free", 0)
	order, err := c.Compose(context.Background(), Draft{Items: []ItemRequest{{Product: free, Quantity: 4}}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if order.TotalPrice != 0 {
		t.Fatalf("TotalPrice = %v, want 0", order.TotalPrice)
	}
}

func TestComposePreservesItemOrder(t *testing.T) {
	c, products, itemStore, _ := newFixture()
	ctx := context.Background()

	ids := []primitive.ObjectID{
		mustCreateProduct(t, products, "a", 1),
		mustCreateProduct(t, products, "b", 2),
		mustCreateProduct(t, products, "c", 3),
	}
	reqs := make([]ItemRequest, len(ids))
	for i, id := range ids {
		reqs[i] = ItemRequest{Product: id, Quantity: i + 1}
	}
	order, err := c.Compose(ctx, Draft{Items: reqs})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	for i, itemID := range order.OrderItems {
		item, err := itemStore.Get(ctx, itemID)
		if err != nil {
			t.Fatalf("get item: %v", err)
		}
		if item.Product != ids[i] {
			t.Fatalf("item %d references %s, want %s", i, item.Product.Hex(), ids[i].Hex())
		}
	}
}
