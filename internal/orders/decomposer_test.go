package orders

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/storage"
)

func TestDecomposeRemovesOrderAndItems(t *testing.T) {
	c, products, itemStore, orderStore := newFixture()
	d := &Decomposer{Orders: orderStore, Items: itemStore}
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

	if err := d.Decompose(ctx, order.ID); err != nil {
		t.Fatalf("Decompose error: %v", err)
	}
	if _, err := orderStore.Get(ctx, order.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("order should be gone, got %v", err)
	}
	for _, itemID := range order.OrderItems {
		if _, err := itemStore.Get(ctx, itemID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("item %s should be gone, got %v", itemID.Hex(), err)
		}
	}
}

func TestDecomposeMissingOrder(t *testing.T) {
	c, products, itemStore, orderStore := newFixture()
	d := &Decomposer{Orders: orderStore, Items: itemStore}
	ctx := context.Background()

	// An unrelated order must not be touched by a failed delete.
	productA := mustCreateProduct(t, products, "a", 10)
	other, err := c.Compose(ctx, Draft{Items: []ItemRequest{{Product: productA, Quantity: 1}}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	err = d.Decompose(ctx, primitive.NewObjectID())
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
	for _, itemID := range other.OrderItems {
		if _, err := itemStore.Get(ctx, itemID); err != nil {
			t.Fatalf("unrelated item %s was touched: %v", itemID.Hex(), err)
		}
	}
}

func TestDecomposeIdempotentItemCleanup(t *testing.T) {
	c, products, itemStore, orderStore := newFixture()
	d := &Decomposer{Orders: orderStore, Items: itemStore}
	ctx := context.Background()

	productA := mustCreateProduct(t, products, "a", 10)
	order, err := c.Compose(ctx, Draft{Items: []ItemRequest{
		{Product: productA, Quantity: 1},
		{Product: productA, Quantity: 2},
	}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	// One item was already removed out of band; cleanup must still succeed.
	if err := itemStore.Delete(ctx, order.OrderItems[0]); err != nil {
		t.Fatalf("pre-delete item: %v", err)
	}
	if err := d.Decompose(ctx, order.ID); err != nil {
		t.Fatalf("Decompose with missing item should succeed: %v", err)
	}
	// And deleting an already-deleted item directly is not an error.
	if err := itemStore.Delete(ctx, order.OrderItems[1]); err != nil {
		t.Fatalf("repeat item delete should be idempotent: %v", err)
	}
}
