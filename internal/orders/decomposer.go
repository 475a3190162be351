package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/storage"
)

// Decomposer deletes an order and its items. Item cleanup is synchronous and
// awaited so deletion is deterministic and testable; individual failures are
// collected and surfaced instead of being discarded.
type Decomposer struct {
	Orders storage.OrderStore
	Items  storage.OrderItemStore
}

// Decompose removes the order, then each referenced item. A missing order is
// ErrOrderNotFound and touches no items. Items already gone are skipped
// silently (idempotent cleanup).
func (d *Decomposer) Decompose(ctx context.Context, id primitive.ObjectID) error {
	order, err := d.Orders.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("orders: look up order %s: %w", id.Hex(), err)
	}

	if err := d.Orders.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("orders: delete order %s: %w", id.Hex(), err)
	}

	var failed []string
	for _, itemID := range order.OrderItems {
		if err := d.Items.Delete(ctx, itemID); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", itemID.Hex(), err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("orders: delete items of %s: %s", id.Hex(), strings.Join(failed, "; "))
	}
	return nil
}
