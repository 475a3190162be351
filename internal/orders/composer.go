// Package orders holds the order composition workflow: creating an order
// materializes its order items first, resolves each product's current price
// into a total-price snapshot, then persists the parent order referencing
// the items. Deletion reverses this.
package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

var (
	// ErrEmptyOrder rejects a submission with no line items; the total-price
	// reduction is undefined over an empty sequence.
	ErrEmptyOrder = errors.New("orders: order has no items")
	// ErrInvalidQuantity rejects non-positive quantities.
	ErrInvalidQuantity = errors.New("orders: quantity must be positive")
	// ErrProductNotFound reports a line item referencing a product that does
	// not exist. Use errors.As with *ProductNotFoundError for details.
	ErrProductNotFound = errors.New("orders: product not found")
	// ErrOrderNotFound reports a missing order on delete.
	ErrOrderNotFound = errors.New("orders: order not found")
)

// ProductNotFoundError carries the failing product reference and the ids of
// order items persisted before the failure. Those items stay behind
// unreferenced; the ids let operators reconcile, since there is no
// automatic rollback.
type ProductNotFoundError struct {
	Product primitive.ObjectID
	Created []primitive.ObjectID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("orders: product %s not found (%d items already created)", e.Product.Hex(), len(e.Created))
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// ItemRequest is one requester-submitted (product, quantity) pair.
type ItemRequest struct {
	Product  primitive.ObjectID `json:"product"`
	Quantity int                `json:"quantity"`
}

// Draft carries everything the requester submits for a new order.
type Draft struct {
	Items            []ItemRequest
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	User             primitive.ObjectID
}

// Composer builds orders. Item creation happens-before price resolution
// happens-before order persistence: the order document depends on item ids
// and prices that do not exist until the items do.
type Composer struct {
	Items    storage.OrderItemStore
	Products interface {
		Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	}
	Orders storage.OrderStore
}

// Compose persists the draft's items, computes the total-price snapshot and
// persists the order. On failure partway through, already-created items are
// left behind (reported via ProductNotFoundError); cancellation mid-way has
// the same effect.
func (c *Composer) Compose(ctx context.Context, d Draft) (*models.Order, error) {
	if len(d.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, req := range d.Items {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s quantity %d", ErrInvalidQuantity, req.Product.Hex(), req.Quantity)
		}
	}

	// Creation order defines the order's item sequence.
	itemIDs := make([]primitive.ObjectID, 0, len(d.Items))
	for _, req := range d.Items {
		item := &models.OrderItem{Product: req.Product, Quantity: req.Quantity}
		id, err := c.Items.Create(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("orders: create item for product %s: %w", req.Product.Hex(), err)
		}
		itemIDs = append(itemIDs, id)
	}

	var totalPrice float64
	for _, id := range itemIDs {
		item, err := c.Items.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("orders: load item %s: %w", id.Hex(), err)
		}
		product, err := c.Products.Get(ctx, item.Product)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &ProductNotFoundError{Product: item.Product, Created: itemIDs}
		}
		if err != nil {
			return nil, fmt.Errorf("orders: resolve product %s: %w", item.Product.Hex(), err)
		}
		// Zero and negative prices pass through arithmetically; price
		// integrity belongs to the product collection.
		totalPrice += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		OrderItems:       itemIDs,
		ShippingAddress1: d.ShippingAddress1,
		ShippingAddress2: d.ShippingAddress2,
		City:             d.City,
		Zip:              d.Zip,
		Country:          d.Country,
		Phone:            d.Phone,
		Status:           d.Status,
		TotalPrice:       totalPrice,
		User:             d.User,
	}
	if order.Status == "" {
		order.Status = "Pending"
	}
	if _, err := c.Orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("orders: persist order: %w", err)
	}
	return order, nil
}
