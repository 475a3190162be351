package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

// OrderSummary is the list view: the order plus the purchasing user's
// display name, not the full user record.
type OrderSummary struct {
	models.Order
	UserName string `json:"userName"`
}

// ItemDetail resolves one order item to its full product and the product's
// category. Dangling weak references (product or category deleted since the
// order was placed) leave the corresponding field empty; the order keeps its
// frozen price snapshot either way.
type ItemDetail struct {
	ID       primitive.ObjectID `json:"id"`
	Quantity int                `json:"quantity"`
	Product  *models.Product    `json:"product,omitempty"`
	Category *models.Category   `json:"category,omitempty"`
}

// OrderDetail is the detail view: a read-only join across order, items,
// products and categories.
type OrderDetail struct {
	models.Order
	UserName string       `json:"userName"`
	Items    []ItemDetail `json:"items"`
}

// Views serves the read-only order queries.
type Views struct {
	Orders     storage.OrderStore
	Items      storage.OrderItemStore
	Products   storage.ProductStore
	Categories storage.CategoryStore
	Users      storage.UserStore
}

// List returns all orders, newest first, with user names resolved.
func (v *Views) List(ctx context.Context) ([]OrderSummary, error) {
	all, err := v.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OrderSummary, 0, len(all))
	for _, o := range all {
		out = append(out, OrderSummary{Order: o, UserName: v.userName(ctx, o.User)})
	}
	return out, nil
}

// Detail returns one order with items resolved to product and category.
func (v *Views) Detail(ctx context.Context, id primitive.ObjectID) (*OrderDetail, error) {
	o, err := v.Orders.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	d := &OrderDetail{Order: *o, UserName: v.userName(ctx, o.User)}
	d.Items, err = v.resolveItems(ctx, o.OrderItems)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ByUser returns one user's orders, newest first, with full item detail.
func (v *Views) ByUser(ctx context.Context, user primitive.ObjectID) ([]OrderDetail, error) {
	all, err := v.Orders.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDetail, 0, len(all))
	for _, o := range all {
		d := OrderDetail{Order: o, UserName: v.userName(ctx, o.User)}
		d.Items, err = v.resolveItems(ctx, o.OrderItems)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// TotalSales sums totalPrice over all orders; zero orders yields 0.
func (v *Views) TotalSales(ctx context.Context) (float64, error) {
	return v.Orders.TotalSales(ctx)
}

// Count reports the number of orders; zero is a valid answer, not an error.
func (v *Views) Count(ctx context.Context) (int64, error) {
	return v.Orders.Count(ctx)
}

func (v *Views) resolveItems(ctx context.Context, ids []primitive.ObjectID) ([]ItemDetail, error) {
	out := make([]ItemDetail, 0, len(ids))
	for _, id := range ids {
		item, err := v.Items.Get(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("orders: load item %s: %w", id.Hex(), err)
		}
		detail := ItemDetail{ID: item.ID, Quantity: item.Quantity}
		if product, err := v.Products.Get(ctx, item.Product); err == nil {
			detail.Product = product
			if category, err := v.Categories.Get(ctx, product.Category); err == nil {
				detail.Category = category
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (v *Views) userName(ctx context.Context, id primitive.ObjectID) string {
	u, err := v.Users.Get(ctx, id)
	if err != nil {
		return ""
	}
	return u.Name
}
