package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
)

// ErrNotFound is returned by every store when the requested document does
// not exist.
var ErrNotFound = errors.New("storage: not found")

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	// List returns all products, or only those in the given categories when
	// the filter is non-empty.
	List(ctx context.Context, categories []primitive.ObjectID) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Product, error)
	SetGallery(ctx context.Context, id primitive.ObjectID, images []string) (*models.Product, error)
}

type OrderItemStore interface {
	Create(ctx context.Context, item *models.OrderItem) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.OrderItem, error)
	// Delete is idempotent: removing an item that is already gone is not an
	// error, so retried cleanup always succeeds.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	// List returns all orders sorted by dateCreated descending.
	List(ctx context.Context) ([]models.Order, error)
	// ListByUser returns one user's orders, dateCreated descending.
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Create(ctx context.Context, o *models.Order) (primitive.ObjectID, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// TotalSales sums totalPrice over all orders; no orders means 0, not an
	// error.
	TotalSales(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int64, error)
}
