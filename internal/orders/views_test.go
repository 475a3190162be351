package orders

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

func newViewsFixture() (*Views, *Composer, *storage.MemoryProductStore, *storage.MemoryCategoryStore, *storage.MemoryUserStore) {
	products := storage.NewMemoryProductStore()
	categories := storage.NewMemoryCategoryStore()
	users := storage.NewMemoryUserStore()
	items := storage.NewMemoryOrderItemStore()
	orderStore := storage.NewMemoryOrderStore()
	v := &Views{Orders: orderStore, Items: items, Products: products, Categories: categories, Users: users}
	c := &Composer{Items: items, Products: products, Orders: orderStore}
	return v, c, products, categories, users
}

func TestViewsListResolvesUserName(t *testing.T) {
	v, c, products, _, users := newViewsFixture()
	ctx := context.Background()

	userID, err := users.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	productA := mustCreateProduct(t, products, "a", 10)
	if _, err := c.Compose(ctx, Draft{User: userID, Items: []ItemRequest{{Product: productA, Quantity: 1}}}); err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	list, err := v.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].UserName != "Alice" {
		t.Fatalf("UserName = %q, want Alice", list[0].UserName)
	}
}

func TestViewsDetailJoinsProductAndCategory(t *testing.T) {
	v, c, products, categories, _ := newViewsFixture()
	ctx := context.Background()

	catID, err := categories.Create(ctx, &models.Category{Name: "Books"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	productID, err := products.Create(ctx, &models.Product{Name: "novel", Price: 12, Category: catID})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	order, err := c.Compose(ctx, Draft{Items: []ItemRequest{{Product: productID, Quantity: 2}}})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	detail, err := v.Detail(ctx, order.ID)
	if err != nil {
		t.Fatalf("Detail error: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(detail.Items))
	}
	item := detail.Items[0]
	if item.Product == nil || item.Product.Name != "novel" {
		t.Fatalf("product not resolved: %+v", item.Product)
	}
	if item.Category == nil || item.Category.Name != "Books" {
		t.Fatalf("category not resolved: %+v", item.Category)
	}
}

func TestViewsDetailMissingOrder(t *testing.T) {
	v, _, _, _, _ := newViewsFixture()
	_, err := v.Detail(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestViewsAggregatesOnEmptyStore(t *testing.T) {
	v, _, _, _, _ := newViewsFixture()
	ctx := context.Background()

	total, err := v.TotalSales(ctx)
	if err != nil {
		t.Fatalf("TotalSales on empty store: %v", err)
	}
	if total != 0 {
		t.Fatalf("TotalSales = %v, want 0", total)
	}
	count, err := v.Count(ctx)
	if err != nil {
		t.Fatalf("Count on empty store: %v", err)
	}
	if count != 0 {
		t.Fatalf("Count = %d, want 0", count)
	}
}

func TestViewsByUserFiltersAndSums(t *testing.T) {
	v, c, products, _, users := newViewsFixture()
	ctx := context.Background()

	alice, _ := users.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	bob, _ := users.Create(ctx, &models.User{Name: "Bob", Email: "bob@example.com"})
	productA := mustCreateProduct(t, products, "a", 10)

	if _, err := c.Compose(ctx, Draft{User: alice, Items: []ItemRequest{{Product: productA, Quantity: 1}}}); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if _, err := c.Compose(ctx, Draft{User: bob, Items: []ItemRequest{{Product: productA, Quantity: 3}}}); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	mine, err := v.ByUser(ctx, alice)
	if err != nil {
		t.Fatalf("ByUser error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("alice should have 1 order, got %d", len(mine))
	}
	total, err := v.TotalSales(ctx)
	if err != nil {
		t.Fatalf("TotalSales error: %v", err)
	}
	if total != 40 {
		t.Fatalf("TotalSales = %v, want 40", total)
	}
}
