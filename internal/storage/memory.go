package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
)

// In-memory store implementations with the same contracts as the Mongo
// stores. Handlers and the order workflow are tested against these.

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (s *MemoryUserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemoryUserStore) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = normalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) Create(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	clone := *u
	s.users[u.ID] = &clone
	return u.ID, nil
}

func (s *MemoryUserStore) Update(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return nil, ErrNotFound
	}
	clone := *u
	clone.ID = id
	clone.Email = normalizeEmail(clone.Email)
	s.users[id] = &clone
	out := clone
	return &out, nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type MemoryCategoryStore struct {
	mu   sync.Mutex
	cats map[primitive.ObjectID]*models.Category
}

func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{cats: map[primitive.ObjectID]*models.Category{}}
}

func (s *MemoryCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemoryCategoryStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cats[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *MemoryCategoryStore) Create(ctx context.Context, c *models.Category) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	clone := *c
	s.cats[c.ID] = &clone
	return c.ID, nil
}

func (s *MemoryCategoryStore) Update(ctx context.Context, id primitive.ObjectID, c *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cats[id]; !ok {
		return nil, ErrNotFound
	}
	clone := *c
	clone.ID = id
	s.cats[id] = &clone
	out := clone
	return &out, nil
}

func (s *MemoryCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cats[id]; !ok {
		return ErrNotFound
	}
	delete(s.cats, id)
	return nil
}

type MemoryProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: map[primitive.ObjectID]*models.Product{}}
}

func (s *MemoryProductStore) List(ctx context.Context, categories []primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, c := range categories {
		wanted[c] = true
	}
	var out []models.Product
	for _, p := range s.products {
		if len(wanted) > 0 && !wanted[p.Category] {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemoryProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *MemoryProductStore) Create(ctx context.Context, p *models.Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.DateCreated.IsZero() {
		p.DateCreated = time.Now()
	}
	clone := *p
	s.products[p.ID] = &clone
	return p.ID, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	clone.ID = id
	clone.Images = existing.Images
	clone.DateCreated = existing.DateCreated
	s.products[id] = &clone
	out := clone
	return &out, nil
}

func (s *MemoryProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.products)), nil
}

func (s *MemoryProductStore) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.IsFeatured {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryProductStore) SetGallery(ctx context.Context, id primitive.ObjectID, images []string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Images = images
	clone := *p
	return &clone, nil
}

type MemoryOrderItemStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.OrderItem
}

func NewMemoryOrderItemStore() *MemoryOrderItemStore {
	return &MemoryOrderItemStore{items: map[primitive.ObjectID]*models.OrderItem{}}
}

func (s *MemoryOrderItemStore) Create(ctx context.Context, item *models.OrderItem) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	clone := *item
	s.items[item.ID] = &clone
	return item.ID, nil
}

func (s *MemoryOrderItemStore) Get(ctx context.Context, id primitive.ObjectID) (*models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *MemoryOrderItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *MemoryOrderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.listWhere(func(*models.Order) bool { return true })
}

func (s *MemoryOrderStore) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error) {
	return s.listWhere(func(o *models.Order) bool { return o.User == user })
}

func (s *MemoryOrderStore) listWhere(keep func(*models.Order) bool) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out, nil
}

func (s *MemoryOrderStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (s *MemoryOrderStore) Create(ctx context.Context, o *models.Order) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = primitive.NewObjectID()
	if o.DateCreated.IsZero() {
		o.DateCreated = time.Now()
	}
	clone := *o
	s.orders[o.ID] = &clone
	return o.ID, nil
}

func (s *MemoryOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	clone := *o
	return &clone, nil
}

func (s *MemoryOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *MemoryOrderStore) TotalSales(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, o := range s.orders {
		sum += o.TotalPrice
	}
	return sum, nil
}

func (s *MemoryOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}
