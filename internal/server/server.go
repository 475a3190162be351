package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/me-sujith/E-Commerce/internal/audit"
	"github.com/me-sujith/E-Commerce/internal/auth"
	"github.com/me-sujith/E-Commerce/internal/orders"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

type Server struct {
	cfg    Config
	router chi.Router
	logger *log.Logger

	signer *auth.JWTSigner

	users      storage.UserStore
	categories storage.CategoryStore
	products   storage.ProductStore
	orderStore storage.OrderStore
	orderItems storage.OrderItemStore

	composer   *orders.Composer
	decomposer *orders.Decomposer
	views      *orders.Views

	audit *audit.Log
	db    *storage.Mongo

	rlLoginIP *multiLimiter
	rlLoginID *multiLimiter
}

// Stores bundles the persistence collaborators so tests can inject the
// in-memory implementations.
type Stores struct {
	Users      storage.UserStore
	Categories storage.CategoryStore
	Products   storage.ProductStore
	Orders     storage.OrderStore
	OrderItems storage.OrderItemStore
}

func New(ctx context.Context, cfg Config) (*Server, error) {
	cfg.setDefaults()
	if cfg.MongoURI == "" {
		return nil, errors.New("server: MongoURI required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("server: Secret required")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}

	db, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}

	s := NewWithStores(cfg, Stores{
		Users:      db.Users,
		Categories: db.Categories,
		Products:   db.Products,
		Orders:     db.Orders,
		OrderItems: db.OrderItems,
	})
	s.db = db
	return s, nil
}

// NewWithStores wires a server onto the given stores without touching the
// database. The secret and exemption table are injected through cfg, never
// read from ambient state.
func NewWithStores(cfg Config, st Stores) *Server {
	cfg.setDefaults()

	s := &Server{
		cfg:        cfg,
		logger:     log.New(os.Stdout, "[eshop] ", log.LstdFlags),
		signer:     auth.NewJWTSigner(cfg.Secret, cfg.TokenTTL),
		users:      st.Users,
		categories: st.Categories,
		products:   st.Products,
		orderStore: st.Orders,
		orderItems: st.OrderItems,
		audit:      audit.New(),
	}
	s.composer = &orders.Composer{Items: st.OrderItems, Products: st.Products, Orders: st.Orders}
	s.decomposer = &orders.Decomposer{Orders: st.Orders, Items: st.OrderItems}
	s.views = &orders.Views{
		Orders:     st.Orders,
		Items:      st.OrderItems,
		Products:   st.Products,
		Categories: st.Categories,
		Users:      st.Users,
	}

	perWindow := func(n int, window time.Duration) float64 { return float64(n) / window.Seconds() }
	s.rlLoginIP = newMultiLimiter(rate.Limit(perWindow(10, time.Minute)), 10, 1*time.Hour)
	s.rlLoginID = newMultiLimiter(rate.Limit(perWindow(5, time.Minute)), 5, 1*time.Hour)

	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(ctx)
}

// corsHeaders mirrors the permissive CORS of the original deployment and
// short-circuits preflight before the authorization gate runs.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
