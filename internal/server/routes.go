package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me-sujith/E-Commerce/internal/auth"
)

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsHeaders)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Everything below the gate; exempt (path, method) pairs pass through it
	// without a credential.
	r.Group(func(g chi.Router) {
		g.Use(auth.Gate(s.signer, auth.DefaultExemptions(s.cfg.APIURL), nil))

		g.Route(s.cfg.APIURL, func(api chi.Router) {
			api.Route("/users", func(u chi.Router) {
				u.Get("/", s.handleListUsers)
				u.Post("/", s.handleCreateUser)
				u.Get("/get/count", s.handleUserCount)
				u.Post("/login", s.handleLogin)
				u.Post("/register", s.handleRegister)
				u.Get("/{id}", s.handleGetUser)
				u.Put("/{id}", s.handleUpdateUser)
				u.Delete("/{id}", s.handleDeleteUser)
			})

			api.Route("/categories", func(c chi.Router) {
				c.Get("/", s.handleListCategories)
				c.Post("/", s.handleCreateCategory)
				c.Get("/{id}", s.handleGetCategory)
				c.Put("/{id}", s.handleUpdateCategory)
				c.Delete("/{id}", s.handleDeleteCategory)
			})

			api.Route("/products", func(p chi.Router) {
				p.Get("/", s.handleListProducts)
				p.Post("/", s.handleCreateProduct)
				p.Get("/get/count", s.handleProductCount)
				p.Get("/get/featured/{count}", s.handleFeaturedProducts)
				p.Put("/gallery-images/{id}", s.handleProductGallery)
				p.Get("/{id}", s.handleGetProduct)
				p.Put("/{id}", s.handleUpdateProduct)
				p.Delete("/{id}", s.handleDeleteProduct)
			})

			api.Route("/orders", func(o chi.Router) {
				o.Get("/", s.handleListOrders)
				o.Post("/", s.handleCreateOrder)
				o.Get("/get/totalSales", s.handleTotalSales)
				o.Get("/get/count", s.handleOrderCount)
				o.Get("/get/userorders/{userId}", s.handleUserOrders)
				o.Get("/{id}", s.handleGetOrder)
				o.Put("/{id}", s.handleUpdateOrder)
				o.Delete("/{id}", s.handleDeleteOrder)
			})
		})

		uploads := http.StripPrefix("/public/uploads/", http.FileServer(http.Dir(s.cfg.UploadDir)))
		g.Get("/public/uploads/*", uploads.ServeHTTP)
	})

	s.router = r
}
