package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

// productView pairs a product with its resolved category for read responses.
type productView struct {
	models.Product
	CategoryDetail *models.Category `json:"categoryDetail,omitempty"`
}

func (s *Server) productView(r *http.Request, p models.Product) productView {
	view := productView{Product: p}
	if cat, err := s.categories.Get(r.Context(), p.Category); err == nil {
		view.CategoryDetail = cat
	}
	return view
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	var filter []primitive.ObjectID
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(part))
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "invalid category filter")
				return
			}
			filter = append(filter, id)
		}
	}
	products, err := s.products.List(r.Context(), filter)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, s.productView(r, p))
	}
	writeJSON(w, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the product with the given ID was not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, s.productView(r, *p))
}

// productForm reads the multipart fields shared by create and update.
func (s *Server) productForm(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad multipart form")
		return nil, false
	}
	category, err := primitive.ObjectIDFromHex(r.FormValue("category"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid category")
		return nil, false
	}
	if _, err := s.categories.Get(r.Context(), category); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid category")
		return nil, false
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	countInStock, _ := strconv.Atoi(r.FormValue("countInStock"))
	rating, _ := strconv.ParseFloat(r.FormValue("rating"), 64)
	numReviews, _ := strconv.Atoi(r.FormValue("numReviews"))
	isFeatured, _ := strconv.ParseBool(r.FormValue("isFeatured"))

	return &models.Product{
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		RichDescription: r.FormValue("richDescription"),
		Brand:           r.FormValue("brand"),
		Price:           price,
		Category:        category,
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}, true
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.productForm(w, r)
	if !ok {
		return
	}
	_, fh, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no image in the request")
		return
	}
	filename, err := s.saveUpload(fh)
	if err != nil {
		if errors.Is(err, errInvalidImageType) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.Image = uploadURL(r, filename)

	if _, err := s.products.Create(r.Context(), p); err != nil {
		writeMessage(w, http.StatusInternalServerError, "the product cannot be created")
		return
	}
	s.audit.Append(actor(r), "product "+p.ID.Hex()+" created")
	writeJSONStatus(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	existing, err := s.products.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "invalid product")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	p, ok := s.productForm(w, r)
	if !ok {
		return
	}

	// Image is optional on update; keep the stored one when absent.
	if _, fh, err := r.FormFile("image"); err == nil {
		filename, err := s.saveUpload(fh)
		if err != nil {
			if errors.Is(err, errInvalidImageType) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		p.Image = uploadURL(r, filename)
	} else {
		p.Image = existing.Image
	}

	updated, err := s.products.Update(r.Context(), id, p)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the product cannot be updated")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "product "+id.Hex()+" updated")
	writeJSON(w, updated)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	err := s.products.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{"success": false, "message": "product not found"})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "product "+id.Hex()+" deleted")
	writeJSON(w, map[string]any{"success": true, "message": "the product is deleted"})
}

func (s *Server) handleProductCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.products.Count(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int64{"productCount": count})
}

func (s *Server) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.ParseInt(chi.URLParam(r, "count"), 10, 64)
	if err != nil || limit < 0 {
		writeMessage(w, http.StatusBadRequest, "invalid count")
		return
	}
	products, err := s.products.Featured(r.Context(), limit)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, products)
}

func (s *Server) handleProductGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad multipart form")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) > 10 {
		files = files[:10]
	}
	var urls []string
	for _, fh := range files {
		filename, err := s.saveUpload(fh)
		if err != nil {
			if errors.Is(err, errInvalidImageType) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		urls = append(urls, uploadURL(r, filename))
	}
	updated, err := s.products.SetGallery(r.Context(), id, urls)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the product cannot be updated")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "product "+id.Hex()+" gallery updated")
	writeJSON(w, updated)
}
