package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, cats)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	cat, err := s.categories.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the category with the given ID was not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, cat)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	if _, err := s.categories.Create(r.Context(), &cat); err != nil {
		writeMessage(w, http.StatusInternalServerError, "the category cannot be created")
		return
	}
	s.audit.Append(actor(r), "category "+cat.ID.Hex()+" created")
	writeJSONStatus(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	updated, err := s.categories.Update(r.Context(), id, &cat)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the category cannot be updated")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "category "+id.Hex()+" updated")
	writeJSON(w, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	err := s.categories.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{"success": false, "message": "category not found"})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "category "+id.Hex()+" deleted")
	writeJSON(w, map[string]any{"success": true, "message": "the category is deleted"})
}
