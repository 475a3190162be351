package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/me-sujith/E-Commerce/internal/auth"
	"github.com/me-sujith/E-Commerce/internal/models"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

type userRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (req *userRequest) toModel() *models.User {
	return &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Street:    req.Street,
		Apartment: req.Apartment,
		City:      req.City,
		Zip:       req.Zip,
		Country:   req.Country,
		IsAdmin:   req.IsAdmin,
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	user, err := s.users.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the user with the given ID was not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	s.createUser(w, r, http.StatusOK)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.createUser(w, r, http.StatusOK)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request, okStatus int) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password required")
		return
	}
	hash, err := auth.HashPassword(auth.DefaultArgon, req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	user := req.toModel()
	user.PasswordHash = hash
	if _, err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			writeMessage(w, http.StatusBadRequest, "email already exists")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	s.audit.Append(actor(r), "user "+user.ID.Hex()+" created")
	writeJSONStatus(w, okStatus, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	existing, err := s.users.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the user with the given ID was not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	user := req.toModel()
	// Only re-hash when a new password was submitted.
	if req.Password != "" {
		hash, err := auth.HashPassword(auth.DefaultArgon, req.Password)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "failed to update user")
			return
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = existing.PasswordHash
	}

	updated, err := s.users.Update(r.Context(), id, user)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the user with the given ID was not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "user "+id.Hex()+" updated")
	writeJSON(w, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	err := s.users.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{"success": false, "message": "user not found"})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "user "+id.Hex()+" deleted")
	writeJSON(w, map[string]any{"success": true, "message": "the user is deleted"})
}

func (s *Server) handleUserCount(w http.ResponseWriter, r *http.Request) {
	// Zero users is a valid answer, never a 404.
	count, err := s.users.Count(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int64{"userCount": count})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	if !s.rlLoginIP.allow(getClientIP(r)) || !s.rlLoginID.allow(strings.ToLower(req.Email)) {
		tooMany(w, 60)
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "the user not found")
		return
	}
	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeMessage(w, http.StatusBadRequest, "password is wrong")
		return
	}

	token, exp, err := s.signer.IssueToken(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "token issue failed")
		return
	}
	s.audit.Append(user.ID.Hex(), "login")
	writeJSON(w, auth.LoginResponse{Token: token, ExpiresAt: exp})
}
