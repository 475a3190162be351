package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/me-sujith/E-Commerce/internal/orders"
	"github.com/me-sujith/E-Commerce/internal/storage"
)

type orderRequest struct {
	OrderItems       []orders.ItemRequest `json:"orderItems"`
	ShippingAddress1 string               `json:"shippingAddress1"`
	ShippingAddress2 string               `json:"shippingAddress2"`
	City             string               `json:"city"`
	Zip              string               `json:"zip"`
	Country          string               `json:"country"`
	Phone            string               `json:"phone"`
	Status           string               `json:"status"`
	User             string               `json:"user"`
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.views.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, list)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := s.views.Detail(r.Context(), id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{"success": false, "message": "order not found"})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	draft := orders.Draft{
		Items:            req.OrderItems,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           req.Status,
	}
	if req.User != "" {
		user, err := primitive.ObjectIDFromHex(req.User)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid user")
			return
		}
		draft.User = user
	}

	order, err := s.composer.Compose(r.Context(), draft)
	switch {
	case err == nil:
	case errors.Is(err, orders.ErrEmptyOrder):
		writeMessage(w, http.StatusBadRequest, "order has no items")
		return
	case errors.Is(err, orders.ErrInvalidQuantity):
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, orders.ErrProductNotFound):
		// The error names the failing product and any items left behind.
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "the order cannot be placed")
		return
	}
	s.audit.Append(actor(r), "order "+order.ID.Hex()+" created")
	writeJSONStatus(w, http.StatusCreated, order)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad json")
		return
	}
	updated, err := s.orderStore.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "the order cannot be updated")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "order "+id.Hex()+" status set to "+req.Status)
	writeJSON(w, updated)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	err := s.decomposer.Decompose(r.Context(), id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{"success": false, "message": "order not found"})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.audit.Append(actor(r), "order "+id.Hex()+" deleted")
	writeJSON(w, map[string]any{"success": true, "message": "the order is deleted"})
}

func (s *Server) handleTotalSales(w http.ResponseWriter, r *http.Request) {
	// An empty collection reports 0, never an error.
	total, err := s.views.TotalSales(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]float64{"totalSales": total})
}

func (s *Server) handleOrderCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.views.Count(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int64{"orderCount": count})
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(w, r, "userId")
	if !ok {
		return
	}
	list, err := s.views.ByUser(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, list)
}
