package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	items, err := s.cart.GetCart(r.Context(), id.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleReplaceCart(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	// Items must be present and a list; a null or absent field is rejected,
	// an empty list clears the cart.
	var req struct {
		Items *[]domain.LineItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Items == nil {
		writeMessage(w, http.StatusBadRequest, "items missing or invalid")
		return
	}

	if err := s.cart.ReplaceCart(r.Context(), id.UserID, *req.Items); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "cart updated")
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	if err := s.cart.RemoveItem(r.Context(), id.UserID, r.PathValue("sku")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "item removed from cart")
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.cart.SetQuantity(r.Context(), id.UserID, r.PathValue("sku"), req.Quantity); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "quantity updated")
}
