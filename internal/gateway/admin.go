package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.admin.Dashboard(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU   string          `json:"sku"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.catalog.CreateProduct(r.Context(), req.SKU, req.Name, req.Price)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "product deleted")
}
