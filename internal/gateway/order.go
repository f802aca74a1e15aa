package gateway

import "net/http"

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	receipt, err := s.orders.SubmitOrder(r.Context(), id.UserID, r.Header.Get("Idempotency-Key"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	status := http.StatusCreated
	if receipt.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, receipt)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	orders, err := s.orders.ListOrders(r.Context(), id.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
