package gateway

import (
	"log/slog"
	"net/http"

	adminapp "github.com/dwikikusuma/shopping-hub/internal/admin/app"
	cartapp "github.com/dwikikusuma/shopping-hub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shopping-hub/internal/catalog/app"
	identityapp "github.com/dwikikusuma/shopping-hub/internal/identity/app"
	orderapp "github.com/dwikikusuma/shopping-hub/internal/order/app"
)

// Server is the REST surface the storefront UI consumes. It does no
// business logic: handlers decode, delegate to the app services, and map
// sentinel errors to statuses.
type Server struct {
	log      *slog.Logger
	identity *identityapp.Service
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	orders   *orderapp.Service
	admin    *adminapp.Service
}

func NewServer(
	log *slog.Logger,
	identity *identityapp.Service,
	catalog *catalogapp.Service,
	cart *cartapp.Service,
	orders *orderapp.Service,
	admin *adminapp.Service,
) *Server {
	return &Server{
		log:      log,
		identity: identity,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		admin:    admin,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/products", s.handleListProducts)

	mux.HandleFunc("GET /api/user/cart", s.authed(s.handleGetCart))
	mux.HandleFunc("POST /api/user/cart", s.authed(s.handleReplaceCart))
	mux.HandleFunc("DELETE /api/user/cart/{sku}", s.authed(s.handleRemoveItem))
	mux.HandleFunc("PUT /api/user/cart/{sku}", s.authed(s.handleUpdateQuantity))

	mux.HandleFunc("POST /api/user/orders", s.authed(s.handleSubmitOrder))
	mux.HandleFunc("GET /api/user/orders", s.authed(s.handleListOrders))

	mux.HandleFunc("GET /api/admin/dashboard", s.adminOnly(s.handleDashboard))
	mux.HandleFunc("POST /api/admin/products", s.adminOnly(s.handleCreateProduct))
	mux.HandleFunc("DELETE /api/admin/products/{id}", s.adminOnly(s.handleDeleteProduct))

	return mux
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := httpStatusFromError(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}
	writeMessage(w, status, msg)
}
