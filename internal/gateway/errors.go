package gateway

import (
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/shopping-hub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shopping-hub/internal/catalog/app"
	identityapp "github.com/dwikikusuma/shopping-hub/internal/identity/app"
	orderapp "github.com/dwikikusuma/shopping-hub/internal/order/app"
)

// httpStatusFromError maps app-layer sentinels to HTTP statuses. Anything
// unrecognized is a server error and its detail stays out of the response.
func httpStatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, identityapp.ErrUnauthenticated),
		errors.Is(err, identityapp.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, identityapp.ErrForbidden):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, identityapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidItem),
		errors.Is(err, cartapp.ErrInvalidQuantity),
		errors.Is(err, orderapp.ErrEmptyCart),
		errors.Is(err, orderapp.ErrMissingToken):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, cartapp.ErrItemNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, identityapp.ErrUserNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, identityapp.ErrEmailTaken),
		errors.Is(err, orderapp.ErrSubmissionInFlight):
		return http.StatusConflict, err.Error()
	}

	return http.StatusInternalServerError, "server error"
}
