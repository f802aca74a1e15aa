package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	cartapp "github.com/dwikikusuma/shopping-hub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shopping-hub/internal/catalog/app"
	identityapp "github.com/dwikikusuma/shopping-hub/internal/identity/app"
	orderapp "github.com/dwikikusuma/shopping-hub/internal/order/app"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{identityapp.ErrUnauthenticated, http.StatusUnauthorized},
		{identityapp.ErrInvalidCredentials, http.StatusUnauthorized},
		{identityapp.ErrForbidden, http.StatusForbidden},
		{identityapp.ErrInvalidInput, http.StatusBadRequest},
		{catalogapp.ErrInvalidInput, http.StatusBadRequest},
		{cartapp.ErrInvalidItem, http.StatusBadRequest},
		{cartapp.ErrInvalidQuantity, http.StatusBadRequest},
		{orderapp.ErrEmptyCart, http.StatusBadRequest},
		{orderapp.ErrMissingToken, http.StatusBadRequest},
		{cartapp.ErrItemNotFound, http.StatusNotFound},
		{catalogapp.ErrNotFound, http.StatusNotFound},
		{identityapp.ErrUserNotFound, http.StatusNotFound},
		{identityapp.ErrEmailTaken, http.StatusConflict},
		{orderapp.ErrSubmissionInFlight, http.StatusConflict},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, msg := httpStatusFromError(tc.err)
		assert.Equal(t, tc.want, status, "error %v", tc.err)
		if tc.want == http.StatusInternalServerError {
			assert.Equal(t, "server error", msg)
		}
	}
}

func TestWrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("%w: price must be positive", cartapp.ErrInvalidItem)
	status, msg := httpStatusFromError(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "price must be positive")
}
