package api

import (
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	deliveryapp "github.com/dwikikusuma/storefront/internal/delivery/app"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	storeapp "github.com/dwikikusuma/storefront/internal/store/app"
)

// httpStatusFromErr maps application errors onto HTTP statuses. Business
// errors come back 4xx and are never worth a blind retry; 503s may be
// retried once with the same inputs.
func httpStatusFromErr(err error) (int, string) {
	var blocked *deliveryapp.BlockedError
	if errors.As(err, &blocked) {
		return http.StatusUnprocessableEntity, "DELIVERY_BLOCKED"
	}

	switch {
	case errors.Is(err, cartapp.ErrInvalidQuantity),
		errors.Is(err, deliveryapp.ErrInvalidAddress),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, storeapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"

	case errors.Is(err, storeapp.ErrNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusConflict, "EMPTY_CART"

	case errors.Is(err, orderapp.ErrIllegalTransition):
		return http.StatusConflict, "ILLEGAL_TRANSITION"

	case errors.Is(err, orderapp.ErrStatusConflict):
		return http.StatusConflict, "STATUS_CONFLICT"

	case errors.Is(err, checkoutapp.ErrPersistence),
		errors.Is(err, deliveryapp.ErrGeocode):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	}

	return http.StatusInternalServerError, "INTERNAL"
}

func respondAppError(w http.ResponseWriter, err error) {
	status, code := httpStatusFromErr(err)

	var blocked *deliveryapp.BlockedError
	if errors.As(err, &blocked) {
		respondJSON(w, status, errorResponse{
			Error:  blocked.Error(),
			Code:   code,
			Reason: string(blocked.Reason),
		})
		return
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	respondError(w, status, code, msg)
}
