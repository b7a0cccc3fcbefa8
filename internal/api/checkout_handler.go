package api

import (
	"encoding/json"
	"net/http"
	"time"

	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type addressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type previewRequestDTO struct {
	Address addressDTO `json:"address"`
}

type zonePreviewDTO struct {
	ZoneID     string   `json:"zone_id"`
	RadiusKm   float64  `json:"radius_km"`
	Fee        moneyDTO `json:"fee"`
	DistanceKm float64  `json:"distance_km"`
}

type checkoutRequestDTO struct {
	CustomerID string     `json:"customer_id"`
	Address    addressDTO `json:"address"`
	Notes      string     `json:"notes"`
}

type checkoutResultDTO struct {
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Subtotal    moneyDTO  `json:"subtotal"`
	DeliveryFee moneyDTO  `json:"delivery_fee"`
	Total       moneyDTO  `json:"total"`
	ZoneID      string    `json:"zone_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type quoteLineDTO struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Quantity  int64    `json:"quantity"`
	UnitPrice moneyDTO `json:"unit_price"`
	LineTotal moneyDTO `json:"line_total"`
}

type quoteDTO struct {
	Lines []quoteLineDTO `json:"lines"`
	Total moneyDTO       `json:"total"`
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	q, err := h.checkout.Quote(r.Context(), customerID, chi.URLParam(r, "slug"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	lines := make([]quoteLineDTO, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, quoteLineDTO{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: moneyDTO{Currency: ln.UnitPrice.Currency, Amount: ln.UnitPrice.Amount},
			LineTotal: moneyDTO{Currency: ln.LineTotal.Currency, Amount: ln.LineTotal.Amount},
		})
	}
	respondJSON(w, http.StatusOK, quoteDTO{
		Lines: lines,
		Total: moneyDTO{Currency: q.Total.Currency, Amount: q.Total.Amount},
	})
}

func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}

	sel, err := h.checkout.Preview(r.Context(), chi.URLParam(r, "slug"), checkoutdomain.Address{
		Street:  req.Address.Street,
		City:    req.Address.City,
		State:   req.Address.State,
		ZipCode: req.Address.ZipCode,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, zonePreviewDTO{
		ZoneID:     sel.ZoneID,
		RadiusKm:   sel.RadiusKm,
		Fee:        moneyDTO{Currency: "BRL", Amount: sel.FeeAmount},
		DistanceKm: sel.DistanceKm,
	})
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}
	if req.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), checkoutdomain.CheckoutRequest{
		CustomerID: req.CustomerID,
		StoreSlug:  chi.URLParam(r, "slug"),
		Address: checkoutdomain.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		},
		CustomerNotes:  req.Notes,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkoutResultDTO{
		OrderID:     result.OrderID,
		Status:      result.Status,
		Subtotal:    moneyDTO{Currency: result.Subtotal.Currency, Amount: result.Subtotal.Amount},
		DeliveryFee: moneyDTO{Currency: result.DeliveryFee.Currency, Amount: result.DeliveryFee.Amount},
		Total:       moneyDTO{Currency: result.Total.Currency, Amount: result.Total.Amount},
		ZoneID:      result.ZoneID,
		CreatedAt:   result.CreatedAt,
	})
}
