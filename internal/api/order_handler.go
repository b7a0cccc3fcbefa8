package api

import (
	"encoding/json"
	"net/http"
	"time"

	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemDTO struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	UnitPrice moneyDTO `json:"unit_price"`
	Quantity  int32    `json:"quantity"`
	LineTotal moneyDTO `json:"line_total"`
	Notes     string   `json:"notes,omitempty"`
}

type orderDTO struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"store_id"`
	CustomerID  string         `json:"customer_id"`
	Status      string         `json:"status"`
	Subtotal    moneyDTO       `json:"subtotal"`
	DeliveryFee moneyDTO       `json:"delivery_fee"`
	Total       moneyDTO       `json:"total"`
	Address     addressDTO     `json:"delivery_address"`
	ZoneID      string         `json:"delivery_zone_id,omitempty"`
	Notes       string         `json:"customer_notes,omitempty"`
	Items       []orderItemDTO `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
}

type advanceStatusDTO struct {
	Status string `json:"status"`
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	orders, err := h.orders.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req advanceStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}

	order, err := h.orders.Advance(r.Context(), chi.URLParam(r, "orderID"), orderdomain.Status(req.Status))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func toOrderDTO(o orderdomain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: moneyDTO{Currency: o.Currency, Amount: it.UnitAmount},
			Quantity:  it.Quantity,
			LineTotal: moneyDTO{Currency: o.Currency, Amount: it.LineTotal},
			Notes:     it.Notes,
		})
	}

	return orderDTO{
		ID:          o.ID,
		StoreID:     o.StoreID,
		CustomerID:  o.CustomerID,
		Status:      o.Status.String(),
		Subtotal:    moneyDTO{Currency: o.Currency, Amount: o.Subtotal},
		DeliveryFee: moneyDTO{Currency: o.Currency, Amount: o.DeliveryFee},
		Total:       moneyDTO{Currency: o.Currency, Amount: o.Total},
		Address: addressDTO{
			Street:  o.Address.Street,
			City:    o.Address.City,
			State:   o.Address.State,
			ZipCode: o.Address.ZipCode,
		},
		ZoneID:    o.ZoneID,
		Notes:     o.CustomerNotes,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
