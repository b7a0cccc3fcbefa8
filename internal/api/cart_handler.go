package api

import (
	"encoding/json"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	stores StoreService
	carts  CartService
}

func NewCartHandler(stores StoreService, carts CartService) *CartHandler {
	return &CartHandler{stores: stores, carts: carts}
}

type moneyDTO struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type cartLineDTO struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	UnitPrice moneyDTO `json:"unit_price"`
	Quantity  int32    `json:"quantity"`
	Notes     string   `json:"notes,omitempty"`
	LineTotal moneyDTO `json:"line_total"`
}

type cartViewDTO struct {
	CartID   string        `json:"cart_id"`
	Items    []cartLineDTO `json:"items"`
	Subtotal moneyDTO      `json:"subtotal"`
}

type addItemDTO struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int32  `json:"quantity"`
	Notes      string `json:"notes"`
}

type setQuantityDTO struct {
	CustomerID string `json:"customer_id"`
	Quantity   int32  `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	store, err := h.stores.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	view, err := h.carts.View(r.Context(), customerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}
	if req.CustomerID == "" || req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id and product_id are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store, err := h.stores.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	cart, err := h.carts.GetOrCreate(r.Context(), req.CustomerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	err = h.carts.AddItem(r.Context(), cart.ID, cartdomain.CartItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	view, err := h.carts.View(r.Context(), req.CustomerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCartViewDTO(view))
}

func (h *CartHandler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return
	}
	if req.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	store, err := h.stores.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	cart, err := h.carts.GetOrCreate(r.Context(), req.CustomerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	err = h.carts.SetItemQuantity(r.Context(), cart.ID, cartdomain.CartItem{
		ProductID: chi.URLParam(r, "productID"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	view, err := h.carts.View(r.Context(), req.CustomerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "customer_id is required")
		return
	}

	store, err := h.stores.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	cart, err := h.carts.GetOrCreate(r.Context(), customerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), cart.ID, chi.URLParam(r, "productID")); err != nil {
		respondAppError(w, err)
		return
	}

	view, err := h.carts.View(r.Context(), customerID, store.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartViewDTO(view))
}

func toCartViewDTO(view cartapp.CartView) cartViewDTO {
	items := make([]cartLineDTO, 0, len(view.Lines))
	for _, ln := range view.Lines {
		items = append(items, cartLineDTO{
			ProductID: ln.Product.ID,
			Name:      ln.Product.Name,
			UnitPrice: moneyDTO{Currency: ln.Product.Currency, Amount: ln.Product.Amount},
			Quantity:  ln.Quantity,
			Notes:     ln.Notes,
			LineTotal: moneyDTO{Currency: ln.LineTotal.Currency, Amount: ln.LineTotal.Amount},
		})
	}
	return cartViewDTO{
		CartID:   view.CartID,
		Items:    items,
		Subtotal: moneyDTO{Currency: view.Subtotal.Currency, Amount: view.Subtotal.Amount},
	}
}
