package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/cart"
	"github.com/safar/go-cart-checkout/internal/catalog"
	"github.com/safar/go-cart-checkout/internal/checkout"
	"github.com/safar/go-cart-checkout/internal/models"
)

const sessionCookie = "cart_session"

type Handler struct {
	db        *sql.DB
	carts     *cart.Manager
	checkouts *checkout.Registry
	logger    *zap.Logger
}

func NewHandler(db *sql.DB, carts *cart.Manager, checkouts *checkout.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		db:        db,
		carts:     carts,
		checkouts: checkouts,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := catalog.ListProducts(r.Context(), h.db, page, pageSize)
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type cartView struct {
	Items     []models.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	engine := h.carts.Get(r.Context(), h.session(w, r))
	respondJSON(w, http.StatusOK, cartView{
		Items:     engine.Items(),
		Total:     engine.Total(),
		ItemCount: engine.ItemCount(),
	})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	engine := h.carts.Get(r.Context(), h.session(w, r))
	engine.AddItem(r.Context(), models.ItemCandidate{
		ID:        body.ID,
		Name:      body.Name,
		UnitPrice: decimal.NewFromFloat(body.Price),
		Image:     body.Image,
	})

	respondJSON(w, http.StatusOK, cartView{
		Items:     engine.Items(),
		Total:     engine.Total(),
		ItemCount: engine.ItemCount(),
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	engine := h.carts.Get(r.Context(), h.session(w, r))
	engine.RemoveItem(r.Context(), id)

	respondJSON(w, http.StatusOK, cartView{
		Items:     engine.Items(),
		Total:     engine.Total(),
		ItemCount: engine.ItemCount(),
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	engine := h.carts.Get(r.Context(), h.session(w, r))
	engine.Clear(r.Context())

	respondJSON(w, http.StatusOK, cartView{
		Items:     engine.Items(),
		Total:     engine.Total(),
		ItemCount: engine.ItemCount(),
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form models.ShippingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := h.session(w, r)
	engine := h.carts.Get(r.Context(), sessionID)
	orchestrator := h.checkouts.For(sessionID)

	receipt, err := orchestrator.Submit(r.Context(), form, engine)
	if err != nil {
		var validationErr *checkout.ValidationError
		var stepErr *checkout.StepError
		switch {
		case errors.As(err, &validationErr), errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			respondError(w, http.StatusConflict, err.Error())
		case errors.As(err, &stepErr):
			respondError(w, http.StatusBadGateway, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}

// session returns the cart session id from the request cookie, issuing a
// fresh one when missing.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
