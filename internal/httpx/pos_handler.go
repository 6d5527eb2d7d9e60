package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-pos.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-pos.git/internal/kafka"
	"github.com/ariefcatur/go-pos.git/internal/pos"
	"github.com/ariefcatur/go-pos.git/internal/redisx"
	"github.com/ariefcatur/go-pos.git/internal/session"
)

// Store = operasi persistensi yang dibutuhkan handler kasir.
// *pos.Repo memenuhinya; test pakai mock.
type Store interface {
	ListProducts(ctx context.Context) ([]pos.Product, error)
	ListCategories(ctx context.Context) ([]pos.Category, error)
	GetProduct(ctx context.Context, id string) (pos.Product, error)
	CheckoutTx(ctx context.Context, externalID string, items []pos.CartItem, method pos.PaymentMethod) (pos.TransactionRecord, bool, error)
	ListTransactions(ctx context.Context, limit int) ([]pos.TransactionRecord, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type PosHandler struct {
	Store    Store
	Carts    *session.Store
	Catalog  *catalog.Cache
	Producer Publisher
	Redis    *redis.Client
	Service  string
}

func (h *PosHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(WithSession)
		r.Get("/products", h.listProducts)
		r.Get("/categories", h.listCategories)
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{productID}", h.updateCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)
		r.Post("/checkout", h.checkout)
		r.Get("/transactions", h.listTransactions)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr memetakan jenis error tertutup ke status HTTP di satu tempat.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pos.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, pos.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, pos.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, pos.ErrUnavailable):
		code = http.StatusBadGateway
	}
	body := map[string]any{"error": err.Error()}
	var shortage *pos.StockShortageError
	if errors.As(err, &shortage) {
		body["details"] = shortage.Details
	}
	writeJSON(w, code, body)
}

func (h *PosHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.Products(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *PosHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cs, err := h.Store.ListCategories(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

type cartResp struct {
	Items []pos.CartItem `json:"items"`
	Total int            `json:"total"`
}

func (h *PosHandler) cart(r *http.Request) *pos.Cart {
	return h.Carts.Cart(SessionID(r.Context()))
}

func (h *PosHandler) getCart(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r)
	writeJSON(w, http.StatusOK, cartResp{Items: c.Items(), Total: c.Total()})
}

type addCartItemReq struct {
	ProductID string `json:"product_id"`
}

func (h *PosHandler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product_id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// ambil produk fresh dari DB supaya plafon stok di keranjang up to date
	p, err := h.Store.GetProduct(ctx, req.ProductID)
	if err != nil {
		writeErr(w, err)
		return
	}
	c := h.cart(r)
	c.Add(p)
	writeJSON(w, http.StatusOK, cartResp{Items: c.Items(), Total: c.Total()})
}

type updateCartItemReq struct {
	Delta int `json:"delta"`
}

func (h *PosHandler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	var req updateCartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c := h.cart(r)
	c.UpdateQuantity(productID, req.Delta)
	writeJSON(w, http.StatusOK, cartResp{Items: c.Items(), Total: c.Total()})
}

func (h *PosHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r)
	c.Remove(chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, cartResp{Items: c.Items(), Total: c.Total()})
}

type checkoutReq struct {
	PaymentMethod string `json:"payment_method"`
	ExternalID    string `json:"external_id,omitempty"`
}

type checkoutResp struct {
	Transaction pos.Transaction       `json:"transaction"`
	Items       []pos.TransactionItem `json:"items"`
	Idempotent  bool                  `json:"idempotent"`
}

func (h *PosHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	method, err := pos.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeErr(w, err)
		return
	}

	c := h.cart(r)
	if c.Empty() {
		writeErr(w, pos.Validationf("cart is empty"))
		return
	}
	items := c.Items()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Fast-path idempotency via Redis (DB tetap jadi kebenaran lewat external_id)
	if req.ExternalID != "" {
		idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, req.ExternalID)
		if ok, _ := redisx.Exists(ctx, h.Redis, idemKey); ok {
			// CheckoutTx handle existed, cukup lanjut ke DB
		}
	}

	rec, existed, err := h.Store.CheckoutTx(ctx, req.ExternalID, items, method)
	if err != nil {
		// keranjang dibiarkan utuh supaya kasir bisa retry
		writeErr(w, err)
		return
	}

	// sukses: clear tepat sekali, stok berubah -> invalidate katalog
	c.Clear()
	h.Catalog.Invalidate(ctx)

	if req.ExternalID != "" {
		idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, req.ExternalID)
		_ = h.Redis.Set(ctx, idemKey, rec.ID, redisx.TTLIdempotency).Err()
	}

	if !existed {
		h.publishCompleted(rec, r.Header.Get("X-Request-Id"))
	}

	// struk & event memakai line items hasil commit (harga DB), bukan
	// snapshot keranjang, supaya selalu cocok dengan record transaksi
	writeJSON(w, http.StatusCreated, checkoutResp{Transaction: rec.Transaction, Items: rec.Items, Idempotent: existed})
}

func (h *PosHandler) publishCompleted(rec pos.TransactionRecord, trace string) {
	sold := make([]pos.SoldItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		sold = append(sold, pos.SoldItem{ProductID: it.ProductID, Qty: it.Quantity, PriceAtTime: it.PriceAtTime})
	}
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     pos.EventTransactionCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: rec.ID,
		Payload: kafkax.MustMarshal(pos.TransactionCompletedPayload{
			TransactionID: rec.ID,
			TotalPrice:    rec.TotalPrice,
			PaymentMethod: string(rec.PaymentMethod),
			Items:         sold,
		}),
	}
	h.Producer.Publish(pos.PartitionKey(rec.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventTransactionCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *PosHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	recs, err := h.Store.ListTransactions(ctx, 50)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
