package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/andreasstove999/table-ordering/internal/order"
)

type OrderService interface {
	Open(ctx context.Context, table int, name string) (*order.Order, error)
	AddItem(ctx context.Context, orderID, productID string, amount int) (*order.Item, error)
	RemoveItem(ctx context.Context, itemID string) (*order.Item, error)
	Remove(ctx context.Context, orderID string) (*order.Order, error)
	Send(ctx context.Context, orderID string) (*order.Order, error)
	Conclude(ctx context.Context, orderID string) (*order.Order, error)
	List(ctx context.Context) ([]order.Order, error)
	Detail(ctx context.Context, orderID string) ([]order.ItemDetail, error)
}

type OrderHandler struct {
	svc     OrderService
	logger  *log.Logger
	timeout time.Duration
}

type openOrderRequest struct {
	Table int    `json:"table"`
	Name  string `json:"name"`
}

type addItemRequest struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

type orderIDRequest struct {
	OrderID string `json:"order_id"`
}

func (h *OrderHandler) Open(w http.ResponseWriter, r *http.Request) {
	var body openOrderRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, err := h.svc.Open(ctx, body.Table, body.Name)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, err := h.svc.Remove(ctx, r.URL.Query().Get("order_id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	it, err := h.svc.AddItem(ctx, body.OrderID, body.ProductID, body.Amount)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	it, err := h.svc.RemoveItem(ctx, r.URL.Query().Get("item_id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *OrderHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Send)
}

func (h *OrderHandler) Conclude(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Conclude)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*order.Order, error)) {
	var body orderIDRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, err := fn(ctx, body.OrderID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.svc.Detail(ctx, r.URL.Query().Get("order_id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
