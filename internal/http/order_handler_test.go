package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/table-ordering/internal/order"
)

const (
	orderID = "6f1c2a8e-5b0e-4a53-9a53-7c1f0f3d2b11"
	itemID  = "a3e9a4a2-1b7c-4d35-9f0b-3d2c1e0f9a88"
)

func TestOpenOrder_Success(t *testing.T) {
	h, d := newTestRouter()

	var gotTable int
	var gotName string
	d.orders.openFunc = func(ctx context.Context, table int, name string) (*order.Order, error) {
		gotTable, gotName = table, name
		return &order.Order{ID: orderID, Table: table, Name: name, Draft: true}, nil
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodPost, "/order", `{"table":12,"name":"terrace"}`))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 12, gotTable)
	assert.Equal(t, "terrace", gotName)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, orderID, resp["id"])
	assert.Equal(t, float64(12), resp["table"])
	assert.Equal(t, true, resp["draft"])
	assert.Equal(t, false, resp["status"])
}

func TestOpenOrder_InvalidJSON(t *testing.T) {
	h, d := newTestRouter()
	called := false
	d.orders.openFunc = func(ctx context.Context, table int, name string) (*order.Order, error) {
		called = true
		return nil, nil
	}

	for _, body := range []string{`{`, `{"table":"twelve"}`, `{"table":1,"extra":true}`} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, newRequest(http.MethodPost, "/order", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	assert.False(t, called)
}

func TestOrderRoutes_RequireToken(t *testing.T) {
	h, _ := newTestRouter()

	routes := []struct{ method, path string }{
		{http.MethodPost, "/order"},
		{http.MethodDelete, "/order?order_id=" + orderID},
		{http.MethodPost, "/order/add"},
		{http.MethodDelete, "/order/remove?item_id=" + itemID},
		{http.MethodPut, "/order/send"},
		{http.MethodGet, "/order/list"},
		{http.MethodGet, "/order/detail?order_id=" + orderID},
		{http.MethodPut, "/order/conclude"},
		{http.MethodGet, "/category"},
		{http.MethodGet, "/me"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := newRequest(rt.method, rt.path, "")
			req.Header.Del("Authorization")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Empty(t, rr.Body.String())

			req = newRequest(rt.method, rt.path, "")
			req.Header.Set("Authorization", "Bearer forged")
			rr = httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAddItem_PassesFields(t *testing.T) {
	h, d := newTestRouter()

	d.orders.addItemFunc = func(ctx context.Context, oid, pid string, amount int) (*order.Item, error) {
		assert.Equal(t, orderID, oid)
		assert.Equal(t, "p-1", pid)
		assert.Equal(t, 3, amount)
		return &order.Item{ID: itemID, OrderID: oid, ProductID: pid, Amount: amount}, nil
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodPost, "/order/add",
		fmt.Sprintf(`{"order_id":%q,"product_id":"p-1","amount":3}`, orderID)))

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp order.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, itemID, resp.ID)
	assert.Equal(t, 3, resp.Amount)
}

func TestRemoveItem_UsesQuery(t *testing.T) {
	h, d := newTestRouter()

	var got string
	d.orders.removeItemFunc = func(ctx context.Context, id string) (*order.Item, error) {
		got = id
		return &order.Item{ID: id}, nil
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodDelete, "/order/remove?item_id="+itemID, ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, itemID, got)
}

func TestSendAndConclude(t *testing.T) {
	h, d := newTestRouter()

	d.orders.sendFunc = func(ctx context.Context, id string) (*order.Order, error) {
		return &order.Order{ID: id}, nil
	}
	d.orders.concludeFunc = func(ctx context.Context, id string) (*order.Order, error) {
		return &order.Order{ID: id, Status: true}, nil
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodPut, "/order/send", fmt.Sprintf(`{"order_id":%q}`, orderID)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"draft":false`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodPut, "/order/conclude", fmt.Sprintf(`{"order_id":%q}`, orderID)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":true`)
}

func TestListOrders_EmptyIsArray(t *testing.T) {
	h, _ := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodGet, "/order/list", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestOrderErrors_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid argument", fmt.Errorf("%w: amount must be between 1 and 99", order.ErrInvalidArgument), http.StatusBadRequest, "amount must be between 1 and 99"},
		{"not found", order.ErrNotFound, http.StatusNotFound, "not found"},
		{"invalid transition", fmt.Errorf("%w: order is open", order.ErrInvalidTransition), http.StatusConflict, "order is open"},
		{"invalid reference", order.ErrInvalidReference, http.StatusUnprocessableEntity, order.ErrInvalidReference.Error()},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, d := newTestRouter()
			d.orders.sendFunc = func(ctx context.Context, id string) (*order.Order, error) {
				return nil, tc.err
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, newRequest(http.MethodPut, "/order/send", fmt.Sprintf(`{"order_id":%q}`, orderID)))

			require.Equal(t, tc.status, rr.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tc.body)
			assert.NotContains(t, resp["error"], "pq:")
		})
	}
}

func TestDetail_NotFound(t *testing.T) {
	h, d := newTestRouter()
	d.orders.detailFunc = func(ctx context.Context, id string) ([]order.ItemDetail, error) {
		assert.Equal(t, orderID, id)
		return nil, order.ErrNotFound
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(http.MethodGet, "/order/detail?order_id="+orderID, ""))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
