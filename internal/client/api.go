package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/order"
	"github.com/andreasstove999/table-ordering/internal/user"
)

// Login opens a session and keeps its token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*user.Session, error) {
	var s user.Session
	in := map[string]string{"email": email, "password": password}
	if err := c.Do(ctx, http.MethodPost, "/session", nil, in, &s); err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return &s, nil
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := c.Do(ctx, http.MethodGet, "/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	if err := c.Do(ctx, http.MethodGet, "/category", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	var out []catalog.Product
	q := url.Values{"category_id": {categoryID}}
	if err := c.Do(ctx, http.MethodGet, "/category/product", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OpenOrder(ctx context.Context, table int, name string) (*order.Order, error) {
	var o order.Order
	in := struct {
		Table int    `json:"table"`
		Name  string `json:"name"`
	}{table, name}
	if err := c.Do(ctx, http.MethodPost, "/order", nil, in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) RemoveOrder(ctx context.Context, orderID string) (*order.Order, error) {
	var o order.Order
	q := url.Values{"order_id": {orderID}}
	if err := c.Do(ctx, http.MethodDelete, "/order", q, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) AddItem(ctx context.Context, orderID, productID string, amount int) (*order.Item, error) {
	var it order.Item
	in := struct {
		OrderID   string `json:"order_id"`
		ProductID string `json:"product_id"`
		Amount    int    `json:"amount"`
	}{orderID, productID, amount}
	if err := c.Do(ctx, http.MethodPost, "/order/add", nil, in, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID string) (*order.Item, error) {
	var it order.Item
	q := url.Values{"item_id": {itemID}}
	if err := c.Do(ctx, http.MethodDelete, "/order/remove", q, nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) SendOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return c.transition(ctx, "/order/send", orderID)
}

func (c *Client) ConcludeOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return c.transition(ctx, "/order/conclude", orderID)
}

func (c *Client) transition(ctx context.Context, path, orderID string) (*order.Order, error) {
	var o order.Order
	in := map[string]string{"order_id": orderID}
	if err := c.Do(ctx, http.MethodPut, path, nil, in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := c.Do(ctx, http.MethodGet, "/order/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DetailOrder(ctx context.Context, orderID string) ([]order.ItemDetail, error) {
	var out []order.ItemDetail
	q := url.Values{"order_id": {orderID}}
	if err := c.Do(ctx, http.MethodGet, "/order/detail", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
