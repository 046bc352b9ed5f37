package waiter

import (
	"context"

	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/order"
)

// API is the subset of the ordering API the waiter screens use.
// *client.Client implements it.
type API interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	Products(ctx context.Context, categoryID string) ([]catalog.Product, error)
	OpenOrder(ctx context.Context, table int, name string) (*order.Order, error)
	RemoveOrder(ctx context.Context, orderID string) (*order.Order, error)
	AddItem(ctx context.Context, orderID, productID string, amount int) (*order.Item, error)
	RemoveItem(ctx context.Context, itemID string) (*order.Item, error)
	SendOrder(ctx context.Context, orderID string) (*order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	DetailOrder(ctx context.Context, orderID string) ([]order.ItemDetail, error)
	ConcludeOrder(ctx context.Context, orderID string) (*order.Order, error)
}
