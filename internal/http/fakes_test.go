package httpapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/order"
	"github.com/andreasstove999/table-ordering/internal/user"
)

const testToken = "Bearer good"

type fakeVerifier struct{}

func (fakeVerifier) VerifyHeader(header string) (string, error) {
	if header != testToken {
		return "", errors.New("bad token")
	}
	return "6b1f3a3c-8a0e-4d5b-9b0c-1f2e3d4c5b6a", nil
}

type fakeOrders struct {
	openFunc       func(ctx context.Context, table int, name string) (*order.Order, error)
	addItemFunc    func(ctx context.Context, orderID, productID string, amount int) (*order.Item, error)
	removeItemFunc func(ctx context.Context, itemID string) (*order.Item, error)
	removeFunc     func(ctx context.Context, orderID string) (*order.Order, error)
	sendFunc       func(ctx context.Context, orderID string) (*order.Order, error)
	concludeFunc   func(ctx context.Context, orderID string) (*order.Order, error)
	listFunc       func(ctx context.Context) ([]order.Order, error)
	detailFunc     func(ctx context.Context, orderID string) ([]order.ItemDetail, error)
}

func (f *fakeOrders) Open(ctx context.Context, table int, name string) (*order.Order, error) {
	if f.openFunc != nil {
		return f.openFunc(ctx, table, name)
	}
	return &order.Order{}, nil
}

func (f *fakeOrders) AddItem(ctx context.Context, orderID, productID string, amount int) (*order.Item, error) {
	if f.addItemFunc != nil {
		return f.addItemFunc(ctx, orderID, productID, amount)
	}
	return &order.Item{}, nil
}

func (f *fakeOrders) RemoveItem(ctx context.Context, itemID string) (*order.Item, error) {
	if f.removeItemFunc != nil {
		return f.removeItemFunc(ctx, itemID)
	}
	return &order.Item{}, nil
}

func (f *fakeOrders) Remove(ctx context.Context, orderID string) (*order.Order, error) {
	if f.removeFunc != nil {
		return f.removeFunc(ctx, orderID)
	}
	return &order.Order{}, nil
}

func (f *fakeOrders) Send(ctx context.Context, orderID string) (*order.Order, error) {
	if f.sendFunc != nil {
		return f.sendFunc(ctx, orderID)
	}
	return &order.Order{}, nil
}

func (f *fakeOrders) Conclude(ctx context.Context, orderID string) (*order.Order, error) {
	if f.concludeFunc != nil {
		return f.concludeFunc(ctx, orderID)
	}
	return &order.Order{}, nil
}

func (f *fakeOrders) List(ctx context.Context) ([]order.Order, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return []order.Order{}, nil
}

func (f *fakeOrders) Detail(ctx context.Context, orderID string) ([]order.ItemDetail, error) {
	if f.detailFunc != nil {
		return f.detailFunc(ctx, orderID)
	}
	return []order.ItemDetail{}, nil
}

type fakeCatalog struct {
	createCategoryFunc func(ctx context.Context, name string) (*catalog.Category, error)
	listCategoriesFunc func(ctx context.Context) ([]catalog.Category, error)
	createProductFunc  func(ctx context.Context, in catalog.NewProduct) (*catalog.Product, error)
	listProductsFunc   func(ctx context.Context, categoryID string) ([]catalog.Product, error)
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	if f.createCategoryFunc != nil {
		return f.createCategoryFunc(ctx, name)
	}
	return &catalog.Category{Name: name}, nil
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if f.listCategoriesFunc != nil {
		return f.listCategoriesFunc(ctx)
	}
	return []catalog.Category{}, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in catalog.NewProduct) (*catalog.Product, error) {
	if f.createProductFunc != nil {
		return f.createProductFunc(ctx, in)
	}
	return &catalog.Product{Name: in.Name, Price: in.Price, CategoryID: in.CategoryID}, nil
}

func (f *fakeCatalog) ListProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	if f.listProductsFunc != nil {
		return f.listProductsFunc(ctx, categoryID)
	}
	return []catalog.Product{}, nil
}

type fakeUsers struct {
	createFunc       func(ctx context.Context, name, email, password string) (*user.User, error)
	authenticateFunc func(ctx context.Context, email, password string) (*user.Session, error)
	detailFunc       func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUsers) Create(ctx context.Context, name, email, password string) (*user.User, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, name, email, password)
	}
	return &user.User{Name: name, Email: email}, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (*user.Session, error) {
	if f.authenticateFunc != nil {
		return f.authenticateFunc(ctx, email, password)
	}
	return &user.Session{Email: email}, nil
}

func (f *fakeUsers) Detail(ctx context.Context, id string) (*user.User, error) {
	if f.detailFunc != nil {
		return f.detailFunc(ctx, id)
	}
	return &user.User{ID: id}, nil
}

type testDeps struct {
	orders  *fakeOrders
	catalog *fakeCatalog
	users   *fakeUsers
}

func newTestRouter() (http.Handler, *testDeps) {
	d := &testDeps{orders: &fakeOrders{}, catalog: &fakeCatalog{}, users: &fakeUsers{}}
	h := NewRouter(Deps{
		Logger:      log.New(io.Discard, "", 0),
		CORSOrigins: []string{"*"},
		Verifier:    fakeVerifier{},
		Orders:      d.orders,
		Catalog:     d.catalog,
		Users:       d.users,
	})
	return h, d
}

func newRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, target, rd)
	req.Header.Set("Authorization", testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
