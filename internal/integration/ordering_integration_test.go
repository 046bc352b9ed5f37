package integration

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/table-ordering/internal/auth"
	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/client"
	httpapi "github.com/andreasstove999/table-ordering/internal/http"
	"github.com/andreasstove999/table-ordering/internal/order"
	"github.com/andreasstove999/table-ordering/internal/testutil"
	"github.com/andreasstove999/table-ordering/internal/user"
)

var secret = []byte("integration-secret")

type app struct {
	baseURL string
	api     *client.Client
	product catalog.Product
}

func startApp(t *testing.T) *app {
	t.Helper()

	pool, _ := testutil.StartPostgres(t)
	logger := log.New(io.Discard, "", log.LstdFlags)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         logger,
		RequestTimeout: 5 * time.Second,
		CORSOrigins:    []string{"*"},
		Verifier:       auth.NewVerifier(secret),
		Orders:         order.NewService(order.NewPostgresRepository(pool), order.Limits{MaxTable: 50, MaxAmount: 10}, logger),
		Catalog:        catalog.NewService(catalog.NewPostgresRepository(pool)),
		Users:          user.NewService(user.NewPostgresRepository(pool), auth.NewIssuer(secret, time.Hour)),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = api.Do(ctx, http.MethodPost, "/users", nil, map[string]string{
		"name": "Ana", "email": "Ana@Example.com", "password": "123456",
	}, nil)
	require.NoError(t, err)

	_, err = api.Login(ctx, "ana@example.com", "123456")
	require.NoError(t, err)

	var cat catalog.Category
	require.NoError(t, api.Do(ctx, http.MethodPost, "/category", nil, map[string]string{"name": "Pizzas"}, &cat))

	var product catalog.Product
	require.NoError(t, api.Do(ctx, http.MethodPost, "/product", nil, map[string]any{
		"name":        "Margherita",
		"price":       "32.90",
		"description": "tomato, mozzarella, basil",
		"category_id": cat.ID,
	}, &product))

	return &app{baseURL: srv.URL, api: api, product: product}
}

func activeIDs(t *testing.T, api *client.Client) map[string]bool {
	t.Helper()
	orders, err := api.ListOrders(context.Background())
	require.NoError(t, err)
	ids := make(map[string]bool, len(orders))
	for _, o := range orders {
		ids[o.ID] = true
	}
	return ids
}

func TestOrderingIntegration(t *testing.T) {
	a := startApp(t)
	api := a.api
	ctx := context.Background()

	t.Run("session and catalog", func(t *testing.T) {
		me, err := api.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", me.Email)

		cats, err := api.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)

		products, err := api.Products(ctx, cats[0].ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.True(t, decimal.RequireFromString("32.90").Equal(products[0].Price))
	})

	t.Run("rejects foreign tokens", func(t *testing.T) {
		other, err := client.New(a.baseURL, nil)
		require.NoError(t, err)

		_, err = other.ListOrders(ctx)
		require.ErrorIs(t, err, client.ErrUnauthorized)

		forged, err := auth.NewIssuer([]byte("someone-else"), time.Hour).Issue(uuid.NewString(), "x", "x@example.com")
		require.NoError(t, err)
		other.SetToken(forged)
		_, err = other.ListOrders(ctx)
		require.ErrorIs(t, err, client.ErrUnauthorized)
	})

	t.Run("draft is hidden until sent and gone once concluded", func(t *testing.T) {
		o, err := api.OpenOrder(ctx, 5, "window")
		require.NoError(t, err)
		assert.True(t, o.Draft)
		assert.False(t, o.Status)
		assert.False(t, activeIDs(t, api)[o.ID])

		sent, err := api.SendOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StateOpen, sent.State())
		assert.True(t, activeIDs(t, api)[o.ID])

		done, err := api.ConcludeOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StateConcluded, done.State())
		assert.False(t, activeIDs(t, api)[o.ID])

		_, err = api.ConcludeOrder(ctx, o.ID)
		assert.True(t, client.IsStatus(err, http.StatusConflict))
	})

	t.Run("add then remove restores the item set", func(t *testing.T) {
		o, err := api.OpenOrder(ctx, 8, "")
		require.NoError(t, err)

		before, err := api.DetailOrder(ctx, o.ID)
		require.NoError(t, err)
		require.Empty(t, before)

		it, err := api.AddItem(ctx, o.ID, a.product.ID, 2)
		require.NoError(t, err)

		mid, err := api.DetailOrder(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, mid, 1)

		_, err = api.RemoveItem(ctx, it.ID)
		require.NoError(t, err)

		after, err := api.DetailOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		_, err = api.RemoveItem(ctx, it.ID)
		assert.True(t, client.IsStatus(err, http.StatusNotFound))
	})

	t.Run("list is newest first", func(t *testing.T) {
		for table := 11; table <= 14; table++ {
			o, err := api.OpenOrder(ctx, table, "")
			require.NoError(t, err)
			_, err = api.SendOrder(ctx, o.ID)
			require.NoError(t, err)
		}

		orders, err := api.ListOrders(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(orders), 4)
		for i := 1; i < len(orders); i++ {
			assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt), "position %d", i)
		}
		assert.Equal(t, 14, orders[0].Table)
	})

	t.Run("open add detail conclude", func(t *testing.T) {
		o, err := api.OpenOrder(ctx, 3, "")
		require.NoError(t, err)
		_, err = api.AddItem(ctx, o.ID, a.product.ID, 2)
		require.NoError(t, err)

		items, err := api.DetailOrder(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, a.product.ID, items[0].Product.ID)
		assert.Equal(t, "Margherita", items[0].Product.Name)
		assert.True(t, decimal.RequireFromString("32.90").Equal(items[0].Product.Price))
		assert.Equal(t, 2, items[0].Amount)

		_, err = api.ConcludeOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.False(t, activeIDs(t, api)[o.ID])
	})

	t.Run("open then remove", func(t *testing.T) {
		o, err := api.OpenOrder(ctx, 1, "")
		require.NoError(t, err)

		removed, err := api.RemoveOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, removed.ID)

		_, err = api.DetailOrder(ctx, o.ID)
		assert.True(t, client.IsStatus(err, http.StatusNotFound))
	})

	t.Run("invalid transitions", func(t *testing.T) {
		o, err := api.OpenOrder(ctx, 9, "")
		require.NoError(t, err)
		_, err = api.SendOrder(ctx, o.ID)
		require.NoError(t, err)

		_, err = api.SendOrder(ctx, o.ID)
		assert.True(t, client.IsStatus(err, http.StatusConflict))

		_, err = api.RemoveOrder(ctx, o.ID)
		assert.True(t, client.IsStatus(err, http.StatusConflict))

		_, err = api.SendOrder(ctx, uuid.NewString())
		assert.True(t, client.IsStatus(err, http.StatusNotFound))
	})

	t.Run("bounds and references", func(t *testing.T) {
		for _, table := range []int{0, -1, 51} {
			_, err := api.OpenOrder(ctx, table, "")
			assert.True(t, client.IsStatus(err, http.StatusBadRequest), "table %d", table)
		}

		o, err := api.OpenOrder(ctx, 50, "")
		require.NoError(t, err)

		for _, amount := range []int{0, 11} {
			_, err = api.AddItem(ctx, o.ID, a.product.ID, amount)
			assert.True(t, client.IsStatus(err, http.StatusBadRequest), "amount %d", amount)
		}

		_, err = api.AddItem(ctx, o.ID, uuid.NewString(), 1)
		assert.True(t, client.IsStatus(err, http.StatusUnprocessableEntity))

		_, err = api.AddItem(ctx, o.ID, "not-a-uuid", 1)
		assert.True(t, client.IsStatus(err, http.StatusBadRequest))
	})
}
