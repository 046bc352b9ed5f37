package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/table-ordering/internal/metrics"
	"github.com/andreasstove999/table-ordering/internal/middleware"
)

type Deps struct {
	Logger         *log.Logger
	RequestTimeout time.Duration
	CORSOrigins    []string

	Verifier middleware.TokenVerifier
	Orders   OrderService
	Catalog  CatalogService
	Users    UserService

	// Optional; /metrics is not mounted when nil.
	Metrics *metrics.ServerMetrics
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 5 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CORS(d.CORSOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Get("/health", healthHandler)

	users := &UserHandler{svc: d.Users, logger: d.Logger, timeout: d.RequestTimeout}
	catalog := &CatalogHandler{svc: d.Catalog, logger: d.Logger, timeout: d.RequestTimeout}
	orders := &OrderHandler{svc: d.Orders, logger: d.Logger, timeout: d.RequestTimeout}

	r.Post("/users", users.Create)
	r.Post("/session", users.Session)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Verifier, d.Logger))

		r.Get("/me", users.Me)

		r.Post("/category", catalog.CreateCategory)
		r.Get("/category", catalog.ListCategories)
		r.Get("/category/product", catalog.ListProductsByCategory)
		r.Post("/product", catalog.CreateProduct)

		r.Route("/order", func(r chi.Router) {
			r.Post("/", orders.Open)
			r.Delete("/", orders.Remove)
			r.Post("/add", orders.AddItem)
			r.Delete("/remove", orders.RemoveItem)
			r.Put("/send", orders.Send)
			r.Get("/list", orders.List)
			r.Get("/detail", orders.Detail)
			r.Put("/conclude", orders.Conclude)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "ordering-api",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
