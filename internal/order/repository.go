package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/table-ordering/internal/db"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Delete(ctx context.Context, orderID string) (*Order, error)
	AddItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, itemID string) (*Item, error)
	Send(ctx context.Context, orderID string) (*Order, error)
	Conclude(ctx context.Context, orderID string) (*Order, error)
	ListActive(ctx context.Context) ([]Order, error)
	Items(ctx context.Context, orderID string) ([]ItemDetail, error)
}

const orderColumns = `id, table_no, name, draft, status, created_at, updated_at`

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = o.CreatedAt

	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, table_no, name, draft, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.Table, o.Name, o.Draft, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Delete removes a draft order; its items go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, orderID string) (*Order, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM orders WHERE id = $1 AND draft = TRUE AND status = FALSE
         RETURNING `+orderColumns,
		orderID,
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classify(ctx, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, order_id, product_id, amount, created_at)
         VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.OrderID, it.ProductID, it.Amount, it.CreatedAt,
	)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID string) (*Item, error) {
	var it Item
	err := r.pool.QueryRow(ctx,
		`DELETE FROM items WHERE id = $1
         RETURNING id, order_id, product_id, amount, created_at`,
		itemID,
	).Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Amount, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete item: %w", err)
	}
	return &it, nil
}

func (r *PostgresRepository) Send(ctx context.Context, orderID string) (*Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET draft = FALSE, updated_at = NOW()
         WHERE id = $1 AND draft = TRUE AND status = FALSE
         RETURNING `+orderColumns,
		orderID,
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classify(ctx, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("send order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Conclude(ctx context.Context, orderID string) (*Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET status = TRUE, updated_at = NOW()
         WHERE id = $1 AND status = FALSE
         RETURNING `+orderColumns,
		orderID,
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classify(ctx, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("conclude order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
         FROM orders
         WHERE draft = FALSE AND status = FALSE
         ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) Items(ctx context.Context, orderID string) ([]ItemDetail, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`,
		orderID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.pool.Query(ctx,
		`SELECT i.id, i.order_id, i.amount, i.created_at, p.id, p.name, p.price::text
         FROM items i
         JOIN products p ON p.id = i.product_id
         WHERE i.order_id = $1
         ORDER BY i.created_at, i.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := []ItemDetail{}
	for rows.Next() {
		var (
			it    ItemDetail
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Amount, &it.CreatedAt,
			&it.Product.ID, &it.Product.Name, &price); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.Product.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// classify explains why a guarded write touched no row.
func (r *PostgresRepository) classify(ctx context.Context, orderID string) error {
	var draft, status bool
	err := r.pool.QueryRow(ctx,
		`SELECT draft, status FROM orders WHERE id = $1`,
		orderID,
	).Scan(&draft, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select order state: %w", err)
	}
	return fmt.Errorf("%w: order is %s", ErrInvalidTransition, stateOf(draft, status))
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.Table, &o.Name, &o.Draft, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
