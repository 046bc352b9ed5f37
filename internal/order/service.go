package order

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Limits bounds the values accepted when opening orders and adding items.
type Limits struct {
	MaxTable  int
	MaxAmount int
}

// DefaultLimits is used when a zero Limits is passed to NewService.
var DefaultLimits = Limits{MaxTable: 999, MaxAmount: 99}

// Service runs the order lifecycle (open, add/remove items, send, conclude)
// and the staff-facing queries. Every call performs a single write or read
// against the repository.
type Service struct {
	repo   Repository
	limits Limits
	logger *log.Logger
	now    func() time.Time
}

func NewService(repo Repository, limits Limits, logger *log.Logger) *Service {
	if limits.MaxTable <= 0 {
		limits.MaxTable = DefaultLimits.MaxTable
	}
	if limits.MaxAmount <= 0 {
		limits.MaxAmount = DefaultLimits.MaxAmount
	}
	return &Service{repo: repo, limits: limits, logger: logger, now: time.Now}
}

func (s *Service) Limits() Limits { return s.limits }

// Open creates a draft order for a table.
func (s *Service) Open(ctx context.Context, table int, name string) (*Order, error) {
	if table < 1 || table > s.limits.MaxTable {
		return nil, fmt.Errorf("%w: table must be between 1 and %d", ErrInvalidArgument, s.limits.MaxTable)
	}

	o := &Order{
		ID:        uuid.NewString(),
		Table:     table,
		Name:      strings.TrimSpace(name),
		Draft:     true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Printf("order %s opened for table %d", o.ID, o.Table)
	return o, nil
}

// AddItem does not look at the order's state; only the foreign keys are enforced.
func (s *Service) AddItem(ctx context.Context, orderID, productID string, amount int) (*Item, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}
	if err := validateID("product_id", productID); err != nil {
		return nil, err
	}
	if amount < 1 || amount > s.limits.MaxAmount {
		return nil, fmt.Errorf("%w: amount must be between 1 and %d", ErrInvalidArgument, s.limits.MaxAmount)
	}

	it := &Item{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		ProductID: productID,
		Amount:    amount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AddItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) RemoveItem(ctx context.Context, itemID string) (*Item, error) {
	if err := validateID("item_id", itemID); err != nil {
		return nil, err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

// Remove discards a draft order, typically a table opened by mistake.
func (s *Service) Remove(ctx context.Context, orderID string) (*Order, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}
	o, err := s.repo.Delete(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order %s removed", o.ID)
	return o, nil
}

// Send moves a draft order to open, making it visible in List.
func (s *Service) Send(ctx context.Context, orderID string) (*Order, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}
	o, err := s.repo.Send(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order %s sent (table %d)", o.ID, o.Table)
	return o, nil
}

// Conclude finishes an order that is not concluded yet; a draft may be
// concluded directly. Concluded is terminal.
func (s *Service) Conclude(ctx context.Context, orderID string) (*Order, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}
	o, err := s.repo.Conclude(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order %s concluded (table %d)", o.ID, o.Table)
	return o, nil
}

// List returns open orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Detail(ctx context.Context, orderID string) ([]ItemDetail, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}
	return s.repo.Items(ctx, orderID)
}

func validateID(field, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing %s", ErrInvalidArgument, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s is not a valid id", ErrInvalidArgument, field)
	}
	return nil
}
