package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ventas/internal/domain"
	"ventas/internal/metrics"
	"ventas/internal/repos"

	"github.com/google/uuid"
)

// OrderService is the read side of the ledger plus the direct Record path.
// Checkout writes its own snapshot inside its transaction; Record exists for
// callers that marked the cart purchased some other way and re-checks the
// flag defensively.
type OrderService struct {
	Orders *repos.OrderRepo
	Carts  *repos.CartRepo
	Users  *repos.UserRepo
}

func NewOrderService(orders *repos.OrderRepo, carts *repos.CartRepo, users *repos.UserRepo) *OrderService {
	return &OrderService{Orders: orders, Carts: carts, Users: users}
}

func (s *OrderService) Record(cartID string) (domain.Order, error) {
	cart, err := s.Carts.Get(cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, err
	}
	if !cart.Purchased {
		return domain.Order{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrCartNotPurchased)
	}
	customer, err := s.Users.CustomerByID(cart.CustomerID)
	if err != nil {
		return domain.Order{}, err
	}
	order := domain.Order{
		ID:           uuid.NewString(),
		CartID:       cartID,
		OrderDate:    time.Now().Format("2006-01-02"),
		CustomerName: customer.FullName(),
		Total:        cart.Total,
	}
	if err := s.Orders.Insert(order); err != nil {
		return domain.Order{}, err
	}
	metrics.OrdersRecorded.Inc()
	return order, nil
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return o, err
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.List()
}

func (s *OrderService) ByCustomer(customerID string) ([]domain.Order, error) {
	return s.Orders.ByCustomer(customerID)
}

// ByDateRange returns orders whose snapshotted date falls inside the
// inclusive [start, end] window.
func (s *OrderService) ByDateRange(start, end string) ([]domain.Order, error) {
	if _, err := time.Parse("2006-01-02", start); err != nil {
		return nil, fmt.Errorf("%w: start date %q", domain.ErrInvalidArgument, start)
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return nil, fmt.Errorf("%w: end date %q", domain.ErrInvalidArgument, end)
	}
	return s.Orders.ByDateRange(start, end)
}
