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
	"github.com/jmoiron/sqlx"
)

// CheckoutService runs the one-way open -> purchased transition. The whole
// transition is a single transaction: flip the purchased flag, snapshot the
// order, link it, and decrement stock for every line item. Any failure rolls
// everything back, so a caller either observes the full purchase or none of
// it.
type CheckoutService struct {
	DB *sqlx.DB
}

func NewCheckoutService(db *sqlx.DB) *CheckoutService { return &CheckoutService{DB: db} }

func (s *CheckoutService) Purchase(cartID string) (domain.Order, error) {
	o, err := s.purchase(cartID)
	switch {
	case err == nil:
		metrics.CheckoutTotal.WithLabelValues("ok").Inc()
		metrics.OrdersRecorded.Inc()
	case errors.Is(err, domain.ErrCartPurchased):
		metrics.CheckoutTotal.WithLabelValues("already_purchased").Inc()
	case errors.Is(err, domain.ErrOutOfStock):
		metrics.CheckoutTotal.WithLabelValues("out_of_stock").Inc()
	default:
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
	}
	return o, err
}

func (s *CheckoutService) purchase(cartID string) (domain.Order, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := repos.CartByID(tx, cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
		}
		return domain.Order{}, err
	}

	// Guarded flip; a second purchase of the same cart loses here.
	flipped, err := repos.MarkPurchased(tx, cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if !flipped {
		return domain.Order{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrCartPurchased)
	}

	var customer domain.Customer
	if err := tx.Get(&customer, `
	  SELECT id, username, password_hash, first_names, last_names, document_type, document_number, birth_date
	  FROM customers WHERE id = ?`, cart.CustomerID); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:           uuid.NewString(),
		CartID:       cartID,
		OrderDate:    time.Now().Format("2006-01-02"),
		CustomerName: customer.FullName(),
		Total:        cart.Total,
	}
	if err := repos.InsertOrder(tx, order); err != nil {
		return domain.Order{}, err
	}
	if err := repos.LinkOrder(tx, cartID, order.ID); err != nil {
		return domain.Order{}, err
	}

	// Ascending product id keeps overlapping checkouts from deadlocking on
	// each other's decrement order.
	var items []domain.CartItem
	if err := tx.Select(&items, `
	  SELECT id, cart_id, product_id, qty, subtotal
	  FROM cart_items WHERE cart_id = ?
	  ORDER BY product_id`, cartID); err != nil {
		return domain.Order{}, err
	}
	for _, it := range items {
		if err := repos.Decrement(tx, it.ProductID, it.Qty); err != nil {
			return domain.Order{}, fmt.Errorf("product %s: %w", it.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
