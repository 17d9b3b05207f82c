package repos

import (
	"ventas/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, cart_id, order_date, customer_name, total`

func (r *OrderRepo) Insert(o domain.Order) error {
	return InsertOrder(r.db, o)
}

// InsertOrder writes the snapshot row on any executor so the checkout
// transaction can use it directly.
func InsertOrder(e sqlx.Ext, o domain.Order) error {
	_, err := e.Exec(`
	  INSERT INTO orders(id, cart_id, order_date, customer_name, total)
	  VALUES(?, ?, ?, ?, ?)
	`, o.ID, o.CartID, o.OrderDate, o.CustomerName, o.Total)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) List() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY order_date DESC, id`)
	return out, err
}

// ByCustomer joins through the originating cart to its customer.
func (r *OrderRepo) ByCustomer(customerID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT o.id, o.cart_id, o.order_date, o.customer_name, o.total
	  FROM orders o
	  JOIN carts c ON c.id = o.cart_id
	  WHERE c.customer_id = ?
	  ORDER BY o.order_date DESC, o.id
	`, customerID)
	return out, err
}

// ByDateRange filters on the snapshotted date, bounds inclusive.
func (r *OrderRepo) ByDateRange(start, end string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE order_date >= ? AND order_date <= ?
	  ORDER BY order_date, id
	`, start, end)
	return out, err
}
