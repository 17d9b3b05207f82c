package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       string          `db:"image" json:"image,omitempty"`
	Description string          `db:"description" json:"description,omitempty"`
	Units       int             `db:"units" json:"units"`
	Gender      Gender          `db:"gender" json:"gender"`
	Category    Category        `db:"category" json:"category"`
	Brand       string          `db:"brand" json:"brand,omitempty"`
	Size        Size            `db:"size" json:"size"`
	CreatedAt   string          `db:"created_at" json:"created_at,omitempty"`
}

// Available reports whether any units are left. Quantity checks at
// add-to-cart time are advisory; the checkout transaction is what actually
// guards stock.
func (p Product) Available() bool { return p.Units > 0 }

type Cart struct {
	ID         string          `db:"id" json:"id"`
	CustomerID string          `db:"customer_id" json:"customer_id"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Purchased  bool            `db:"purchased" json:"purchased"`
	OrderID    *string         `db:"order_id" json:"order_id,omitempty"` // set iff Purchased
}

type CartItem struct {
	ID        string          `db:"id" json:"id"`
	CartID    string          `db:"cart_id" json:"cart_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Qty       int             `db:"qty" json:"qty"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// Order is the snapshot written at purchase time. CustomerName and Total are
// copied from the cart at that instant and never recomputed.
type Order struct {
	ID           string          `db:"id" json:"id"`
	CartID       string          `db:"cart_id" json:"cart_id"`
	OrderDate    string          `db:"order_date" json:"order_date"` // YYYY-MM-DD
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Total        decimal.Decimal `db:"total" json:"total"`
}
