package repos

import (
	"ventas/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, customer_id, total, purchased, order_id`

func (r *CartRepo) Insert(c domain.Cart) error {
	_, err := r.db.Exec(`
	  INSERT INTO carts(id, customer_id, total, purchased, order_id)
	  VALUES(?, ?, ?, ?, NULL)
	`, c.ID, c.CustomerID, c.Total, c.Purchased)
	return err
}

func (r *CartRepo) Get(id string) (domain.Cart, error) {
	return CartByID(r.db, id)
}

// CartByID reads a cart on any executor so services can load it inside
// their own transaction.
func CartByID(e sqlx.Ext, id string) (domain.Cart, error) {
	var c domain.Cart
	err := sqlx.Get(e, &c, `SELECT `+cartCols+` FROM carts WHERE id = ?`, id)
	return c, err
}

func (r *CartRepo) List() ([]domain.Cart, error) {
	var out []domain.Cart
	err := r.db.Select(&out, `SELECT `+cartCols+` FROM carts ORDER BY id`)
	return out, err
}

func (r *CartRepo) ByCustomer(customerID string) ([]domain.Cart, error) {
	var out []domain.Cart
	err := r.db.Select(&out, `SELECT `+cartCols+` FROM carts WHERE customer_id = ? ORDER BY id`, customerID)
	return out, err
}

// SetCustomer rebinds an open cart. The purchased guard makes the rebind a
// single atomic statement; zero rows means the cart went terminal after the
// caller's check.
func (r *CartRepo) SetCustomer(cartID, customerID string) error {
	res, err := r.db.Exec(`UPDATE carts SET customer_id = ? WHERE id = ? AND purchased = 0`, customerID, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCartPurchased
	}
	return nil
}

// Delete removes an open cart; items go with it via ON DELETE CASCADE.
// Purchased carts are pinned by their order and never match.
func (r *CartRepo) Delete(cartID string) error {
	res, err := r.db.Exec(`DELETE FROM carts WHERE id = ? AND purchased = 0`, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCartPurchased
	}
	return nil
}

// ---------- Line items ----------

const itemCols = `id, cart_id, product_id, qty, subtotal`

func (r *CartRepo) InsertItem(it domain.CartItem) error {
	return InsertItem(r.db, it)
}

// InsertItem appends a line item only while the owning cart is open. The
// EXISTS guard makes check-then-insert a single statement, so a checkout
// committing in between cannot grow a purchased cart.
func InsertItem(e sqlx.Ext, it domain.CartItem) error {
	res, err := e.Exec(`
	  INSERT INTO cart_items(id, cart_id, product_id, qty, subtotal)
	  SELECT ?, ?, ?, ?, ?
	  WHERE EXISTS (SELECT 1 FROM carts WHERE id = ? AND purchased = 0)
	`, it.ID, it.CartID, it.ProductID, it.Qty, it.Subtotal, it.CartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCartPurchased
	}
	return nil
}

func (r *CartRepo) GetItem(id string) (domain.CartItem, error) {
	return ItemByID(r.db, id)
}

func ItemByID(e sqlx.Ext, id string) (domain.CartItem, error) {
	var it domain.CartItem
	err := sqlx.Get(e, &it, `SELECT `+itemCols+` FROM cart_items WHERE id = ?`, id)
	return it, err
}

func (r *CartRepo) ListItems() ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM cart_items ORDER BY id`)
	return out, err
}

func (r *CartRepo) ItemsByCart(cartID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM cart_items WHERE cart_id = ? ORDER BY id`, cartID)
	return out, err
}

func (r *CartRepo) ItemsByProduct(productID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM cart_items WHERE product_id = ? ORDER BY id`, productID)
	return out, err
}

func (r *CartRepo) UpdateItem(it domain.CartItem) error {
	return UpdateItem(r.db, it)
}

// UpdateItem rewrites a line item only while both the current and the target
// cart are open. WHERE sees the pre-update row, so cart_items.cart_id is the
// cart the item is leaving.
func UpdateItem(e sqlx.Ext, it domain.CartItem) error {
	res, err := e.Exec(`
	  UPDATE cart_items SET cart_id = ?, product_id = ?, qty = ?, subtotal = ?
	  WHERE id = ?
	    AND EXISTS (SELECT 1 FROM carts WHERE id = cart_items.cart_id AND purchased = 0)
	    AND EXISTS (SELECT 1 FROM carts WHERE id = ? AND purchased = 0)
	`, it.CartID, it.ProductID, it.Qty, it.Subtotal, it.ID, it.CartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCartPurchased
	}
	return nil
}

func (r *CartRepo) DeleteItem(id string) error {
	return DeleteItem(r.db, id)
}

// DeleteItem removes a line item only while its cart is open.
func DeleteItem(e sqlx.Ext, id string) error {
	res, err := e.Exec(`
	  DELETE FROM cart_items
	  WHERE id = ?
	    AND EXISTS (SELECT 1 FROM carts WHERE id = cart_items.cart_id AND purchased = 0)
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCartPurchased
	}
	return nil
}

// RecomputeTotal re-sums every line item and writes the result back. Always
// a full re-sum, never an increment, so a partially applied update can't
// leave the total drifting.
func (r *CartRepo) RecomputeTotal(cartID string) (decimal.Decimal, error) {
	return RecomputeTotal(r.db, cartID)
}

func RecomputeTotal(e sqlx.Ext, cartID string) (decimal.Decimal, error) {
	var subs []decimal.Decimal
	if err := sqlx.Select(e, &subs, `SELECT subtotal FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(s)
	}
	if _, err := e.Exec(`UPDATE carts SET total = ? WHERE id = ?`, total, cartID); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// MarkPurchased flips the cart to its terminal state. The purchased guard in
// the WHERE clause makes check-then-act a single statement: of two racing
// checkouts exactly one sees a row flip.
func MarkPurchased(e sqlx.Ext, cartID string) (bool, error) {
	res, err := e.Exec(`UPDATE carts SET purchased = 1 WHERE id = ? AND purchased = 0`, cartID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func LinkOrder(e sqlx.Ext, cartID, orderID string) error {
	_, err := e.Exec(`UPDATE carts SET order_id = ? WHERE id = ?`, orderID, cartID)
	return err
}
