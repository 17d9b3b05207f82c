package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/domain"
	"ventas/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CartService owns the mutable pre-purchase cart aggregate: line items, the
// derived total, and the open/purchased guard on every mutation. Item writes
// and their total re-sum run in a single transaction, so a checkout can only
// land before or after a whole mutation, never inside one.
type CartService struct {
	DB    *sqlx.DB
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
	Users *repos.UserRepo
}

func NewCartService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo, users *repos.UserRepo) *CartService {
	return &CartService{DB: db, Carts: carts, Prods: prods, Users: users}
}

func (s *CartService) Create(customerID string) (domain.Cart, error) {
	if _, err := s.Users.CustomerByID(customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
		}
		return domain.Cart{}, err
	}
	c := domain.Cart{ID: uuid.NewString(), CustomerID: customerID, Total: decimal.Zero}
	if err := s.Carts.Insert(c); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

func (s *CartService) Get(id string) (domain.Cart, error) {
	c, err := s.Carts.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (s *CartService) List() ([]domain.Cart, error) {
	return s.Carts.List()
}

func (s *CartService) ByCustomer(customerID string) ([]domain.Cart, error) {
	return s.Carts.ByCustomer(customerID)
}

// Reassign moves an open cart to another customer. Purchased carts already
// snapshotted a customer name onto their order, so rebinding is rejected; the
// guarded rebind statement re-checks in case a checkout lands after Get.
func (s *CartService) Reassign(cartID, customerID string) (domain.Cart, error) {
	c, err := s.Get(cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if c.Purchased {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrCartPurchased)
	}
	if _, err := s.Users.CustomerByID(customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
		}
		return domain.Cart{}, err
	}
	if err := s.Carts.SetCustomer(cartID, customerID); err != nil {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", cartID, err)
	}
	c.CustomerID = customerID
	return c, nil
}

// Delete removes an open cart and its items. A purchased cart is pinned by
// its order and cannot be deleted; the guarded delete re-checks under race.
func (s *CartService) Delete(cartID string) error {
	c, err := s.Get(cartID)
	if err != nil {
		return err
	}
	if c.Purchased {
		return fmt.Errorf("cart %s: %w", cartID, domain.ErrCartPurchased)
	}
	if err := s.Carts.Delete(cartID); err != nil {
		return fmt.Errorf("cart %s: %w", cartID, err)
	}
	return nil
}

// checkStock applies the advisory reserve check for one product/qty pair.
func (s *CartService) checkStock(p domain.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidArgument)
	}
	if !p.Available() || qty > p.Units {
		return fmt.Errorf("product %s (want %d, have %d): %w", p.ID, qty, p.Units, domain.ErrOutOfStock)
	}
	return nil
}

func (s *CartService) product(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

// openCart loads a cart on the mutation's transaction and rejects terminal
// ones.
func openCart(tx *sqlx.Tx, cartID string) (domain.Cart, error) {
	cart, err := repos.CartByID(tx, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Cart{}, err
	}
	if cart.Purchased {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", cartID, domain.ErrCartPurchased)
	}
	return cart, nil
}

// AddItem appends a line item with subtotal = qty * price and re-sums the
// cart total, both inside one transaction.
func (s *CartService) AddItem(cartID, productID string, qty int) (domain.CartItem, error) {
	p, err := s.product(productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if err := s.checkStock(p, qty); err != nil {
		return domain.CartItem{}, err
	}
	it := domain.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		ProductID: productID,
		Qty:       qty,
		Subtotal:  p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.CartItem{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := openCart(tx, cartID); err != nil {
		return domain.CartItem{}, err
	}
	if err := repos.InsertItem(tx, it); err != nil {
		return domain.CartItem{}, fmt.Errorf("cart %s: %w", cartID, err)
	}
	if _, err := repos.RecomputeTotal(tx, cartID); err != nil {
		return domain.CartItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.CartItem{}, err
	}
	return it, nil
}

// UpdateItem re-validates stock exactly like AddItem, may move the item to
// another open cart, and re-sums every cart it touched in one transaction.
func (s *CartService) UpdateItem(itemID string, qty int, productID, cartID string) (domain.CartItem, error) {
	p, err := s.product(productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if err := s.checkStock(p, qty); err != nil {
		return domain.CartItem{}, err
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.CartItem{}, err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := repos.ItemByID(tx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.CartItem{}, err
	}
	oldCartID := it.CartID

	if _, err := openCart(tx, oldCartID); err != nil {
		return domain.CartItem{}, err
	}
	if cartID != oldCartID {
		if _, err := openCart(tx, cartID); err != nil {
			return domain.CartItem{}, err
		}
	}

	it.CartID = cartID
	it.ProductID = productID
	it.Qty = qty
	it.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(qty)))
	if err := repos.UpdateItem(tx, it); err != nil {
		return domain.CartItem{}, fmt.Errorf("cart %s: %w", cartID, err)
	}
	if _, err := repos.RecomputeTotal(tx, cartID); err != nil {
		return domain.CartItem{}, err
	}
	if oldCartID != cartID {
		if _, err := repos.RecomputeTotal(tx, oldCartID); err != nil {
			return domain.CartItem{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.CartItem{}, err
	}
	return it, nil
}

func (s *CartService) RemoveItem(itemID string) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := repos.ItemByID(tx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if _, err := openCart(tx, it.CartID); err != nil {
		return err
	}
	if err := repos.DeleteItem(tx, itemID); err != nil {
		return fmt.Errorf("cart %s: %w", it.CartID, err)
	}
	if _, err := repos.RecomputeTotal(tx, it.CartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *CartService) Item(id string) (domain.CartItem, error) {
	it, err := s.Carts.GetItem(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return it, err
}

func (s *CartService) Items() ([]domain.CartItem, error) {
	return s.Carts.ListItems()
}

func (s *CartService) ItemsByCart(cartID string) ([]domain.CartItem, error) {
	return s.Carts.ItemsByCart(cartID)
}

func (s *CartService) ItemsByProduct(productID string) ([]domain.CartItem, error) {
	return s.Carts.ItemsByProduct(productID)
}
