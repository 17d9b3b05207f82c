package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ventas/internal/domain"
	"ventas/internal/repos"
)

func cartTotal(t *testing.T, f fixture, cartID string) decimal.Decimal {
	t.Helper()
	c, err := f.carts.Get(cartID)
	if err != nil {
		t.Fatal(err)
	}
	return c.Total
}

func TestCartTotalTracksItems(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	if !cartTotal(t, f, cart.ID).IsZero() {
		t.Fatal("new cart total not zero")
	}

	runner, err := f.carts.AddItem(cart.ID, "p-runner", 2) // 40.00
	if err != nil {
		t.Fatal(err)
	}
	if !runner.Subtotal.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("subtotal = %s, want 40.00", runner.Subtotal)
	}
	derby, err := f.carts.AddItem(cart.ID, "p-derby", 1) // 180.00
	if err != nil {
		t.Fatal(err)
	}
	if !cartTotal(t, f, cart.ID).Equal(decimal.RequireFromString("220.00")) {
		t.Fatalf("total = %s, want 220.00", cartTotal(t, f, cart.ID))
	}

	// Bump the runner line to 5 units.
	if _, err := f.carts.UpdateItem(runner.ID, 5, "p-runner", cart.ID); err != nil {
		t.Fatal(err)
	}
	if !cartTotal(t, f, cart.ID).Equal(decimal.RequireFromString("280.00")) {
		t.Fatalf("total = %s, want 280.00", cartTotal(t, f, cart.ID))
	}

	if err := f.carts.RemoveItem(derby.ID); err != nil {
		t.Fatal(err)
	}
	if !cartTotal(t, f, cart.ID).Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("total = %s, want 100.00", cartTotal(t, f, cart.ID))
	}
}

func TestAddItemStockBoundary(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	// 5 units on hand: asking for all 5 is fine, 6 is not.
	if _, err := f.carts.AddItem(cart.ID, "p-runner", 5); err != nil {
		t.Fatal(err)
	}
	_, err = f.carts.AddItem(cart.ID, "p-runner", 6)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("error = %v, want ErrOutOfStock", err)
	}
}

func TestAddItemRejectsBadQty(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	for _, qty := range []int{0, -3} {
		if _, err := f.carts.AddItem(cart.ID, "p-runner", qty); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("qty %d: error = %v, want ErrInvalidArgument", qty, err)
		}
	}
}

func TestMoveItemBetweenCarts(t *testing.T) {
	f := newFixture(t)

	src, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	dst, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	it, err := f.carts.AddItem(src.ID, "p-runner", 2)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.carts.UpdateItem(it.ID, 2, "p-runner", dst.ID); err != nil {
		t.Fatal(err)
	}
	if !cartTotal(t, f, src.ID).IsZero() {
		t.Fatal("source cart total not re-summed to zero")
	}
	if !cartTotal(t, f, dst.ID).Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("dest total = %s, want 40.00", cartTotal(t, f, dst.ID))
	}
}

func TestPurchasedCartIsFrozen(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	it, err := f.carts.AddItem(cart.ID, "p-runner", 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.Purchase(cart.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.carts.AddItem(cart.ID, "p-runner", 1); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("add: error = %v, want ErrCartPurchased", err)
	}
	if _, err := f.carts.UpdateItem(it.ID, 2, "p-runner", cart.ID); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("update: error = %v, want ErrCartPurchased", err)
	}
	if err := f.carts.RemoveItem(it.ID); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("remove: error = %v, want ErrCartPurchased", err)
	}
	if _, err := f.carts.Reassign(cart.ID, "c-ana"); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("reassign: error = %v, want ErrCartPurchased", err)
	}
	if err := f.carts.Delete(cart.ID); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("delete: error = %v, want ErrCartPurchased", err)
	}
}

// A checkout can commit between a mutation's open-check and its row write.
// The write statements themselves carry the open-cart guard, so replaying
// just the tail of a mutation against a now-terminal cart changes nothing.
func TestItemWritesRefuseTerminalCart(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	it, err := f.carts.AddItem(cart.ID, "p-runner", 1)
	if err != nil {
		t.Fatal(err)
	}
	flipped, err := repos.MarkPurchased(f.db, cart.ID)
	if err != nil || !flipped {
		t.Fatalf("flip = %v, %v", flipped, err)
	}

	stray := domain.CartItem{
		ID: "it-stray", CartID: cart.ID, ProductID: "p-derby",
		Qty: 1, Subtotal: decimal.RequireFromString("180.00"),
	}
	if err := repos.InsertItem(f.db, stray); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("insert: error = %v, want ErrCartPurchased", err)
	}
	it.Qty = 5
	if err := repos.UpdateItem(f.db, it); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("update: error = %v, want ErrCartPurchased", err)
	}
	if err := repos.DeleteItem(f.db, it.ID); !errors.Is(err, domain.ErrCartPurchased) {
		t.Fatalf("delete: error = %v, want ErrCartPurchased", err)
	}

	items, err := f.carts.ItemsByCart(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Qty != 1 {
		t.Fatalf("cart rows changed after flip: %+v", items)
	}
	if !cartTotal(t, f, cart.ID).Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("total = %s, want 20.00", cartTotal(t, f, cart.ID))
	}
}

func TestCreateCartUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.carts.Create("nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCartCascadesItems(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Create("c-ana")
	if err != nil {
		t.Fatal(err)
	}
	it, err := f.carts.AddItem(cart.ID, "p-runner", 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Delete(cart.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.carts.Item(it.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("item survived cart delete: %v", err)
	}
}
