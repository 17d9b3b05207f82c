package services_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"ventas/internal/repos"
	"ventas/internal/services"
)

// Live schema shape plus a couple of seeded rows the scenario tests share.
const testSchema = `
CREATE TABLE products(id TEXT PRIMARY KEY, name TEXT, price NUMERIC, image TEXT, description TEXT,
  units INTEGER CHECK (units >= 0), gender TEXT, category TEXT, brand TEXT, size TEXT, created_at TEXT);
CREATE TABLE customers(id TEXT PRIMARY KEY, username TEXT UNIQUE, password_hash TEXT,
  first_names TEXT, last_names TEXT, document_type TEXT, document_number TEXT, birth_date TEXT);
CREATE TABLE admins(id TEXT PRIMARY KEY, username TEXT UNIQUE, password_hash TEXT);
CREATE TABLE orders(id TEXT PRIMARY KEY, cart_id TEXT, order_date TEXT, customer_name TEXT, total NUMERIC);
CREATE TABLE carts(id TEXT PRIMARY KEY, customer_id TEXT REFERENCES customers(id),
  total NUMERIC DEFAULT 0, purchased INTEGER DEFAULT 0, order_id TEXT);
CREATE TABLE cart_items(id TEXT PRIMARY KEY, cart_id TEXT REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT REFERENCES products(id), qty INTEGER CHECK (qty >= 1), subtotal NUMERIC);

INSERT INTO products(id,name,price,units,gender,category,brand,size,created_at)
  VALUES ('p-runner','Air Runner','20.00',5,'U','RUNNING','Nike','T38','2024-01-01'),
         ('p-derby','Clasico Cuero','180.00',2,'M','FORMAL','Bosi','T40','2024-01-02');
INSERT INTO customers(id,username,password_hash,first_names,last_names,document_type,document_number,birth_date)
  VALUES ('c-ana','ana.g','x','Ana Maria','Gomez Diaz','CC','1020304050','1995-06-15');
`

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatal(err)
	}
	// One connection, or each pooled conn would see its own empty :memory: DB.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatal(err)
	}
	return db
}

// filedb backs the store with a real file so tests can drive concurrent
// transactions across pooled connections, locking included.
func filedb(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "ventas.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatal(err)
	}
	return db
}

type fixture struct {
	db       *sqlx.DB
	carts    *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	catalog  *services.CatalogService
}

func fixtureOn(db *sqlx.DB) fixture {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)
	return fixture{
		db:       db,
		carts:    services.NewCartService(db, cartRepo, prodRepo, userRepo),
		checkout: services.NewCheckoutService(db),
		orders:   services.NewOrderService(orderRepo, cartRepo, userRepo),
		catalog:  services.NewCatalogService(prodRepo),
	}
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return fixtureOn(memdb(t))
}

func newFileFixture(t *testing.T) fixture {
	t.Helper()
	return fixtureOn(filedb(t))
}

func (f fixture) units(t *testing.T, productID string) int {
	t.Helper()
	var n int
	if err := f.db.Get(&n, `SELECT units FROM products WHERE id = ?`, productID); err != nil {
		t.Fatal(err)
	}
	return n
}
