package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// Pragmas go on the DSN so every pooled connection gets them. txlock
	// immediate makes every transaction a writer from BEGIN, so concurrent
	// mutations queue on busy_timeout instead of deadlocking on a read-to-
	// write upgrade.
	if !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog and accounts if DB is empty (idempotent)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products (stock lives on the product row)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT,
  description TEXT,
  units INTEGER NOT NULL DEFAULT 0 CHECK (units >= 0),
  gender TEXT NOT NULL CHECK (gender IN ('M','F','U')),
  category TEXT NOT NULL CHECK (category IN ('DEPORTIVO','CASUAL','RUNNING','FUTBOL','FORMAL')),
  brand TEXT,
  size TEXT NOT NULL CHECK (size IN ('T35','T36','T37','T38','T39','T40','T41','T42','T43')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_gender   ON products(gender);
CREATE INDEX IF NOT EXISTS idx_products_size     ON products(size);

-- Customers & administrators
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_names TEXT NOT NULL,
  last_names TEXT NOT NULL,
  document_type TEXT NOT NULL CHECK (document_type IN ('TI','CC','TE','CE','NIT','PP')),
  document_number TEXT NOT NULL,
  birth_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);

-- Orders (immutable snapshots; created only at checkout)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  order_date TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  total NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers(id),
  total NUMERIC NOT NULL DEFAULT 0,
  purchased INTEGER NOT NULL DEFAULT 0,
  order_id TEXT REFERENCES orders(id)
);
CREATE INDEX IF NOT EXISTS idx_carts_customer ON carts(customer_id);

CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  subtotal NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart    ON cart_items(cart_id);
CREATE INDEX IF NOT EXISTS idx_cart_items_product ON cart_items(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products and accounts")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO products(id,name,price,image,description,units,gender,category,brand,size) VALUES
	  ('air-run-38','Air Runner','219.90','products/air-run-38.jpg','Lightweight mesh runner',12,'U','RUNNING','Nike','T38'),
	  ('clasico-40','Clasico Cuero','180.00','products/clasico-40.jpg','Leather derby',8,'M','FORMAL','Bosi','T40'),
	  ('salon-39','Sala Futbol Pro','99.50','products/salon-39.jpg','Indoor soccer shoe',20,'U','FUTBOL','Adidas','T39'),
	  ('urbana-36','Urbana Lona','75.00','products/urbana-36.jpg','Canvas casual',15,'F','CASUAL','Converse','T36')`)

	mk := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}
	tx.MustExec(`INSERT INTO customers(id,username,password_hash,first_names,last_names,document_type,document_number,birth_date)
	  VALUES('c-maria','maria.p',?,'Maria Jose','Perez Gil','CC','1015987654','1998-04-17'),
	        ('c-juan','juan.r',?,'Juan David','Rojas Toro','TI','990112233','2006-09-02')`,
		mk("Cliente1!"), mk("Cliente2!"))
	tx.MustExec(`INSERT INTO admins(id,username,password_hash) VALUES('a-root','admin',?)`, mk("Admin123!"))

	return tx.Commit()
}
