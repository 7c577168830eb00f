package repos

import (
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every pooled connection to ":memory:" would get its own empty database,
	// so the pool must stay on a single connection for that DSN.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (products/inventory/discounts)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure customers exist (idempotent; safe to run every start)
	if err := seedCustomers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  sizes_json TEXT,
  image TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

-- Inventory: one row per product, stock never below zero
CREATE TABLE IF NOT EXISTS inventory(
  product_id TEXT PRIMARY KEY REFERENCES products(id) ON DELETE CASCADE,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  updated_at TEXT
);

-- Discounts
CREATE TABLE IF NOT EXISTS discounts(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  percentage NUMERIC NOT NULL CHECK (percentage > 0 AND percentage <= 100),
  valid_from TEXT NOT NULL,
  valid_until TEXT NOT NULL,
  remaining_uses INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_discounts_code ON discounts(UPPER(code));

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers(id),
  order_date TEXT DEFAULT CURRENT_TIMESTAMP,
  total_amount NUMERIC NOT NULL,
  discount_id TEXT REFERENCES discounts(id),
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  final_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  idempotency_key TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_idem ON orders(idempotency_key) WHERE idempotency_key IS NOT NULL;

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL,
  total_price NUMERIC NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (order_id, product_id, size)
);

-- Payments: one per order
CREATE TABLE IF NOT EXISTS payments(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
  method TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  card_number TEXT NOT NULL DEFAULT '',   -- masked, last four digits only
  exp_date TEXT NOT NULL DEFAULT '',
  card_holder TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Bills: derived, one per payment
CREATE TABLE IF NOT EXISTS bills(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
  payment_id TEXT NOT NULL REFERENCES payments(id),
  bill_date TEXT DEFAULT CURRENT_TIMESTAMP,
  total_amount NUMERIC NOT NULL
);

-- Shipments
CREATE TABLE IF NOT EXISTS shipments(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
  address TEXT NOT NULL,
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  postal_code TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  tracking_number TEXT NOT NULL UNIQUE,
  shipping_date TEXT DEFAULT CURRENT_TIMESTAMP,
  status TEXT NOT NULL DEFAULT 'PROCESSING'
);

-- Customers & Sessions
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- the bearer token value
  customer_id TEXT NULL REFERENCES customers(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_customer ON sessions(customer_id);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS wishlist_items(
  wishlist_id TEXT NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at TEXT,
  PRIMARY KEY (wishlist_id, product_id)
);

-- Chat transcripts
CREATE TABLE IF NOT EXISTS chat_sessions(
  session_id TEXT PRIMARY KEY,
  customer_email TEXT NOT NULL DEFAULT '',
  session_type TEXT NOT NULL DEFAULT 'customer',
  first_message_at TEXT,
  last_message_at TEXT,
  total_messages INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chat_messages(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL REFERENCES chat_sessions(session_id) ON DELETE CASCADE,
  sender TEXT NOT NULL CHECK (sender IN ('user','bot','admin','admin_bot')),
  message TEXT NOT NULL,
  intent TEXT NOT NULL DEFAULT '',
  confidence REAL NOT NULL DEFAULT 0,
  current_page TEXT NOT NULL DEFAULT '',
  response_time_ms INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id, created_at);
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

	log.Println("[seed] inserting demo products/inventory/discounts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,type,description,price,sizes_json,image) VALUES
	  ('tee-classic','Classic Cotton Tee','T-Shirts','Soft everyday crew-neck tee',19.99,'["S","M","L","XL"]','products/tee-classic/main.jpg'),
	  ('hoodie-zip','Zip Hoodie','Hoodies','Mid-weight fleece hoodie with front zip',49.50,'["S","M","L"]','products/hoodie-zip/main.jpg'),
	  ('jeans-slim','Slim Fit Jeans','Jeans','Stretch denim, slim cut',64.00,'["30","32","34","36"]','products/jeans-slim/main.jpg'),
	  ('sneaker-retro','Retro Sneakers','Shoes','Low-top retro runners',89.00,'["8","9","10","11"]','products/sneaker-retro/main.jpg')`)

	tx.MustExec(`INSERT INTO inventory(product_id,stock_quantity) VALUES
	  ('tee-classic',40),
	  ('hoodie-zip',12),
	  ('jeans-slim',0),
	  ('sneaker-retro',7)`)

	now := time.Now().UTC()
	tx.MustExec(`INSERT INTO discounts(id,code,percentage,valid_from,valid_until,remaining_uses) VALUES
	  ('d-save10','SAVE10',10,?,?,100),
	  ('d-spring20','SPRING20',20,?,?,25)`,
		now.AddDate(0, 0, -1).Format(time.RFC3339), now.AddDate(0, 3, 0).Format(time.RFC3339),
		now.AddDate(0, 0, -7).Format(time.RFC3339), now.AddDate(0, 1, 0).Format(time.RFC3339))

	return tx.Commit()
}

// seedCustomers ensures two USERs and one ADMIN exist (idempotent).
func seedCustomers(db *sqlx.DB) error {
	type cu struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) cu {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return cu{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	customers := []cu{
		mk("c-alice", "alice@webstore.test", "Alice", "USER", "Passw0rd!"),
		mk("c-bob", "bob@webstore.test", "Bob", "USER", "Passw0rd!"),
		mk("c-admin", "admin@webstore.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range customers {
		if _, err := tx.Exec(`
			INSERT INTO customers(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
