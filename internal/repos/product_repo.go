package repos

import (
	"database/sql"
	"errors"

	"ventas/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, COALESCE(image,'') AS image, COALESCE(description,'') AS description,
	  units, gender, category, COALESCE(brand,'') AS brand, size, COALESCE(created_at,'') AS created_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC, id`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ByName(name string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE LOWER(name) = LOWER(?) ORDER BY id`, name)
	return out, err
}

func (r *ProductRepo) ByCategory(c domain.Category) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE category = ? ORDER BY id`, c)
	return out, err
}

func (r *ProductRepo) ByGender(g domain.Gender) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE gender = ? ORDER BY id`, g)
	return out, err
}

func (r *ProductRepo) BySize(s domain.Size) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE size = ? ORDER BY id`, s)
	return out, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,price,image,description,units,gender,category,brand,size)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.Name, p.Price, p.Image, p.Description, p.Units, p.Gender, p.Category, p.Brand, p.Size)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, price=?, image=?, description=?, units=?, gender=?, category=?, brand=?, size=?
	  WHERE id=?
	`, p.Name, p.Price, p.Image, p.Description, p.Units, p.Gender, p.Category, p.Brand, p.Size, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Decrement(productID string, by int) error {
	return Decrement(r.db, productID, by)
}

// Decrement subtracts units atomically on any executor, so checkout can run
// it inside its own transaction. The guard keeps stock from ever going
// negative: zero rows affected means a concurrent buyer won the units, and
// the caller must abort. A missing product id reports NotFound, not
// OutOfStock.
func Decrement(e sqlx.Ext, productID string, by int) error {
	res, err := e.Exec(`
		UPDATE products
		SET units = units - ?
		WHERE id = ? AND units >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var units int
		err := sqlx.Get(e, &units, `SELECT units FROM products WHERE id = ?`, productID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return domain.ErrOutOfStock
	}
	return nil
}
