package repos

import (
	"ventas/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const customerCols = `id, username, password_hash, first_names, last_names,
	  document_type, document_number, birth_date`

func (r *UserRepo) Customers() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `SELECT `+customerCols+` FROM customers ORDER BY id`)
	return out, err
}

func (r *UserRepo) CustomerByID(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

// CustomerByUsername is a case-sensitive exact match; usernames carry a
// UNIQUE index so at most one row can answer.
func (r *UserRepo) CustomerByUsername(username string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE username = ?`, username)
	return c, err
}

func (r *UserRepo) InsertCustomer(c domain.Customer) error {
	_, err := r.db.Exec(`
	  INSERT INTO customers(id, username, password_hash, first_names, last_names, document_type, document_number, birth_date)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Username, c.Hash, c.FirstNames, c.LastNames, c.DocumentType, c.DocumentNumber, c.BirthDate)
	return err
}

// UpdateCustomer rewrites profile fields. The password hash has its own
// path (SetCustomerHash) so profile edits can never clobber credentials.
func (r *UserRepo) UpdateCustomer(c domain.Customer) error {
	res, err := r.db.Exec(`
	  UPDATE customers
	  SET username = ?, first_names = ?, last_names = ?, document_type = ?, document_number = ?, birth_date = ?
	  WHERE id = ?
	`, c.Username, c.FirstNames, c.LastNames, c.DocumentType, c.DocumentNumber, c.BirthDate, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) SetCustomerHash(id, hash string) error {
	res, err := r.db.Exec(`UPDATE customers SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SwapCustomerHash replaces the hash only while it still matches the value
// the caller verified against. Of two racing changes exactly one row flips;
// the loser sees stale credentials.
func (r *UserRepo) SwapCustomerHash(id, oldHash, newHash string) error {
	res, err := r.db.Exec(`UPDATE customers SET password_hash = ? WHERE id = ? AND password_hash = ?`, newHash, id, oldHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBadCreds
	}
	return nil
}

func (r *UserRepo) DeleteCustomer(id string) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---------- Administrators ----------

func (r *UserRepo) Admins() ([]domain.Admin, error) {
	var out []domain.Admin
	err := r.db.Select(&out, `SELECT id, username, password_hash FROM admins ORDER BY id`)
	return out, err
}

func (r *UserRepo) AdminByID(id string) (domain.Admin, error) {
	var a domain.Admin
	err := r.db.Get(&a, `SELECT id, username, password_hash FROM admins WHERE id = ?`, id)
	return a, err
}

func (r *UserRepo) AdminByUsername(username string) (domain.Admin, error) {
	var a domain.Admin
	err := r.db.Get(&a, `SELECT id, username, password_hash FROM admins WHERE username = ?`, username)
	return a, err
}

func (r *UserRepo) InsertAdmin(a domain.Admin) error {
	_, err := r.db.Exec(`INSERT INTO admins(id, username, password_hash) VALUES(?, ?, ?)`,
		a.ID, a.Username, a.Hash)
	return err
}

func (r *UserRepo) SetAdminHash(id, hash string) error {
	res, err := r.db.Exec(`UPDATE admins SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) SwapAdminHash(id, oldHash, newHash string) error {
	res, err := r.db.Exec(`UPDATE admins SET password_hash = ? WHERE id = ? AND password_hash = ?`, newHash, id, oldHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBadCreds
	}
	return nil
}

func (r *UserRepo) DeleteAdmin(id string) error {
	res, err := r.db.Exec(`DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
