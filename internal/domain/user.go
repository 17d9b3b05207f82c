package domain

// Credentials is the shared authentication state of any principal. The hash
// is a bcrypt digest; plaintext is never stored and the hash never serializes.
type Credentials struct {
	Username string `db:"username" json:"username"`
	Hash     string `db:"password_hash" json:"-"`
}

type Customer struct {
	ID             string       `db:"id" json:"id"`
	FirstNames     string       `db:"first_names" json:"first_names"`
	LastNames      string       `db:"last_names" json:"last_names"`
	DocumentType   DocumentType `db:"document_type" json:"document_type"`
	DocumentNumber string       `db:"document_number" json:"document_number"`
	BirthDate      string       `db:"birth_date" json:"birth_date"` // YYYY-MM-DD
	Credentials
}

// FullName is the display name snapshotted onto orders.
func (c Customer) FullName() string { return c.FirstNames + " " + c.LastNames }

type Admin struct {
	ID string `db:"id" json:"id"`
	Credentials
}
