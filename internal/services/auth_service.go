package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/domain"
	"ventas/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost used for every stored credential.
const hashCost = 12

// AuthService is the credential store for both principal kinds. It owns
// hashing and verification; plaintext never leaves these functions.
type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

func hashPassword(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// verify compares in constant time via bcrypt; a mismatch and a malformed
// hash look the same to the caller.
func verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// AuthenticateCustomer resolves the username (case-sensitive exact match)
// and verifies the password.
func (s *AuthService) AuthenticateCustomer(username, password string) (domain.Customer, error) {
	c, err := s.Users.CustomerByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Customer{}, err
	}
	if !verify(c.Hash, password) {
		return domain.Customer{}, domain.ErrBadCreds
	}
	return c, nil
}

func (s *AuthService) AuthenticateAdmin(username, password string) (domain.Admin, error) {
	a, err := s.Users.AdminByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Admin{}, fmt.Errorf("admin %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Admin{}, err
	}
	if !verify(a.Hash, password) {
		return domain.Admin{}, domain.ErrBadCreds
	}
	return a, nil
}

func (s *AuthService) SetCustomerPassword(id, plaintext string) error {
	h, err := hashPassword(plaintext)
	if err != nil {
		return err
	}
	return s.Users.SetCustomerHash(id, h)
}

func (s *AuthService) SetAdminPassword(id, plaintext string) error {
	h, err := hashPassword(plaintext)
	if err != nil {
		return err
	}
	return s.Users.SetAdminHash(id, h)
}

// ChangeCustomerPassword replaces the hash only after the old password
// verifies; on failure the stored hash is untouched. The swap is guarded on
// the exact hash that verified, so of two racing changes only one wins and
// the other reports stale credentials.
func (s *AuthService) ChangeCustomerPassword(id, oldPlaintext, newPlaintext string) error {
	c, err := s.Users.CustomerByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !verify(c.Hash, oldPlaintext) {
		return domain.ErrBadCreds
	}
	h, err := hashPassword(newPlaintext)
	if err != nil {
		return err
	}
	return s.Users.SwapCustomerHash(id, c.Hash, h)
}

func (s *AuthService) ChangeAdminPassword(id, oldPlaintext, newPlaintext string) error {
	a, err := s.Users.AdminByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("admin %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !verify(a.Hash, oldPlaintext) {
		return domain.ErrBadCreds
	}
	h, err := hashPassword(newPlaintext)
	if err != nil {
		return err
	}
	return s.Users.SwapAdminHash(id, a.Hash, h)
}
