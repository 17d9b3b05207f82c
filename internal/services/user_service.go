package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/domain"
	"ventas/internal/repos"

	"github.com/google/uuid"
)

// UserService owns principal registration and profile maintenance. Password
// verification and rotation live in AuthService.
type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

type CustomerInput struct {
	Username       string
	FirstNames     string
	LastNames      string
	DocumentType   string
	DocumentNumber string
	BirthDate      string
}

func (s *UserService) RegisterCustomer(in CustomerInput, password string) (domain.Customer, error) {
	docType, err := domain.ParseDocumentType(in.DocumentType)
	if err != nil {
		return domain.Customer{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return domain.Customer{}, err
	}
	c := domain.Customer{
		ID:             uuid.NewString(),
		FirstNames:     in.FirstNames,
		LastNames:      in.LastNames,
		DocumentType:   docType,
		DocumentNumber: in.DocumentNumber,
		BirthDate:      in.BirthDate,
		Credentials:    domain.Credentials{Username: in.Username, Hash: hash},
	}
	if err := s.Users.InsertCustomer(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

// UpdateCustomer rewrites profile fields; credentials are untouched.
func (s *UserService) UpdateCustomer(id string, in CustomerInput) (domain.Customer, error) {
	c, err := s.CustomerByID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	docType, err := domain.ParseDocumentType(in.DocumentType)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Username = in.Username
	c.FirstNames = in.FirstNames
	c.LastNames = in.LastNames
	c.DocumentType = docType
	c.DocumentNumber = in.DocumentNumber
	c.BirthDate = in.BirthDate
	if err := s.Users.UpdateCustomer(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *UserService) Customers() ([]domain.Customer, error) {
	return s.Users.Customers()
}

func (s *UserService) CustomerByID(id string) (domain.Customer, error) {
	c, err := s.Users.CustomerByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (s *UserService) CustomerByUsername(username string) (domain.Customer, error) {
	c, err := s.Users.CustomerByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %q: %w", username, domain.ErrNotFound)
	}
	return c, err
}

func (s *UserService) DeleteCustomer(id string) error {
	return s.Users.DeleteCustomer(id)
}

func (s *UserService) RegisterAdmin(username, password string) (domain.Admin, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.Admin{}, err
	}
	a := domain.Admin{
		ID:          uuid.NewString(),
		Credentials: domain.Credentials{Username: username, Hash: hash},
	}
	if err := s.Users.InsertAdmin(a); err != nil {
		return domain.Admin{}, err
	}
	return a, nil
}

func (s *UserService) Admins() ([]domain.Admin, error) {
	return s.Users.Admins()
}

func (s *UserService) AdminByID(id string) (domain.Admin, error) {
	a, err := s.Users.AdminByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Admin{}, fmt.Errorf("admin %s: %w", id, domain.ErrNotFound)
	}
	return a, err
}

func (s *UserService) DeleteAdmin(id string) error {
	return s.Users.DeleteAdmin(id)
}
