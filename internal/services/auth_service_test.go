package services_test

import (
	"errors"
	"testing"

	"ventas/internal/domain"
	"ventas/internal/repos"
	"ventas/internal/services"
)

func authFixture(t *testing.T) (*services.AuthService, *services.UserService, *repos.UserRepo) {
	t.Helper()
	db := memdb(t)
	users := repos.NewUserRepo(db)
	return services.NewAuthService(users), services.NewUserService(users), users
}

func registerCarlos(t *testing.T, users *services.UserService, password string) domain.Customer {
	t.Helper()
	c, err := users.RegisterCustomer(services.CustomerInput{
		Username:       "carlos.m",
		FirstNames:     "Carlos",
		LastNames:      "Mejia",
		DocumentType:   "CC",
		DocumentNumber: "80123456",
		BirthDate:      "1990-01-20",
	}, password)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAuthenticateCustomer(t *testing.T) {
	auth, users, _ := authFixture(t)
	registerCarlos(t, users, "Secreta1!")

	got, err := auth.AuthenticateCustomer("carlos.m", "Secreta1!")
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "carlos.m" {
		t.Fatalf("username = %q", got.Username)
	}

	if _, err := auth.AuthenticateCustomer("carlos.m", "wrong"); !errors.Is(err, domain.ErrBadCreds) {
		t.Fatalf("wrong password: error = %v, want ErrBadCreds", err)
	}
	if _, err := auth.AuthenticateCustomer("nobody", "Secreta1!"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: error = %v, want ErrNotFound", err)
	}
	// Usernames match exactly, case included.
	if _, err := auth.AuthenticateCustomer("Carlos.M", "Secreta1!"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("case variant: error = %v, want ErrNotFound", err)
	}
}

func TestChangePasswordKeepsOldOnBadVerify(t *testing.T) {
	auth, users, _ := authFixture(t)
	c := registerCarlos(t, users, "Secreta1!")

	err := auth.ChangeCustomerPassword(c.ID, "not-the-old-one", "Nueva123")
	if !errors.Is(err, domain.ErrBadCreds) {
		t.Fatalf("error = %v, want ErrBadCreds", err)
	}
	// Old credential still works, new one does not.
	if _, err := auth.AuthenticateCustomer("carlos.m", "Secreta1!"); err != nil {
		t.Fatalf("old password rejected after failed change: %v", err)
	}
	if _, err := auth.AuthenticateCustomer("carlos.m", "Nueva123"); !errors.Is(err, domain.ErrBadCreds) {
		t.Fatalf("new password accepted after failed change: %v", err)
	}
}

func TestChangePasswordRotatesHash(t *testing.T) {
	auth, users, _ := authFixture(t)
	c := registerCarlos(t, users, "Secreta1!")

	if err := auth.ChangeCustomerPassword(c.ID, "Secreta1!", "Nueva123"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.AuthenticateCustomer("carlos.m", "Nueva123"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.AuthenticateCustomer("carlos.m", "Secreta1!"); !errors.Is(err, domain.ErrBadCreds) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

// Two racing password changes can both verify the same old hash; the
// guarded swap lets exactly one through.
func TestPasswordSwapGuardsOnVerifiedHash(t *testing.T) {
	auth, users, repo := authFixture(t)
	c := registerCarlos(t, users, "Secreta1!")

	stale, err := users.CustomerByID(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := auth.ChangeCustomerPassword(c.ID, "Secreta1!", "Nueva123"); err != nil {
		t.Fatal(err)
	}
	// A second change still holding the pre-rotation hash loses.
	if err := repo.SwapCustomerHash(c.ID, stale.Hash, "h-late"); !errors.Is(err, domain.ErrBadCreds) {
		t.Fatalf("stale swap: error = %v, want ErrBadCreds", err)
	}
	if _, err := auth.AuthenticateCustomer("carlos.m", "Nueva123"); err != nil {
		t.Fatalf("winning rotation clobbered: %v", err)
	}
}

func TestAdminCredentials(t *testing.T) {
	auth, users, _ := authFixture(t)
	a, err := users.RegisterAdmin("root", "Admin123!")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := auth.AuthenticateAdmin("root", "Admin123!"); err != nil {
		t.Fatal(err)
	}
	if err := auth.ChangeAdminPassword(a.ID, "Admin123!", "Rotada99"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.AuthenticateAdmin("root", "Rotada99"); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	_, users, _ := authFixture(t)
	registerCarlos(t, users, "Secreta1!")

	_, err := users.RegisterCustomer(services.CustomerInput{
		Username:       "carlos.m",
		FirstNames:     "Otro",
		LastNames:      "Carlos",
		DocumentType:   "CE",
		DocumentNumber: "99887766",
		BirthDate:      "1985-03-03",
	}, "Distinta1")
	if err == nil {
		t.Fatal("duplicate username accepted")
	}
}
