package validate_test

import (
	"testing"

	"ventas/internal/validate"
)

func TestID(t *testing.T) {
	for _, s := range []string{"p-runner", "air-run-38", "A1_b2"} {
		if _, ok := validate.ID(s); !ok {
			t.Errorf("ID(%q) rejected", s)
		}
	}
	for _, s := range []string{"", "  ", "a b", "x/y", "ñ"} {
		if _, ok := validate.ID(s); ok {
			t.Errorf("ID(%q) accepted", s)
		}
	}
	if got, ok := validate.ID("  p-runner  "); !ok || got != "p-runner" {
		t.Errorf("ID trim = %q, %v", got, ok)
	}
}

func TestUsername(t *testing.T) {
	for _, s := range []string{"ana.g", "juan_r", "abc"} {
		if _, ok := validate.Username(s); !ok {
			t.Errorf("Username(%q) rejected", s)
		}
	}
	for _, s := range []string{"ab", "has space", "ana@mail"} {
		if _, ok := validate.Username(s); ok {
			t.Errorf("Username(%q) accepted", s)
		}
	}
}

func TestQty(t *testing.T) {
	if n, ok := validate.Qty("3"); !ok || n != 3 {
		t.Errorf("Qty(3) = %d, %v", n, ok)
	}
	for _, s := range []string{"0", "-1", "101", "x", ""} {
		if _, ok := validate.Qty(s); ok {
			t.Errorf("Qty(%q) accepted", s)
		}
	}
}

func TestDate(t *testing.T) {
	if got, ok := validate.Date("2026-08-28"); !ok || got != "2026-08-28" {
		t.Errorf("Date = %q, %v", got, ok)
	}
	for _, s := range []string{"28-08-2026", "2026-13-01", "2026-02-30", "today"} {
		if _, ok := validate.Date(s); ok {
			t.Errorf("Date(%q) accepted", s)
		}
	}
}

func TestPassword(t *testing.T) {
	for _, s := range []string{"Secreta1", "Admin123!", "aB3aB3aB"} {
		if !validate.Password(s) {
			t.Errorf("Password(%q) rejected", s)
		}
	}
	for _, s := range []string{"short1A", "alllowercase1", "ALLUPPER1", "NoDigitsHere"} {
		if validate.Password(s) {
			t.Errorf("Password(%q) accepted", s)
		}
	}
}
