package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ventas/internal/domain"
	"ventas/internal/services"
)

func TestCatalogCRUD(t *testing.T) {
	f := newFixture(t)

	created, err := f.catalog.Create(services.ProductInput{
		Name:     "Sala Futbol Pro",
		Price:    decimal.RequireFromString("99.50"),
		Units:    10,
		Gender:   "U",
		Category: "FUTBOL",
		Brand:    "Adidas",
		Size:     "39",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Size != "T39" {
		t.Fatalf("size = %q, want T39", created.Size)
	}

	got, err := f.catalog.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Price.Equal(created.Price) || got.Units != 10 {
		t.Fatalf("got %+v", got)
	}

	if _, err := f.catalog.Update(created.ID, services.ProductInput{
		Name: created.Name, Price: created.Price, Units: 0,
		Gender: "U", Category: "FUTBOL", Brand: created.Brand, Size: "39",
	}); err != nil {
		t.Fatal(err)
	}
	ok, err := f.catalog.IsAvailable(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("zero units reported available")
	}

	if err := f.catalog.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.catalog.Get(created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if err := f.catalog.Delete(created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: error = %v, want ErrNotFound", err)
	}
}

func TestCatalogRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	base := services.ProductInput{
		Name: "X", Price: decimal.NewFromInt(10), Units: 1,
		Gender: "U", Category: "CASUAL", Size: "38",
	}

	bad := base
	bad.Price = decimal.NewFromInt(-1)
	if _, err := f.catalog.Create(bad); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("negative price: %v", err)
	}

	bad = base
	bad.Units = -5
	if _, err := f.catalog.Create(bad); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("negative units: %v", err)
	}

	bad = base
	bad.Category = "SANDALIA"
	if _, err := f.catalog.Create(bad); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("unknown category: %v", err)
	}

	bad = base
	bad.Size = "44"
	if _, err := f.catalog.Create(bad); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("out-of-range size: %v", err)
	}
}

func TestCatalogFilters(t *testing.T) {
	f := newFixture(t)

	byCat, err := f.catalog.ByCategory("RUNNING")
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat) != 1 || byCat[0].ID != "p-runner" {
		t.Fatalf("ByCategory = %+v", byCat)
	}

	byGender, err := f.catalog.ByGender("M")
	if err != nil {
		t.Fatal(err)
	}
	if len(byGender) != 1 || byGender[0].ID != "p-derby" {
		t.Fatalf("ByGender = %+v", byGender)
	}

	bySize, err := f.catalog.BySize("40")
	if err != nil {
		t.Fatal(err)
	}
	if len(bySize) != 1 || bySize[0].ID != "p-derby" {
		t.Fatalf("BySize = %+v", bySize)
	}

	if _, err := f.catalog.ByCategory("nope"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("bad category filter: %v", err)
	}
}

func TestReserveCheckIsAdvisory(t *testing.T) {
	f := newFixture(t)

	ok, err := f.catalog.ReserveCheck("p-runner", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("qty == units should pass")
	}
	ok, err = f.catalog.ReserveCheck("p-runner", 6)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("qty > units should fail")
	}

	// Nothing is held: units are untouched by the check.
	if n := f.units(t, "p-runner"); n != 5 {
		t.Fatalf("units = %d", n)
	}
}
