package domain

import "fmt"

// Closed descriptive sets for products and customers. Stored as their string
// values; anything not in the set is rejected at parse time.

type Category string

const (
	CategorySport  Category = "DEPORTIVO"
	CategoryCasual Category = "CASUAL"
	CategoryRun    Category = "RUNNING"
	CategorySoccer Category = "FUTBOL"
	CategoryFormal Category = "FORMAL"
)

var categories = map[Category]bool{
	CategorySport: true, CategoryCasual: true, CategoryRun: true,
	CategorySoccer: true, CategoryFormal: true,
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !categories[c] {
		return "", fmt.Errorf("%w: category %q", ErrInvalidArgument, s)
	}
	return c, nil
}

type Gender string

const (
	GenderMen    Gender = "M"
	GenderWomen  Gender = "F"
	GenderUnisex Gender = "U"
)

func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderMen, GenderWomen, GenderUnisex:
		return g, nil
	}
	return "", fmt.Errorf("%w: gender %q", ErrInvalidArgument, s)
}

// Size is a shoe size. Stored as T35..T43 but parsed from the bare number,
// so ParseSize("38") yields "T38".
type Size string

var sizes = map[Size]bool{
	"T35": true, "T36": true, "T37": true, "T38": true, "T39": true,
	"T40": true, "T41": true, "T42": true, "T43": true,
}

func ParseSize(s string) (Size, error) {
	t := Size("T" + s)
	if !sizes[t] {
		return "", fmt.Errorf("%w: size %q", ErrInvalidArgument, s)
	}
	return t, nil
}

// DocumentType is the kind of identity document a customer registered with.
type DocumentType string

const (
	DocIdentityCard  DocumentType = "TI"
	DocCitizenID     DocumentType = "CC"
	DocForeignerCard DocumentType = "TE"
	DocForeignerID   DocumentType = "CE"
	DocTaxID         DocumentType = "NIT"
	DocPassport      DocumentType = "PP"
)

var documentTypes = map[DocumentType]bool{
	DocIdentityCard: true, DocCitizenID: true, DocForeignerCard: true,
	DocForeignerID: true, DocTaxID: true, DocPassport: true,
}

func ParseDocumentType(s string) (DocumentType, error) {
	d := DocumentType(s)
	if !documentTypes[d] {
		return "", fmt.Errorf("%w: document type %q", ErrInvalidArgument, s)
	}
	return d, nil
}
