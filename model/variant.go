package model

import "github.com/xh3b4sd/tracer"

// Variant is one of the fixed model structures the workflow fits.
type Variant int

const (
	// Gender regresses survival on a per sex intercept and a shared age slope.
	Gender Variant = iota
	// Class extends Gender by one slope for each of the second and third class
	// dummies, first class being the baseline.
	Class
	// Hierarchical extends Gender by one intercept offset per sex and class
	// cell, partially pooled through a shared scale.
	Hierarchical
)

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "gender":
		return Gender, nil
	case "class":
		return Class, nil
	case "hierarchical":
		return Hierarchical, nil
	}

	return 0, tracer.Maskf(invalidVariantError, "%q", s)
}

func (v Variant) String() string {
	switch v {
	case Gender:
		return "gender"
	case Class:
		return "class"
	case Hierarchical:
		return "hierarchical"
	}

	return "unknown"
}

// Variants returns all variants in fitting order.
func Variants() []Variant {
	return []Variant{Gender, Class, Hierarchical}
}
