// Package currency defines the currency codes the bank operates in and
// their display metadata. MDL is the base currency: daily-limit math and
// cross-rate bridging are always expressed in it.
package currency

import (
	"regexp"
	"sort"
)

// Code represents an ISO 4217 currency code (e.g. "MDL", "EUR").
type Code string

// Supported currency codes.
const (
	MDL Code = "MDL"
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
	RON Code = "RON"
)

// Base is the currency all limits and cross rates are bridged through.
const Base = MDL

// Meta holds currency-specific display metadata.
type Meta struct {
	Decimals int
	Symbol   string
	Name     string
}

var supported = map[Code]Meta{
	MDL: {Decimals: 2, Symbol: "L", Name: "Moldovan Leu"},
	EUR: {Decimals: 2, Symbol: "€", Name: "Euro"},
	USD: {Decimals: 2, Symbol: "$", Name: "US Dollar"},
	GBP: {Decimals: 2, Symbol: "£", Name: "British Pound"},
	RON: {Decimals: 2, Symbol: "lei", Name: "Romanian Leu"},
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat reports whether s looks like an ISO 4217 code
// (three uppercase letters). It does not imply the code is supported.
func IsValidFormat(s string) bool {
	return codeFormat.MatchString(s)
}

// IsSupported reports whether the bank operates in the given currency.
func IsSupported(c Code) bool {
	_, ok := supported[c]
	return ok
}

// Get returns the metadata for a supported currency code.
func Get(c Code) (Meta, bool) {
	m, ok := supported[c]
	return m, ok
}

// All returns the supported currency codes in lexical order.
func All() []Code {
	codes := make([]Code, 0, len(supported))
	for c := range supported {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
