package compat

import "strings"

// vendorAlias maps a vendor fragment to the partner name used by the catalog.
type vendorAlias struct {
	fragment  string
	canonical string
}

// vendorAliases is checked in order; the first matching fragment wins.
var vendorAliases = []vendorAlias{
	{fragment: "dell", canonical: "Dell"},
	{fragment: "hp", canonical: "Hewlett Packard Enterprise"},
}

// notAssessed lists platforms without physical compatibility listings.
var notAssessed = []string{"vmware", "amazon"}

// Identity is the catalog lookup key of a model group.
type Identity struct {
	Vendor string
	Model  string
}

// SplitIdentity derives vendor and model from a model label: the first two
// words form the vendor candidate, the remaining words the model. Known
// vendors are replaced by their catalog partner name.
func SplitIdentity(label string) Identity {
	words := strings.Fields(label)
	n := min(2, len(words))

	vendor := strings.Join(words[:n], " ")
	model := strings.Join(words[n:], " ")

	lower := strings.ToLower(vendor)
	for _, alias := range vendorAliases {
		if strings.Contains(lower, alias.fragment) {
			vendor = alias.canonical
			break
		}
	}

	return Identity{Vendor: vendor, Model: model}
}

// IsNotAssessed reports whether hosts of the model label are virtual or
// cloud platforms that are never looked up.
func IsNotAssessed(label string) bool {
	lower := strings.ToLower(label)
	for _, fragment := range notAssessed {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
