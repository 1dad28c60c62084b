package normalize

import (
	"strings"

	"licensee-matcher/core/table"
)

// Address holds the fields decomposed from a one-line address.
type Address struct {
	Suburb   table.Value
	State    table.Value
	PostCode table.Value
}

// ParseAddress decomposes "street, suburb, STATE postcode".
//
// The address is split on commas. The suburb is the second-to-last segment.
// The last segment is split on whitespace: its first token is the state and
// its last token the post code, the latter only when there is more than one
// token. An empty last segment gives an empty state. Segments missing for lack of commas leave their fields null; a null
// address yields an all-null Address.
func ParseAddress(address table.Value) Address {
	if !address.Valid {
		return Address{}
	}
	parts := strings.Split(strings.TrimSpace(address.Str), ",")

	var a Address
	if len(parts) >= 2 {
		a.Suburb = table.Str(strings.TrimSpace(parts[len(parts)-2]))
	}
	tokens := strings.Fields(parts[len(parts)-1])
	if len(tokens) == 0 {
		a.State = table.Str("")
		return a
	}
	a.State = table.Str(tokens[0])
	if len(tokens) > 1 {
		a.PostCode = table.Str(tokens[len(tokens)-1])
	}
	return a
}

// ParseAddresses applies ParseAddress positionally.
func ParseAddresses(addresses []table.Value) []Address {
	out := make([]Address, len(addresses))
	for i, a := range addresses {
		out[i] = ParseAddress(a)
	}
	return out
}
