package normalize

import "licensee-matcher/core/table"

// Canonical field names shared by both sources.
const (
	FieldLicenseNumber = "license_number"
	FieldLicensee      = "licensee"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldSuburb        = "suburb"
	FieldState         = "state"
	FieldPostCode      = "post_code"
)

// Native column labels used by the licensing dataset.
const (
	LabelLicenseNumber = "Licence Number"
	LabelLicensee      = "Licensee"
	LabelFirstName     = "First Name"
	LabelLastName      = "Last Name"
	LabelPostCode      = "Postcode"
	LabelSuburb        = "Suburb"
	LabelState         = "State"
	LabelAddress       = "Address"
)

// AddressFields are the fields derived from a free-text address.
var AddressFields = []string{FieldSuburb, FieldState, FieldPostCode}

// DerivedFields are always present on a normalized record, possibly null.
var DerivedFields = []string{FieldFirstName, FieldLastName, FieldSuburb, FieldState, FieldPostCode}

// OutputHeader is the preferred column order of written result sets.
var OutputHeader = []string{
	"licensee", "state", "suburb", "license_is_valid", "license_date",
	"license_number", "first_name", "last_name", "post_code", "created_at", "updated_at",
	"licence_status", "licence_type", "licence_id", "classes", "class_names", "history", "expiring",
}

// IsAddressField reports whether name is one of the address fields.
func IsAddressField(name string) bool {
	for _, f := range AddressFields {
		if f == name {
			return true
		}
	}
	return false
}

// EnsureFields returns a copy of t where every derived field exists,
// adding null text columns for those that are missing.
func EnsureFields(t *table.Table) *table.Table {
	out := t
	for _, f := range DerivedFields {
		if out.Has(f) {
			continue
		}
		out = set(out, table.Column{Name: f, Kind: table.Text}, make([]table.Value, out.Len()))
	}
	if out == t {
		return t.Clone()
	}
	return out
}
