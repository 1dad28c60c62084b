package reconcile

import (
	"slices"

	"licensee-matcher/core/normalize"
)

// Tier is one exact-match join strategy.
type Tier struct {
	// Name identifies the tier's result set, e.g. "match_cert_and_imis_with_licensee".
	Name string

	// Shorthand names the tier in combined outputs, e.g. "lic".
	Shorthand string

	// Keys is the join key set. Every key must be equal on both sides.
	Keys []string

	// DedupAddress enables the address-tier treatment: both sides are
	// deduplicated on Keys and rows with a null key are dropped before the
	// join, then again after it.
	DedupAddress bool
}

// NewTier creates a tier. Address-bearing key sets get the dedup treatment.
func NewTier(name, shorthand string, keys ...string) Tier {
	return Tier{
		Name:         name,
		Shorthand:    shorthand,
		Keys:         keys,
		DedupAddress: slices.ContainsFunc(keys, normalize.IsAddressField),
	}
}

// Key sets in matching order. Tiers 1-4 build on the licence number, tiers
// 5-7 form the licence-free track.
var (
	KeysLicenseNumber = []string{
		normalize.FieldLicenseNumber,
	}
	KeysLicenseNumberLicensee = []string{
		normalize.FieldLicenseNumber, normalize.FieldLicensee,
	}
	KeysLicenseNumberLicenseeName = []string{
		normalize.FieldLicenseNumber, normalize.FieldLicensee, normalize.FieldFirstName, normalize.FieldLastName,
	}
	KeysLicenseNumberLicenseeNameAddress = []string{
		normalize.FieldLicenseNumber, normalize.FieldLicensee, normalize.FieldFirstName, normalize.FieldLastName,
		normalize.FieldSuburb, normalize.FieldState, normalize.FieldPostCode,
	}
	KeysLicensee = []string{
		normalize.FieldLicensee,
	}
	KeysLicenseeName = []string{
		normalize.FieldLicensee, normalize.FieldFirstName, normalize.FieldLastName,
	}
	KeysLicenseeNameAddress = []string{
		normalize.FieldLicensee, normalize.FieldFirstName, normalize.FieldLastName,
		normalize.FieldSuburb, normalize.FieldState, normalize.FieldPostCode,
	}
)

// Shorthands name the seven tiers in combined outputs.
var Shorthands = [7]string{
	"lic_num",
	"lic_num_lic",
	"lic_num_lic_lname_fname",
	"full_condition",
	"lic",
	"lic_lname_fname",
	"lic_lname_fname_address",
}

var keySets = [7][]string{
	KeysLicenseNumber,
	KeysLicenseNumberLicensee,
	KeysLicenseNumberLicenseeName,
	KeysLicenseNumberLicenseeNameAddress,
	KeysLicensee,
	KeysLicenseeName,
	KeysLicenseeNameAddress,
}

// Track pairs one licensing dataset with the authority report.
type Track struct {
	// Name is a short identifier, "cert" or "inv".
	Name string

	// Prefix is the output namespace for the track's result sets.
	Prefix string

	// Tiers are run in order.
	Tiers []Tier
}

// NewTrack builds a track from seven tier names in matching order.
func NewTrack(name, prefix string, tierNames [7]string) Track {
	tiers := make([]Tier, len(tierNames))
	for i, n := range tierNames {
		tiers[i] = NewTier(n, Shorthands[i], keySets[i]...)
	}
	return Track{Name: name, Prefix: prefix, Tiers: tiers}
}

// CertificateTrack matches the certificate dataset against the report.
func CertificateTrack(prefix string) Track {
	return NewTrack("cert", prefix, [7]string{
		"match_cert_and_imis_with_license_number",
		"match_cert_and_imis_with_license_number_and_licensee",
		"match_cert_and_imis_with_licence_number_licencee_fname_lname",
		"match_cert_and_imis_with_licence_number_licencee_fname_lname_address",
		"match_cert_and_imis_with_licensee",
		"match_cert_and_imis_licencee_fname_lname",
		"match_cert_and_imis_licencee_fname_lname_address",
	})
}

// IndividualTrack matches the individual dataset against the report.
func IndividualTrack(prefix string) Track {
	return NewTrack("inv", prefix, [7]string{
		"match_inv_and_imis_with_license_number",
		"match_inv_and_imis_with_license_number_and_license",
		"match_inv_and_imis_with_licence_number_licencee_fname_lname",
		"match_inv_and_imis_licence_number_licencee_fname_lname_address",
		"match_inv_and_imis_with_licensee",
		"match_inv_and_imis_with_licencee_fname_lname",
		"match_inv_and_imis_licencee_fname_lname_address",
	})
}
