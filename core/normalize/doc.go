// Package normalize turns raw licensee records into comparable match keys.
//
// Both registries store people differently: the licensing dataset carries a
// free-text "Licensee" and a one-line "Address", while the authority report
// already has structured name and address columns. This package derives the
// structured fields from the free text and maps native column labels onto the
// shared lower-snake-case schema so rows from both sources can be joined on
// exact equality.
//
// # Field derivation
//
//   - SplitName: "Nannan Cheng" -> first "Nannan", last "Cheng".
//   - ParseAddress: "10 OXFORD ST, EPPING, NSW 2121" -> suburb "EPPING",
//     state "NSW", post code "2121".
//
// Malformed input never fails; it yields null fields, which simply never match
// in tiers that require them.
//
// # Usage
//
//	normalized := normalize.Preprocess(certificates)
//	report = normalize.EnsureFields(report)
package normalize
