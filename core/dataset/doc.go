// Package dataset stores the delimited tables a match run reads and writes.
//
// A Store is either a directory on the local filesystem (LocalStore) or a
// bucket in object storage (ObjectStore). Dataset names are slash-separated
// paths such as "result_cer_reinsw/1_match_cert_and_imis_with_license_number.csv".
//
// # Helpers
//
//   - Load reads a whole dataset into a table.
//   - Batches streams a dataset as a table.Source, reopening it for each pass.
//   - Save encodes a table and stores it.
//   - Count reports the number of records without holding them in memory.
//
// Cache keeps loaded tables for a TTL and collapses concurrent loads of the
// same name into one read.
package dataset
