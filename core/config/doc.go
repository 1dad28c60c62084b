// Package config provides configuration management for the licensee matcher.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults declared in the `default` struct tag of every section.
// Nested keys map to upper-case variables joined by underscores, so
// match.chunk_size is read from MATCH_CHUNK_SIZE.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and the dataset bucket
//   - Log: level, format and output sinks
//   - Database: optional run history connection
//   - Match: input dataset names, output prefixes, storage backend and pipeline tuning
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Match.ReportName)
package config
