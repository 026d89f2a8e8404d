// Package config provides configuration management for geotree.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (via godotenv). Defaults come from `default` struct tags on
// the partial configurations.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket for snapshots
//   - Log: logging level and format
//   - Taxonomy: vocabulary id, default langcode and configured languages
//   - Source: remote dataset URL and timeout
//   - Snapshot: whether fetched documents are archived, and where
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Source.URL)
package config
