// Package config provides configuration management for the bucket manager.
//
// It loads an optional .env file with godotenv and then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each section, and nested keys map to upper-case variables with dots
// replaced by underscores (storage.bucket -> STORAGE_BUCKET).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, shutdown timeout
//   - Storage: endpoint, credentials, region, TLS, timeout and the bucket name
//   - Log: level and format
//   - Database: optional audit journal connection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
