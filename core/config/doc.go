// Package config provides configuration management for bucket-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP listen address and API key
//   - Storage: driver, endpoint, credentials, region, addressing and bucket
//   - Log: logging level and format
//   - Database: optional history journal connection
//   - Sync: local directory, prefix, workers and delete-missing default
//
// Environment keys are the upper-cased key path joined by underscores, so
// storage.access_key is read from STORAGE_ACCESS_KEY.
//
// # Bucket Directories
//
// A bucket directory may carry a credentials.toml with key_id, secret_key,
// endpoint_url and an optional region. LoadCredentials reads it and
// Credentials.Apply overlays it onto the storage section.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	creds, err := config.LoadCredentials(afero.NewOsFs(), bucketDir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	creds.Apply(&cfg.Storage)
package config
