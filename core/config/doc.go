// Package config provides configuration management for the patron importer.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Service: remote identity service URL, tenant and credentials
//   - Import: page size, worker count and rate limit for the pipeline
//   - Storage: S3/MinIO credentials for the optional object input source
//   - Log: logging level and format
//   - Database: optional MySQL run journal
//   - Server: HTTP service mode settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Service.URL)
package config
