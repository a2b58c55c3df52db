// Package config provides configuration management for the Stream Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP admin server settings (port, API key)
//   - Database: MySQL connection details
//   - Log: Logging level and format
//   - Reconcile: batch size and ignored fields for fixup runs
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.BatchSize)
package config
