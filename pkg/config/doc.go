// Package config loads service configuration from environment variables.
//
// Every setting has a PULSECHECK_-prefixed variable and a sensible default,
// so a bare `pulsecheck` starts a working server with the built-in device
// profile, an in-memory result cache and no history database.
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		// a validation failure names the offending setting
//	}
package config
