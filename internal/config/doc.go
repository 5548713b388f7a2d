// Package config provides runtime configuration for savelinks.
//
// Configuration is assembled in three stages, later stages taking precedence:
//
//  1. LoadDefaults: built-in defaults rooted at ~/.savelinks.
//  2. A YAML (.yaml, .yml) or JSON (.json) file. ${VAR} references are
//     expanded from the environment before parsing.
//  3. Overrides supplied by the caller, typically command-line flags.
//
// The merged result is validated before it is returned.
//
// Example YAML:
//
//	storage:
//	  driver: sqlite
//	  dsn: ~/.savelinks/savelinks.db
//	security:
//	  kdf: pbkdf2-sha256
//	  iterations: 210000
//	  cipher: aes-256-gcm
//	log:
//	  level: info
//	  file: ~/.savelinks/app.log
//	search:
//	  workers: 4
package config
