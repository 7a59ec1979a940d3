// Package config loads runtime configuration for the dadgen CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional env file (default dadgen.env) selected via flags: -c or -config.
//  3. Process environment variables.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-k string   temp-mail API key
//	-f string   accounts file path
//	-i int      verification-email poll interval (seconds)
//	-n int      verification-email poll attempts
//
// # Env file
//
// The env file is a plain KEY=VALUE file loaded with godotenv, e.g.:
//
//	TEMPMAIL_API_KEY=abc123
//	DADGEN_POLL_INTERVAL=2s
//	DADGEN_POLL_ATTEMPTS=150
//
// Durations accept Go duration strings. When the CLI prompts for a missing
// API key, the key is written back to this file (see SaveAPIKey).
package config
