// Package config loads and validates the declarative TOML configuration
// file. Scalar keys (addr, failsafe_addrs, 404, log settings) go through
// viper so defaults and case-insensitive spelling behave the usual way; the
// get_routes section is re-read with go-toml because its keys are
// case-sensitive request paths and viper lowercases nested map keys. The
// resulting Config is built once at startup and never mutated afterwards.
package config
