// Package routes turns the declarative get_routes section into an immutable
// lookup table mapping request keys to (content type, absolute file path)
// pairs. The table is built once at startup and then shared read-only by all
// request handlers, so lookups need no locking. The normalization rules
// (which absolute paths get rewritten or dropped) and the reserved %direct
// key live here so they can be tested independently of config parsing and
// the HTTP transport.
package routes
