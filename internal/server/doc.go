// Package server hosts the Fiber HTTP service and the startup-time network
// plumbing around it: the address fallback binder that turns the ordered
// candidate list into a listening socket, the one-shot 404 payload cache, and
// the catch-all handler that serves GET requests from the immutable route
// table. Everything here is built once during startup and then shared
// read-only by concurrent request handlers, so keep exports narrow and accept
// explicit dependencies.
package server
