// Package driving defines the interfaces through which external actors
// drive the core (the "primary" ports in hexagonal architecture).
// The CLI and MCP adapters call these; core services implement them.
package driving
