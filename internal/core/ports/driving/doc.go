// Package driving defines the inbound port interfaces through which
// adapters (CLI, MCP) invoke core services.
package driving
