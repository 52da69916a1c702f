// Package driven defines the outbound port interfaces consumed by core
// services: storage, indexes, and collaborator capabilities. Adapters
// implement these interfaces.
package driven
