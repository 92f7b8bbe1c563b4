// Package domain contains the core entities and value objects for choromap.
//
// It has no dependencies on infrastructure concerns (file system, network,
// logging, rendering backends) beyond the geometry value type.
//
// # Entities
//
//   - [Row]: A single CSV record (country identifier plus numeric value)
//   - [ResolvedRow]: A Row whose identifier resolved to a canonical ISO3 code
//   - [Feature]: A country polygon joined with its value for rendering
//
// Entities are immutable after construction; the pipeline is a single
// forward pass and never mutates an entity once created.
package domain
