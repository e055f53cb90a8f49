// Package worldgen models the host world-generation data the modification
// pipeline edits: biomes and their weather, effects, generation and spawn
// settings, plus the configured features, carvers, structures and surface
// builders they reference.
//
// Collections reachable from a Biome are frozen by convention: callers treat
// them as read-only and replace them wholesale through the BiomeAccess port.
// Configured objects are shared by pointer and compared by identity.
package worldgen
