// Package simid defines the opaque identifier newtypes shared by the
// simulation core. Every id is a plain string: equality and ordering are
// lexical, which is what the engine's deterministic iteration order relies
// on (see internal/engine).
package simid

// NodeID identifies a node in the solar system graph.
type NodeID string

// ShipID identifies a ship.
type ShipID string

// StationID identifies a station.
type StationID string

// SiteID identifies an undiscovered scan site.
type SiteID string

// AsteroidID identifies a discovered asteroid.
type AsteroidID string

// ModuleInstanceID identifies a station module instance.
type ModuleInstanceID string

// PrincipalID identifies the owner of a ship or command.
type PrincipalID string

// TechID identifies a research technology.
type TechID string

// ComponentID identifies a manufactured component kind.
type ComponentID string

// CommandID identifies a command envelope. Minted by command sources, never
// by the core (see DESIGN.md's open-question resolution).
type CommandID string

// EventID identifies an emitted event envelope. Minted by the core from
// Counters.NextEventID.
type EventID string
