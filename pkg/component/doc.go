// Package component defines the lifecycle contract shared by every unit the
// Fabricator core hosts: initialize, tick, shut down, and report a name and a
// status. Leaf implementations live under pkg/components.
package component
