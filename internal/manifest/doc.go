// Package manifest validates registry artifacts against the embedded JSON
// Schemas for registry items and the registry index. It works on raw JSON
// bytes so both the builder (before writing) and tooling that inspects
// published files can share one gate.
package manifest
