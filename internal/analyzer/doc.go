// Package analyzer infers dependency sets and metadata from component source
// text without executing or fully parsing it. Everything here is pattern
// matching over text: ExtractImports and ExtractBinding are the narrow entry
// points the rest of the module relies on, so a real parser can replace them
// without touching callers.
package analyzer
