// Package installer copies registry items into a project. It resolves
// registry dependencies depth-first so shared pieces land before the items
// that need them, merges shared utility files binding by binding instead of
// overwriting them, and hands external packages to the project's package
// manager.
package installer
