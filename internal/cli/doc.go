// Package cli implements the animkit command-line interface using cobra.
// It wires user settings, the project config, the registry builder and the
// installer together: build, install (alias add), list, search, create,
// init, config, doctor and version.
package cli
