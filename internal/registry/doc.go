// Package registry builds the published registry from a source tree. It
// discovers framework directories, assembles one Item per source file,
// validates and writes each artifact, and aggregates the results into an
// index. The data model it defines is the contract the installer consumes.
package registry
