// Package client fetches published registry artifacts, either from a remote
// base URL over HTTP or from a local mirror of the build output. Artifacts
// are trusted as published: they are decoded but not re-validated.
package client
