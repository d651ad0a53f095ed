// Package scaffold generates new registry source files from embedded
// templates. It powers the "animkit create" command: the file lands in the
// registry tree under <framework>/<role>/ with doc-comment tags filled in,
// and is then assembled and validated the same way the builder would.
package scaffold
