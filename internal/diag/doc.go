// Package diag defines the diagnostic payload carried by syntax nodes.
//
// # Data model
//
// Diagnostic is position-free: Offset and Width are relative to the full span of
// the green node that carries it. A green node can therefore be shared between
// trees (and between positions in the same tree) without rewriting its
// diagnostics. The red tree rebases offsets to absolute positions when a client
// asks for them.
//
// Source problems (unterminated strings, stray delimiters, unknown directives)
// are never reported through panics or errors: producers attach them to the
// nearest token or node and consumers read them back recursively.
//
// Bag is a bounded collector of absolute diagnostics used by the driver and the
// CLI. It performs no formatting.
package diag
