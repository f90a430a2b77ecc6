// Package red provides the position-aware, parent-linked view over a green
// tree.
//
// A red Node is created the first time a client navigates into its slot and
// is cached in the parent, so identity is stable: asking twice for the same
// child returns the same *Node, even when two goroutines race (the slot is
// published with compare-and-set). Tokens and trivia are plain values built on
// demand; they carry their position and the node that holds them.
//
// Lists are transparent in navigation: elements of a list report the list's
// owner as Parent. Very long lists directly under a Block cache their elements
// weakly so that walking a big file does not keep every statement alive.
//
// Structured trivia (directives, skipped tokens) is reached through
// Trivia.Structure. The structure root has no Parent; a process-wide table
// keyed weakly by the node holding the token keeps its identity stable, with
// one lock per owning node.
package red
