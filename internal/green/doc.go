// Package green implements the immutable, position-free layer of the syntax
// tree.
//
// A green node knows its kind, its full width (text length including trivia),
// its children and a small flags word; it never knows its position or its
// parent, so one node can appear in many trees and many places. Every
// operation that "changes" a node returns a new one.
//
// Node categories:
//
//   - Branch: structural node with at most MaxBranchSlots slots; also used for
//     skipped-tokens trivia. DirectiveNode is the branch of a preprocessor
//     directive.
//   - lists: List() is nil, List(a) is a, then two-, three-, many- and
//     lots-of-children forms. The last precomputes slot offsets.
//   - Token: tiered variants that store only what they need. Well-known-text
//     kinds come from four singleton tables.
//   - Trivia: whitespace, comments, disabled text.
//
// Flags summarise a subtree (diagnostics, annotations, directives, skipped
// text, structured trivia, non-missing content) so that walks such as
// Directives or CollectDiagnostics skip irrelevant subtrees in O(1).
//
// Factory builds branches and lists through a Cache keyed by kind, child
// identity and Context. The cache never affects results, only sharing.
package green
