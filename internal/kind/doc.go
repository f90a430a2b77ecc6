// Package kind is the catalog of syntax kinds shared by the green and red trees.
// Invariants:
//   - every token kind in [FirstWellKnownText, LastWellKnownText] has a fixed
//     spelling returned by Text (possibly empty, e.g. EndOfFileToken);
//   - contextual keywords never appear as a token's primary kind from the
//     lexer; they ride along as the contextual kind of an identifier;
//   - List is the only kind used for list nodes of any arity.
package kind
