// Package tree defines the structured token representation the generators
// operate on: identifiers, literals, punctuation, and delimited groups that
// own nested streams of the same four kinds.
//
// Invariants:
//   - A Group exclusively owns its inner Stream; the source representation is
//     tree-shaped by construction, so no sharing or cycles are possible.
//   - Every node carries the source.Span of the tokens it was built from;
//     rewrites preserve the original spans so diagnostics always underline
//     real source text.
//   - Expansion never mutates an input Stream; every rewrite produces a new
//     Stream.
package tree
