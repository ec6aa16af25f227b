// Package seq implements the sequence-expansion engine behind
//
//	seq(N in 0..3 { ... })
//
// A parsed header yields a Spec: binding identifier, integer range with
// optional inclusive bound, and a brace-delimited body. Expansion first
// scans the body for explicit #( ... )* section markers at any nesting
// depth; when found, only the marked sections are stamped out over the
// range. Without markers the whole body repeats once per index. Inside each
// stamped copy the binding identifier becomes the index literal and
// name~N splices into a single identifier nameK.
//
// Header failures abort the invocation with nothing produced. An invalid
// range (start > end) instead degrades to a compile_error payload embedded
// in otherwise complete output, so downstream consumers still see a
// structurally well-formed result.
//
// Expansion is a pure function of the Spec: no state survives a call, and
// the same inputs always produce the same output stream.
package seq
