// Package matcher extracts language tokens from URL components with ordered
// regular expressions.
//
// A [Matcher] targets one [URLPart]. Each of its patterns must declare a
// capture group named "lang", either as (?<lang>...) or (?P<lang>...), and
// must match the whole component string. The captured token is looked up in
// a [mapping.Table]; a token that is not in the table does not stop
// evaluation.
//
// Matchers are definitions. Inside a profile they are bound to a concrete
// table with [Matcher.Resolve], which never modifies the definition.
package matcher
