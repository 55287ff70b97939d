// Package profile selects the rule set that applies to a host.
//
// A profile matches hosts with a list of case-insensitive domain patterns,
// optionally narrowed by a CEL condition over the whole URL. It binds an
// ordered list of matchers to mapping tables, choosing each mapping by
// precedence: the matcher reference, then the profile, then the matcher's
// own default.
package profile
