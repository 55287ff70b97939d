// Package locale provides the canonical language identifier produced by
// detection, along with the locale catalog used to generate built-in
// mappings.
//
// A [Language] can only be obtained by canonicalizing a BCP 47 tag (see
// [Parse] and [FromTag]); it is never built from free text. Values are
// comparable and can be used as map keys.
package locale
