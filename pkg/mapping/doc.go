// Package mapping builds the lookup tables that turn language tokens
// extracted from URLs into canonical languages.
//
// A [Registry] always contains the built-in tables ([ISO6391], [ISO6393],
// [LanguageTags], [EnglishNames] and [NativeNames]). User tables are
// composed from configuration in four ordered steps:
//
//  1. extend: copy entries from earlier tables, first writer wins.
//  2. filter: keep entries whose language matches a language priority list.
//  3. add: insert tokens that are not yet present.
//  4. override: replace every token of a language with a new set.
//
// Tables are immutable once the registry has been built.
package mapping
