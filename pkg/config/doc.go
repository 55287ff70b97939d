// Package config loads versioned configuration documents.
//
// A [Loader] validates the raw YAML against a JSON schema, then decodes it
// into a typed object. Errors point at the offending lines of the source.
package config
