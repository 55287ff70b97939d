// Package expr provides CEL (Common Expression Language) functionality
// for evaluating profile conditions against URLs.
//
// CEL expressions have access to variables:
//   - `scheme` (string): The lowercased URL scheme
//   - `host` (string): The lowercased host, without port
//   - `port` (string): The port, or an empty string
//   - `path` (string): The escaped path
//   - `query` (string): The raw query string
//
// And to the URL functions:
//   - hostLabels(string): The dot-separated labels of a host
//   - pathSegments(string): The non-empty segments of a path
//   - queryValues(string, string): The decoded values of a query parameter
package expr
