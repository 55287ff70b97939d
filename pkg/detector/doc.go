// Package detector infers the language of a URL from its host, path and
// query string.
//
// A [Detector] is built once from a [configs.Config] and is read-only
// afterwards, so it is safe for concurrent use. Detection never fails:
// malformed URLs, unmatched hosts and unknown tokens all yield no result.
//
// A [Reloader] rebuilds the detector when its configuration file changes.
package detector
