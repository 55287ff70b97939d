// Package errdefs defines the errors returned while building a detector from
// configuration.
//
// Every error is wrapped so that callers can match it with [errors.Is]
// against one of the sentinel values, regardless of how much context was
// added on the way up:
//
//	_, err := detector.New(cfg)
//	if errors.Is(err, errdefs.ErrUnknownReference) {
//		// Fix the reference and rebuild.
//	}
//
// Detection itself never returns errors.
package errdefs
