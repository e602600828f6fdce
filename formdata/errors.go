package formdata

import "errors"

var (
	// ErrMalformedHeader reports a part header line that does not match the
	// expected `key="value"` or `key: value` shape. The whole parse fails;
	// there is no partial-results recovery for malformed headers.
	ErrMalformedHeader = errors.New("malformed part header")

	// ErrTruncated reports a body that ended before the closing boundary of
	// the part being read. Parts completed before the cut-off are still
	// returned alongside the error.
	ErrTruncated = errors.New("truncated multipart body")

	// ErrInvalidBoundary reports a boundary token that violates the RFC 2046
	// length or character restrictions. Returned by Encode only; Parse uses
	// the supplied boundary verbatim.
	ErrInvalidBoundary = errors.New("invalid multipart boundary")
)
