// Package formdata extracts named parts (form fields and uploaded files) from
// a fully buffered multipart/form-data body.
//
// The package is deliberately small and side-effect free: Parse is a pure
// function of the body bytes and the boundary token, so request plumbing,
// persistence, and policy decisions stay with the caller. The companion
// binder package provides the HTTP middleware glue on top of it.
//
// # Usage
//
//	boundary := formdata.Boundary(r.Header.Get("Content-Type"))
//	if boundary == "" {
//		// not multipart, or no boundary parameter
//	}
//
//	body, _ := io.ReadAll(r.Body)
//	parts, err := formdata.Parse(body, boundary)
//	if err != nil {
//		// formdata.ErrMalformedHeader or formdata.ErrTruncated
//	}
//
//	for _, p := range parts {
//		if p.IsFile() {
//			// p.Name, p.Filename, p.Type, p.Data
//		} else {
//			// p.Name, p.Data (field text)
//		}
//	}
//
// Encode performs the reverse transformation and round-trips byte for byte
// with Parse, which makes it handy for building request bodies in tests.
//
// # Scope
//
// The parser operates on a complete in-memory buffer in a single forward
// pass; it does not stream, decode content-transfer-encodings, recurse into
// nested multipart payloads, or touch charsets. Payload bytes are treated as
// opaque binary: CR and LF bytes that do not form a CRLF pair pass through
// untouched.
//
// # Error Handling
//
// Failures are reported as typed sentinel errors wrapped with context:
//
//	parts, err := formdata.Parse(body, boundary)
//	if errors.Is(err, formdata.ErrTruncated) {
//		// parts holds everything completed before the cut-off
//	}
//
// Parsing is deterministic, so no retries are attempted and nothing is
// logged; errors surface to the immediate caller.
package formdata
