package formdata

import "strings"

// Boundary extracts the boundary token from a Content-Type header value such
// as "multipart/form-data; boundary=----WebKitFormBoundaryXYZ".
//
// The header is split on semicolons and the first trimmed segment containing
// the substring "boundary" wins; everything after its "=" is returned with
// surrounding whitespace removed. An empty string means no boundary was
// found, and callers must not attempt to parse with it.
//
// No syntax validation is performed: quoted boundaries are returned with
// their quotes intact, so the caller is expected to supply a clean token.
func Boundary(contentType string) string {
	for _, segment := range strings.Split(contentType, ";") {
		segment = strings.TrimSpace(segment)
		if !strings.Contains(segment, "boundary") {
			continue
		}
		kv := strings.SplitN(segment, "=", 2)
		if len(kv) != 2 {
			continue
		}
		return strings.TrimSpace(kv[1])
	}
	return ""
}
