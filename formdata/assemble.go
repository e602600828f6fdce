package formdata

import (
	"fmt"
	"strconv"
	"strings"
)

// assemble converts a raw segment into a structured Part. A segment with a
// non-blank field line is a plain field; everything else is treated as a
// file upload.
func assemble(rp rawPart) (Part, error) {
	if rp.field != "" {
		return assembleField(rp)
	}
	return assembleFile(rp)
}

func assembleField(rp rawPart) (Part, error) {
	name, err := dispositionValue(rp.header, 1, "name")
	if err != nil {
		return Part{}, err
	}
	return Part{Name: name, Data: []byte(rp.field)}, nil
}

func assembleFile(rp rawPart) (Part, error) {
	name, err := dispositionValue(rp.header, 1, "name")
	if err != nil {
		return Part{}, err
	}
	filename, err := dispositionValue(rp.header, 2, "filename")
	if err != nil {
		return Part{}, err
	}
	ctype, err := contentTypeValue(rp.info)
	if err != nil {
		return Part{}, err
	}
	return Part{Name: name, Filename: filename, Type: ctype, Data: rp.body}, nil
}

// dispositionValue extracts the quoted value of the given semicolon-separated
// segment of a Content-Disposition line, e.g. `name="avatar"` at index 1.
// Segments are addressed by position, matching the fixed layout browsers
// emit; the key itself is not inspected beyond the split on '='.
func dispositionValue(header string, index int, key string) (string, error) {
	segments := strings.Split(header, ";")
	if len(segments) <= index {
		return "", fmt.Errorf("%w: missing %s segment in %q", ErrMalformedHeader, key, header)
	}
	kv := strings.SplitN(segments[index], "=", 2)
	if len(kv) != 2 {
		return "", fmt.Errorf("%w: %s segment lacks '=' in %q", ErrMalformedHeader, key, header)
	}
	value, err := strconv.Unquote(strings.TrimSpace(kv[1]))
	if err != nil {
		return "", fmt.Errorf("%w: %s value is not a quoted string in %q", ErrMalformedHeader, key, header)
	}
	return value, nil
}

// contentTypeValue extracts the media type from a `Content-Type: ...` info
// line by taking the trimmed remainder after the first colon.
func contentTypeValue(info string) (string, error) {
	kv := strings.SplitN(info, ":", 2)
	if len(kv) != 2 {
		return "", fmt.Errorf("%w: content type line %q lacks ':'", ErrMalformedHeader, info)
	}
	return strings.TrimSpace(kv[1]), nil
}
