package formdata

import "fmt"

// Parse splits a buffered multipart/form-data body into its ordered parts.
//
// It is a pure function of its inputs: the same body and boundary always
// yield structurally identical results, and nothing is retained between
// calls. The boundary is used verbatim, with no normalization; an empty
// boundary, or one that never appears as a delimiter line in the body,
// yields an empty slice.
//
// Header lines that do not parse fail the whole call with
// ErrMalformedHeader. A body that ends mid-part returns ErrTruncated along
// with every part completed before the cut-off.
func Parse(body []byte, boundary string) ([]Part, error) {
	parts := []Part{}
	if boundary == "" {
		return parts, nil
	}

	s := newScanner(boundary)
	for _, rp := range s.scan(body) {
		p, err := assemble(rp)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	if s.truncated() {
		return parts, fmt.Errorf("%w: input ended before the closing boundary", ErrTruncated)
	}
	return parts, nil
}
