package formdata

import "bytes"

// scanState enumerates the scanner's position within the multipart framing.
type scanState int

const (
	stateSeekBoundary  scanState = iota // before the first delimiter line
	stateReadHeader                     // Content-Disposition line
	stateReadInfo                       // Content-Type line (blank for plain fields)
	stateReadFieldLine                  // field value line (blank for file parts)
	stateReadBody                       // payload bytes until the next delimiter
	stateAwaitBoundary                  // delimiter matched, waiting for its CRLF
)

// windowSlack is added to the boundary length to bound the candidate-line
// buffer used for delimiter lookahead inside a part body. The resulting
// window of len(boundary)+4 bytes keeps memory constant while scanning
// arbitrarily long payload lines.
const windowSlack = 4

// scanner segments a buffered multipart body into raw parts in a single
// forward pass. It consumes one byte at a time; a CRLF pair is the only
// recognized line terminator. Each Parse call owns a fresh scanner, so
// there is no state carried across invocations.
type scanner struct {
	delimiter []byte // "--" + boundary
	maxLine   int    // lookahead window bound, len(boundary) + windowSlack

	state     scanState
	line      []byte // bytes since the last line terminator
	body      []byte // payload accumulator, READ_BODY only
	pendingCR bool

	header string
	info   string
	field  string

	parts []rawPart
}

func newScanner(boundary string) *scanner {
	return &scanner{
		delimiter: []byte("--" + boundary),
		maxLine:   len(boundary) + windowSlack,
	}
}

// scan feeds the whole buffer through the state machine and returns the
// segments it completed. Call truncated afterwards to learn whether the
// input ended mid-part.
func (s *scanner) scan(data []byte) []rawPart {
	for _, c := range data {
		s.feed(c)
	}
	return s.parts
}

// feed advances the state machine by one byte.
func (s *scanner) feed(c byte) {
	// Payload bytes are captured verbatim, terminators included; emit trims
	// the delimiter line and its preceding CRLF off the tail.
	if s.state == stateReadBody {
		s.body = append(s.body, c)
	}

	if s.pendingCR {
		s.pendingCR = false
		if c == '\n' {
			s.endLine()
			return
		}
		// The CR was ordinary data, not half of a terminator.
		s.line = append(s.line, '\r')
	}
	if c == '\r' {
		s.pendingCR = true
		return
	}
	s.line = append(s.line, c)

	if s.state == stateReadBody {
		// Inside a body the delimiter is recognized as soon as the current
		// line equals it, before its terminating CRLF arrives.
		if bytes.Equal(s.line, s.delimiter) {
			s.emit()
			return
		}
		if len(s.line) > s.maxLine {
			// Clears only the candidate-line buffer; the bytes themselves
			// are already in the body accumulator.
			s.line = s.line[:0]
		}
	}
}

// endLine applies the CRLF-triggered transition for the current state.
func (s *scanner) endLine() {
	switch s.state {
	case stateSeekBoundary:
		if bytes.Equal(s.line, s.delimiter) {
			s.state = stateReadHeader
		}
	case stateReadHeader:
		s.header = string(s.line)
		s.state = stateReadInfo
	case stateReadInfo:
		s.info = string(s.line)
		s.state = stateReadFieldLine
	case stateReadFieldLine:
		s.field = string(s.line)
		s.state = stateReadBody
		s.body = s.body[:0]
	case stateReadBody:
		// A terminator inside the payload only resets the candidate line.
	case stateAwaitBoundary:
		// The CRLF closing a delimiter line always opens the next part; a
		// closing "--boundary--" therefore costs one extra no-op header
		// cycle instead of a distinct stop state.
		s.state = stateReadHeader
	}
	s.line = s.line[:0]
}

// emit finishes the in-progress part. The body accumulator still holds the
// delimiter line and the CRLF that preceded it; both are stripped so the
// part body is exactly the bytes between the header block and the boundary.
func (s *scanner) emit() {
	n := len(s.body) - len(s.delimiter) - 2
	if n < 0 {
		n = 0
	}
	body := make([]byte, n)
	copy(body, s.body[:n])

	s.parts = append(s.parts, rawPart{
		header: s.header,
		info:   s.info,
		field:  s.field,
		body:   body,
	})

	s.header, s.info, s.field = "", "", ""
	s.body = s.body[:0]
	s.line = s.line[:0]
	s.state = stateAwaitBoundary
}

// truncated reports whether the input ran out while a part was still being
// read. Ending in READ_HEADER with nothing accumulated is the normal no-op
// cycle after a closing delimiter and does not count.
func (s *scanner) truncated() bool {
	switch s.state {
	case stateReadInfo, stateReadFieldLine, stateReadBody:
		return true
	case stateReadHeader:
		return len(s.line) > 0 || s.pendingCR
	default:
		return false
	}
}
