package formdata

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Encode serializes parts into a multipart/form-data body framed by the
// given boundary. Re-parsing the result with the same boundary reproduces
// the parts byte for byte, payload CR/LF bytes included.
//
// File parts without an explicit Type are written as
// application/octet-stream.
func Encode(boundary string, parts ...Part) ([]byte, error) {
	if err := validateBoundary(boundary); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	for _, p := range parts {
		b.WriteString("--" + boundary + "\r\n")
		if p.IsFile() {
			fmt.Fprintf(&b, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"\r\n",
				escapeQuotes(p.Name), escapeQuotes(p.Filename))
			ctype := p.Type
			if ctype == "" {
				ctype = "application/octet-stream"
			}
			b.WriteString("Content-Type: " + ctype + "\r\n\r\n")
		} else {
			fmt.Fprintf(&b, "Content-Disposition: form-data; name=\"%s\"\r\n\r\n",
				escapeQuotes(p.Name))
		}
		b.Write(p.Data)
		b.WriteString("\r\n")
	}
	b.WriteString("--" + boundary + "--\r\n")

	return b.Bytes(), nil
}

// RandomBoundary returns a 60-character hex token suitable as a multipart
// boundary, generated from crypto/rand.
func RandomBoundary() (string, error) {
	var buf [30]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}

// validateBoundary enforces the RFC 2046 section 5.1.1 length and character
// restrictions on boundaries produced by Encode.
func validateBoundary(boundary string) error {
	if len(boundary) < 1 || len(boundary) > 69 {
		return fmt.Errorf("%w: length must be 1-69 characters", ErrInvalidBoundary)
	}
	for _, b := range boundary {
		if 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z' || '0' <= b && b <= '9' {
			continue
		}
		switch b {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?':
			continue
		}
		return fmt.Errorf("%w: character %q not allowed", ErrInvalidBoundary, b)
	}
	return nil
}
