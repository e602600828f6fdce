package storage

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File describes a stored upload.
type File struct {
	Filename     string // Base name of the stored file
	Size         int64  // Bytes written
	ContentType  string // Declared or detected MIME type
	AbsolutePath string // Filesystem path; empty for remote backends
	RelativePath string // Path relative to the backend root
}

// Storage is the persistence boundary injected into the form middleware.
// Implementations receive fully buffered payload bytes; parsing never
// overlaps with I/O.
type Storage interface {
	// Save writes data under path and returns metadata about the stored file.
	// An empty contentType is detected from the payload bytes.
	Save(ctx context.Context, path string, data []byte, contentType string) (*File, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// Exists checks whether a file is present.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for a stored file.
	URL(path string) string
}

// SanitizeFilename removes path components and dangerous characters from a
// client-supplied filename to prevent path traversal and related issues.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := storage.SanitizeFilename("../../../etc/passwd") // "passwd"
//	safe = storage.SanitizeFilename("C:\\Windows\\file.txt") // "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// UniqueFilename returns a freshly generated name that keeps the sanitized
// extension of the original. Used by the form middleware so concurrent
// uploads of identically named files never collide.
//
// Example:
//
//	name := storage.UniqueFilename("photo.jpg") // "0b9cf3b4-....jpg"
func UniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(original)))
	return uuid.NewString() + ext
}

// DetectContentType returns the declared MIME type when present and falls
// back to sniffing the payload bytes. Sniffing inspects at most the first
// 512 bytes, per http.DetectContentType.
func DetectContentType(data []byte, declared string) string {
	if declared != "" {
		return declared
	}
	return http.DetectContentType(data)
}
