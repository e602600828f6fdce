package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage for the local filesystem. All operations
// are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir       string        // Absolute path - all files stored within this directory
	baseURL       string        // URL prefix for serving files (e.g., "/files/")
	uploadTimeout time.Duration // Optional timeout to prevent hanging uploads
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout sets the timeout for save operations.
// If not set, relies on the context deadline from the caller.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to an absolute path and created if it doesn't exist;
// baseURL is the prefix used for generating public URLs (e.g., "/files/").
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	// Must resolve to absolute path for security - prevents relative path confusion
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Save writes data to path under the base directory. Partial files are
// cleaned up on write failures.
func (s *LocalStorage) Save(ctx context.Context, path string, data []byte, contentType string) (*File, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	// Create with restrictive permissions (644 = rw-r--r--)
	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	written, err := dst.Write(data)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath) // Clean up partial file
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = path // Fallback to original path
	}

	return &File{
		Filename:     filepath.Base(absPath),
		Size:         int64(written),
		ContentType:  DetectContentType(data, contentType),
		AbsolutePath: absPath,
		RelativePath: relPath,
	}, nil
}

// Delete removes a single file. It refuses to remove directories to prevent
// accidental data loss.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// Exists checks if a file exists. Returns false for invalid paths or on
// context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(absPath)
	return err == nil
}

// URL returns the public URL for a file.
func (s *LocalStorage) URL(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))

	if strings.HasPrefix(path, "/") {
		return path
	}

	return s.baseURL + path
}

// resolvePath validates and resolves a path within the base directory,
// ensuring the result stays within baseDir bounds.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	// Security check: ensure path stays within baseDir (prevents ../ attacks)
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
