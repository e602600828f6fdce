package binder

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/multiform/formdata"
	"github.com/dmitrymomot/multiform/storage"
)

// DefaultMaxBodySize caps buffered request bodies at 10MB unless overridden.
const DefaultMaxBodySize = 10 << 20

// FileUpload represents one uploaded file merged out of a parsed form.
type FileUpload struct {
	// Field is the form field name the file was submitted under.
	Field string

	// Filename is the original filename provided by the client.
	Filename string

	// ContentType is the MIME type declared in the part header.
	ContentType string

	// Size is the payload size in bytes.
	Size int64

	// Content holds the file data in memory.
	Content []byte

	// Path is the storage path of the persisted file. Empty unless a
	// storage backend was configured.
	Path string
}

// Form is the merged view of a parsed multipart request body. Parts without
// a field name are dropped during the merge; repeated names accumulate in
// submission order.
type Form struct {
	Fields map[string][]string
	Files  map[string][]*FileUpload
}

// Value returns the first value submitted under name, or "".
func (f *Form) Value(name string) string {
	if f == nil || len(f.Fields[name]) == 0 {
		return ""
	}
	return f.Fields[name][0]
}

// File returns the first file submitted under name, or nil.
func (f *Form) File(name string) *FileUpload {
	if f == nil || len(f.Files[name]) == 0 {
		return nil
	}
	return f.Files[name][0]
}

// Option configures form parsing.
type Option func(*config)

type config struct {
	maxBodySize int64
	store       storage.Storage
	uploadDir   string
	logger      *slog.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxBodySize overrides the buffered body limit.
// Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithStorage enables file persistence: every file part is saved through the
// given backend under a freshly generated unique name, and the resolved path
// is recorded on the FileUpload.
func WithStorage(s storage.Storage) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithUploadDir prefixes generated file names with a directory inside the
// storage backend. Only meaningful together with WithStorage.
func WithUploadDir(dir string) Option {
	return func(c *config) {
		c.uploadDir = dir
	}
}

// WithLogger sets the logger used by the middleware to report rejected
// requests. Parsing itself never logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// ParseRequest buffers a multipart/form-data request body and merges its
// parts into a Form. The body is consumed; callers needing it again must
// re-read from the returned Form.
func ParseRequest(r *http.Request, opts ...Option) (*Form, error) {
	return parseRequest(r, newConfig(opts...))
}

func parseRequest(r *http.Request, cfg *config) (*Form, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected multipart/form-data", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "multipart/form-data" {
		return nil, fmt.Errorf("%w: got %s, expected multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	boundary := formdata.Boundary(contentType)
	if boundary == "" {
		return nil, fmt.Errorf("%w: content type %q", ErrMissingBoundary, contentType)
	}

	// Read one byte past the limit so oversize is distinguishable from an
	// exact fit.
	body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if int64(len(body)) > cfg.maxBodySize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, cfg.maxBodySize)
	}

	parts, err := formdata.Parse(body, boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	form := &Form{
		Fields: make(map[string][]string),
		Files:  make(map[string][]*FileUpload),
	}

	for _, p := range parts {
		if p.Name == "" {
			continue
		}

		if !p.IsFile() {
			form.Fields[p.Name] = append(form.Fields[p.Name], string(p.Data))
			continue
		}

		upload := &FileUpload{
			Field:       p.Name,
			Filename:    p.Filename,
			ContentType: p.Type,
			Size:        int64(len(p.Data)),
			Content:     p.Data,
		}

		if cfg.store != nil {
			dst := storage.UniqueFilename(p.Filename)
			if cfg.uploadDir != "" {
				dst = path.Join(cfg.uploadDir, dst)
			}

			info, err := cfg.store.Save(r.Context(), dst, p.Data, p.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %v", ErrFailedToStoreFile, p.Name, err)
			}
			upload.Path = info.RelativePath
		}

		form.Files[p.Name] = append(form.Files[p.Name], upload)
	}

	return form, nil
}
