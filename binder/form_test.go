package binder_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/multiform/binder"
	"github.com/dmitrymomot/multiform/formdata"
	"github.com/dmitrymomot/multiform/storage"
)

const testBoundary = "TESTBOUNDARY"

func multipartRequest(t *testing.T, parts ...formdata.Part) *http.Request {
	t.Helper()
	body, err := formdata.Encode(testBoundary, parts...)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+testBoundary)
	return req
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	t.Run("merges fields and files", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			formdata.Part{Name: "title", Data: []byte("hello")},
			formdata.Part{Name: "avatar", Filename: "me.png", Type: "image/png", Data: []byte("PNGDATA")},
		)

		form, err := binder.ParseRequest(req)
		require.NoError(t, err)

		assert.Equal(t, "hello", form.Value("title"))
		avatar := form.File("avatar")
		require.NotNil(t, avatar)
		assert.Equal(t, "avatar", avatar.Field)
		assert.Equal(t, "me.png", avatar.Filename)
		assert.Equal(t, "image/png", avatar.ContentType)
		assert.Equal(t, int64(7), avatar.Size)
		assert.Equal(t, []byte("PNGDATA"), avatar.Content)
		assert.Empty(t, avatar.Path) // no storage configured
	})

	t.Run("repeated names accumulate in order", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			formdata.Part{Name: "tag", Data: []byte("one")},
			formdata.Part{Name: "tag", Data: []byte("two")},
			formdata.Part{Name: "doc", Filename: "a.txt", Type: "text/plain", Data: []byte("A")},
			formdata.Part{Name: "doc", Filename: "b.txt", Type: "text/plain", Data: []byte("B")},
		)

		form, err := binder.ParseRequest(req)
		require.NoError(t, err)

		assert.Equal(t, []string{"one", "two"}, form.Fields["tag"])
		require.Len(t, form.Files["doc"], 2)
		assert.Equal(t, "a.txt", form.Files["doc"][0].Filename)
		assert.Equal(t, "b.txt", form.Files["doc"][1].Filename)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(nil))

		_, err := binder.ParseRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrMissingContentType))
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "application/json")

		_, err := binder.ParseRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrUnsupportedMediaType))
	})

	t.Run("missing boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "multipart/form-data")

		_, err := binder.ParseRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrMissingBoundary))
	})

	t.Run("body over the limit", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			formdata.Part{Name: "blob", Filename: "big.bin", Data: bytes.Repeat([]byte("x"), 2048)},
		)

		_, err := binder.ParseRequest(req, binder.WithMaxBodySize(1024))
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrBodyTooLarge))
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		raw := "--" + testBoundary + "\r\n" +
			"Content-Disposition: form-data; name\r\n" +
			"\r\n" +
			"value\r\n" +
			"--" + testBoundary + "--\r\n"
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader([]byte(raw)))
		req.Header.Set("Content-Type", "multipart/form-data; boundary="+testBoundary)

		_, err := binder.ParseRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidForm))
	})
}

func TestParseRequestStorage(t *testing.T) {
	t.Parallel()

	t.Run("persists file parts under unique names", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		req := multipartRequest(t,
			formdata.Part{Name: "doc", Filename: "same.txt", Type: "text/plain", Data: []byte("first")},
			formdata.Part{Name: "doc", Filename: "same.txt", Type: "text/plain", Data: []byte("second")},
		)

		form, err := binder.ParseRequest(req, binder.WithStorage(store))
		require.NoError(t, err)

		uploads := form.Files["doc"]
		require.Len(t, uploads, 2)
		assert.NotEmpty(t, uploads[0].Path)
		assert.NotEmpty(t, uploads[1].Path)
		assert.NotEqual(t, uploads[0].Path, uploads[1].Path)

		for _, up := range uploads {
			assert.True(t, store.Exists(context.Background(), up.Path))
		}
	})

	t.Run("upload dir prefixes the stored path", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		req := multipartRequest(t,
			formdata.Part{Name: "doc", Filename: "a.txt", Type: "text/plain", Data: []byte("x")},
		)

		form, err := binder.ParseRequest(req,
			binder.WithStorage(store),
			binder.WithUploadDir("inbox"),
		)
		require.NoError(t, err)

		doc := form.File("doc")
		require.NotNil(t, doc)
		assert.Contains(t, doc.Path, "inbox")
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			formdata.Part{Name: "doc", Filename: "a.txt", Type: "text/plain", Data: []byte("x")},
		)

		_, err := binder.ParseRequest(req, binder.WithStorage(failingStorage{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrFailedToStoreFile))
	})
}

func TestFormAccessors(t *testing.T) {
	t.Parallel()

	var nilForm *binder.Form
	assert.Empty(t, nilForm.Value("anything"))
	assert.Nil(t, nilForm.File("anything"))

	form := &binder.Form{
		Fields: map[string][]string{"a": {"1", "2"}},
		Files:  map[string][]*binder.FileUpload{},
	}
	assert.Equal(t, "1", form.Value("a"))
	assert.Empty(t, form.Value("missing"))
	assert.Nil(t, form.File("missing"))
}

// failingStorage always errors, for exercising the persistence failure path.
type failingStorage struct{}

func (failingStorage) Save(context.Context, string, []byte, string) (*storage.File, error) {
	return nil, errors.New("disk on fire")
}
func (failingStorage) Delete(context.Context, string) error { return nil }
func (failingStorage) Exists(context.Context, string) bool  { return false }
func (failingStorage) URL(path string) string               { return path }
