// Package binder glues the formdata parser into net/http request handling.
//
// It buffers and size-limits the request body, extracts the boundary from
// the Content-Type header, parses the body with formdata.Parse, and merges
// the resulting parts into a Form: repeated field names accumulate into
// slices, file parts become FileUpload records. When a storage backend is
// configured, each file part is persisted under a freshly generated unique
// name and the resolved path is recorded on the upload before the next
// handler runs.
//
// # Direct use
//
//	form, err := binder.ParseRequest(r,
//		binder.WithMaxBodySize(5<<20),
//	)
//	if err != nil {
//		// binder.ErrUnsupportedMediaType, binder.ErrMissingBoundary, ...
//	}
//	title := form.Value("title")
//	avatar := form.File("avatar")
//
// # Middleware use
//
//	store, _ := storage.NewLocalStorage("./uploads", "/files/")
//
//	r := chi.NewRouter()
//	r.Use(binder.Middleware(
//		binder.WithStorage(store),
//		binder.WithUploadDir("avatars"),
//	))
//	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
//		form := binder.FromContext(r.Context())
//		// ...
//	})
//
// Non-multipart requests pass through the middleware untouched. Parse
// failures answer 400, oversized bodies 413; storage failures propagate as
// 500 because by then the request was syntactically valid.
package binder
