// Package storage persists parsed upload payloads behind a small Storage
// interface, so the multipart core and the HTTP middleware stay free of any
// filesystem or cloud dependency.
//
// Two backends are provided:
//   - LocalStorage: filesystem storage confined to a base directory
//   - S3Storage: Amazon S3 and S3-compatible services (MinIO, Wasabi, etc.)
//
// # Usage
//
//	store, err := storage.NewLocalStorage("./uploads", "/files/")
//	if err != nil {
//		return err
//	}
//
//	// part is a formdata.Part produced by the parser
//	name := storage.UniqueFilename(part.Filename)
//	info, err := store.Save(ctx, name, part.Data, part.Type)
//	if err != nil {
//		return err
//	}
//	url := store.URL(info.RelativePath)
//
// Saving works on in-memory byte slices because the parser operates on fully
// buffered bodies; all disk or network I/O happens strictly after parsing.
//
// # Security
//
// Both backends reject paths that escape their root ("../" and friends), and
// SanitizeFilename strips path components and NUL bytes from client-supplied
// names before they are used anywhere.
package storage
