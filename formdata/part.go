package formdata

// Part is one logical field or file extracted from a multipart/form-data
// body. Parts appear in the exact order their segments appear on the wire.
type Part struct {
	// Name is the field name from the Content-Disposition header.
	Name string

	// Filename is the client-supplied file name. Empty for plain fields;
	// its presence is what marks a part as a file upload.
	Filename string

	// Type is the declared MIME type of a file part. Empty for plain fields.
	Type string

	// Data holds the field text for plain fields or the raw payload bytes
	// for file parts.
	Data []byte
}

// IsFile reports whether the part carries an uploaded file rather than a
// plain text field.
func (p Part) IsFile() bool {
	return p.Filename != ""
}

// rawPart holds the undecoded lines and payload of one delimited segment,
// as produced by the scanner and consumed by the assembler.
type rawPart struct {
	header string // Content-Disposition line
	info   string // Content-Type line; blank for plain fields
	field  string // field value line; blank for file parts
	body   []byte // payload bytes, delimiter and trailing CRLF stripped
}
