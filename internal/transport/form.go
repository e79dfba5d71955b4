package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form builds a multipart/form-data payload. The boundary-bearing content
// type comes out of Encode; nothing upstream may override it.
type Form struct {
	fields [][2]string
	files  []formFile
}

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// NewForm returns an empty multipart form builder
func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// AddFile appends a file part
func (f *Form) AddFile(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// HasFiles reports whether any file parts were added
func (f *Form) HasFiles() bool {
	return len(f.files) > 0
}

// Encode serializes the form and returns the body together with the
// computed multipart content type.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", kv[0], err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("failed to copy form file %s: %w", file.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
