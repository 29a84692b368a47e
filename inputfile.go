// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrFileAccess is returned when the contents of a file can't be read while
// constructing an [InputFile]. Reads happen at construction time, so a bad
// path or reader fails the call immediately instead of the send that would
// use it.
var ErrFileAccess = errors.New("cannot read file contents")

// ErrNotUpload is returned by [InputFile.MultipartField] for files in
// reference mode, which have no binary contents to upload.
var ErrNotUpload = errors.New("file is not an upload")

// InputFile is a file to send with a Bot API request.
//
// An InputFile is in one of two modes. Upload mode ([FileBytes], [FileReader],
// [FilePath]) holds binary contents to be sent as a multipart part, stands in
// the JSON payload as a process-unique "attach://<id>" reference, and carries
// a filename and a MIME type. Reference mode ([FileID], [FileURL]) holds only
// a string naming a file the server already knows; the string itself is the
// wire value and nothing is uploaded.
type InputFile struct {
	// reference mode
	ref string

	// upload mode
	attachID string // multipart field name; the wire value is "attach://" + attachID
	contents []byte
	filename string
	mimeType string
}

// FileBytes returns an upload-mode [InputFile] with the given contents. The
// MIME type is inferred from the filename extension, falling back to content
// sniffing.
func FileBytes(filename string, contents []byte) *InputFile {
	return &InputFile{
		attachID: uuid.NewString(),
		contents: contents,
		filename: filename,
		mimeType: detectMIME(filename, contents),
	}
}

// FileReader reads r until EOF and returns an upload-mode [InputFile] with
// the contents read. Read failures are reported immediately, wrapping
// [ErrFileAccess].
func FileReader(filename string, r io.Reader) (*InputFile, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	return FileBytes(filename, contents), nil
}

// FilePath reads the file at path and returns an upload-mode [InputFile] with
// its contents. A missing or unreadable file is reported immediately,
// wrapping [ErrFileAccess].
func FilePath(path string) (*InputFile, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	return FileBytes(filepath.Base(path), contents), nil
}

// FileID returns a reference-mode [InputFile] for a file that already exists
// on the server, identified by its file ID.
func FileID(id string) *InputFile { return &InputFile{ref: id} }

// FileURL returns a reference-mode [InputFile] for a file the server should
// fetch from the given HTTP(S) URL.
func FileURL(url string) *InputFile { return &InputFile{ref: url} }

// WithMIMEType overrides the inferred MIME type of an upload-mode file and
// returns f for chaining. It has no effect in reference mode.
func (f *InputFile) WithMIMEType(mimeType string) *InputFile {
	if f.attachID != "" {
		f.mimeType = mimeType
	}
	return f
}

// NeedsUpload reports whether f is in upload mode and must be sent as a
// multipart part.
func (f *InputFile) NeedsUpload() bool { return f.attachID != "" }

// WireValue returns the string that stands for f in a JSON payload: the
// "attach://<id>" reference in upload mode, or the file ID or URL in
// reference mode. The value is stable for the lifetime of f.
func (f *InputFile) WireValue() string {
	if f.attachID != "" {
		return "attach://" + f.attachID
	}
	return f.ref
}

// MultipartField returns the multipart form part for an upload-mode file.
// It fails with an error wrapping [ErrNotUpload] in reference mode.
func (f *InputFile) MultipartField() (MultipartField, error) {
	if !f.NeedsUpload() {
		return MultipartField{}, fmt.Errorf("%w: %q", ErrNotUpload, f.ref)
	}
	return MultipartField{
		Filename: f.filename,
		Content:  f.contents,
		MIMEType: f.mimeType,
	}, nil
}

// MarshalJSON implements the [json.Marshaler] interface. An InputFile
// serializes to its wire value, so object graphs holding files JSON-encode
// directly; the binary contents travel separately as multipart parts.
func (f *InputFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.WireValue())
}

// MultipartField is a single file part of a multipart/form-data request.
type MultipartField struct {
	Filename string
	Content  []byte
	MIMEType string
}

func detectMIME(filename string, contents []byte) string {
	if mt := mime.TypeByExtension(filepath.Ext(filename)); mt != "" {
		return mt
	}
	if len(contents) > 0 {
		return http.DetectContentType(contents)
	}
	return "application/octet-stream"
}
