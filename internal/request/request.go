// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package request provides utilities for making HTTP requests.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// DefaultClient is a [http.Client] with nice defaults.
var DefaultClient = &http.Client{
	Timeout: 10 * time.Second,
}

// File is a single file part of a multipart/form-data request body.
type File struct {
	// Filename is the name of the file reported in the part header.
	Filename string
	// Content is the raw contents of the file.
	Content []byte
	// MIMEType is the Content-Type of the part.
	MIMEType string
}

// Params defines the parameters needed for making an HTTP request.
type Params struct {
	// Method is the HTTP method (GET, POST, etc.) for the request.
	Method string
	// URL is the target URL of the request.
	URL string
	// Headers is a map of key-value pairs for additional request headers.
	Headers map[string]string
	// Body is any data to be sent in the request body. It will be marshaled to
	// JSON. Ignored if Files is non-empty.
	Body any
	// Form is a map of plain form fields sent as multipart/form-data together
	// with Files.
	Form map[string]string
	// Files is a map of file parts, keyed by form field name. If Files is
	// non-empty, the request body is multipart/form-data assembled from Form
	// and Files.
	Files map[string]File
	// HTTPClient is an optional custom HTTP client object to use for the request.
	// If not provided, DefaultClient will be used.
	HTTPClient *http.Client
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages.
	Scrubber *strings.Replacer
}

// Bytes is a response type for requests whose body should be returned as-is,
// without JSON unmarshaling.
type Bytes []byte

// StatusError is returned when the response status code is not 200.
type StatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Body is the raw response body.
	Body []byte
}

// Error implements the error interface.
func (se *StatusError) Error() string {
	return fmt.Sprintf("want 200, got %d: %s", se.StatusCode, se.Body)
}

type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string {
	if se.scrubber != nil {
		return se.scrubber.Replace(se.err.Error())
	}
	return se.err.Error()
}

func (se *scrubbedError) Unwrap() error { return se.err }

func scrubErr(err error, scrubber *strings.Replacer) error {
	return &scrubbedError{err: err, scrubber: scrubber}
}

// Make makes an HTTP request with the provided parameters and unmarshals the
// JSON response body into the specified type. If the response type is [Bytes],
// the body is returned raw instead.
func Make[Response any](ctx context.Context, p Params) (Response, error) {
	var resp Response

	var (
		br          io.Reader
		contentType string
	)
	switch {
	case len(p.Files) > 0:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for name, value := range p.Form {
			if err := mw.WriteField(name, value); err != nil {
				return resp, scrubErr(err, p.Scrubber)
			}
		}
		for field, f := range p.Files {
			part, err := mw.CreatePart(fileHeader(field, f))
			if err != nil {
				return resp, scrubErr(err, p.Scrubber)
			}
			if _, err := part.Write(f.Content); err != nil {
				return resp, scrubErr(err, p.Scrubber)
			}
		}
		if err := mw.Close(); err != nil {
			return resp, scrubErr(err, p.Scrubber)
		}
		br = &buf
		contentType = mw.FormDataContentType()
	case p.Body != nil:
		data, err := json.Marshal(p.Body)
		if err != nil {
			return resp, scrubErr(err, p.Scrubber)
		}
		br = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, p.URL, br)
	if err != nil {
		return resp, scrubErr(err, p.Scrubber)
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpc := DefaultClient
	if p.HTTPClient != nil {
		httpc = p.HTTPClient
	}

	res, err := httpc.Do(req)
	if err != nil {
		return resp, scrubErr(err, p.Scrubber)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return resp, scrubErr(err, p.Scrubber)
	}

	if res.StatusCode != http.StatusOK {
		return resp, scrubErr(&StatusError{StatusCode: res.StatusCode, Body: b}, p.Scrubber)
	}

	if rb, ok := any(&resp).(*Bytes); ok {
		*rb = b
		return resp, nil
	}

	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, scrubErr(err, p.Scrubber)
	}

	return resp, nil
}

func fileHeader(field string, f File) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Filename))
	mt := f.MIMEType
	if mt == "" {
		mt = "application/octet-stream"
	}
	h.Set("Content-Type", mt)
	return h
}
