package request_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.astrophena.name/tgbot/internal/request"
	"go.astrophena.name/tgbot/internal/testutil"
)

func TestMake(t *testing.T) {
	t.Parallel()

	var (
		contentType string
		userAgent   string
		body        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		userAgent = r.Header.Get("User-Agent")
		body, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	t.Cleanup(srv.Close)

	type response struct {
		Status string `json:"status"`
	}
	resp, err := request.Make[response](t.Context(), request.Params{
		Method: http.MethodPost,
		URL:    srv.URL,
		Body:   map[string]string{"key": "value"},
	})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, resp.Status, "ok")
	testutil.AssertEqual(t, contentType, "application/json")
	testutil.AssertEqual(t, string(body), `{"key":"value"}`)
	if !strings.HasPrefix(userAgent, "tgbot/") {
		t.Fatalf("User-Agent = %q, want tgbot/ prefix", userAgent)
	}
}

func TestMakeMultipart(t *testing.T) {
	t.Parallel()

	var (
		fields   map[string][]string
		filename string
		partType string
		content  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields = r.MultipartForm.Value
		fh := r.MultipartForm.File["upload"][0]
		filename = fh.Filename
		partType = fh.Header.Get("Content-Type")
		f, err := fh.Open()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		content = string(b)
		fmt.Fprint(w, "{}")
	}))
	t.Cleanup(srv.Close)

	_, err := request.Make[struct{}](t.Context(), request.Params{
		Method: http.MethodPost,
		URL:    srv.URL,
		Form:   map[string]string{"name": "value"},
		Files: map[string]request.File{
			"upload": {Filename: "data.txt", Content: []byte("contents"), MIMEType: "text/plain"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, fields["name"], []string{"value"})
	testutil.AssertEqual(t, filename, "data.txt")
	testutil.AssertEqual(t, partType, "text/plain")
	testutil.AssertEqual(t, content, "contents")
}

func TestMakeBytes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not JSON at all")
	}))
	t.Cleanup(srv.Close)

	b, err := request.Make[request.Bytes](t.Context(), request.Params{
		Method: http.MethodGet,
		URL:    srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), "not JSON at all")
}

func TestMakeStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "nothing here")
	}))
	t.Cleanup(srv.Close)

	_, err := request.Make[struct{}](t.Context(), request.Params{
		Method: http.MethodGet,
		URL:    srv.URL,
	})
	var statusErr *request.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	testutil.AssertEqual(t, statusErr.StatusCode, http.StatusNotFound)
	testutil.AssertEqual(t, string(statusErr.Body), "nothing here")
}

func TestMakeScrubbedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "access denied for hunter2")
	}))
	t.Cleanup(srv.Close)

	_, err := request.Make[struct{}](t.Context(), request.Params{
		Method:   http.MethodGet,
		URL:      srv.URL,
		Scrubber: strings.NewReplacer("hunter2", "[EXPUNGED]"),
	})
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if strings.Contains(err.Error(), "hunter2") {
		t.Fatalf("error message leaks the secret: %v", err)
	}
	if !strings.Contains(err.Error(), "[EXPUNGED]") {
		t.Fatalf("error message is not scrubbed: %v", err)
	}

	// The wrapped error is still matchable.
	var statusErr *request.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want to unwrap to *StatusError", err)
	}
}

func TestMakeCustomHeaders(t *testing.T) {
	t.Parallel()

	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		fmt.Fprint(w, "{}")
	}))
	t.Cleanup(srv.Close)

	if _, err := request.Make[struct{}](t.Context(), request.Params{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"Authorization": "Bearer token"},
	}); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, auth, "Bearer token")
}
