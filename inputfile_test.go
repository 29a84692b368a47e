// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"go.astrophena.name/tgbot/internal/testutil"
)

func TestFileBytes(t *testing.T) {
	t.Parallel()

	f := FileBytes("report.txt", []byte("contents"))
	if !f.NeedsUpload() {
		t.Fatal("FileBytes() is not in upload mode")
	}
	if !strings.HasPrefix(f.WireValue(), "attach://") {
		t.Fatalf("WireValue() = %q, want attach:// prefix", f.WireValue())
	}
	// The attach ID is stable across calls.
	testutil.AssertEqual(t, f.WireValue(), f.WireValue())

	field, err := f.MultipartField()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, field.Filename, "report.txt")
	testutil.AssertEqual(t, string(field.Content), "contents")
	testutil.AssertEqual(t, field.MIMEType, "text/plain; charset=utf-8")

	// Two files never share an attach ID, even with identical contents.
	g := FileBytes("report.txt", []byte("contents"))
	if f.WireValue() == g.WireValue() {
		t.Fatalf("two uploads share wire value %q", f.WireValue())
	}
}

func TestFileReader(t *testing.T) {
	t.Parallel()

	f, err := FileReader("data.bin", strings.NewReader("payload"))
	if err != nil {
		t.Fatal(err)
	}
	field, err := f.MultipartField()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(field.Content), "payload")

	if _, err := FileReader("data.bin", iotest.ErrReader(io.ErrUnexpectedEOF)); !errors.Is(err, ErrFileAccess) {
		t.Fatalf("FileReader() error = %v, want ErrFileAccess", err)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(path, jpegData, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := FilePath(path)
	if err != nil {
		t.Fatal(err)
	}
	field, err := f.MultipartField()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, field.Filename, "photo.jpg")
	testutil.AssertEqual(t, field.MIMEType, "image/jpeg")

	if _, err := FilePath(filepath.Join(dir, "missing.jpg")); !errors.Is(err, ErrFileAccess) {
		t.Fatalf("FilePath() error = %v, want ErrFileAccess", err)
	}
}

func TestFileReference(t *testing.T) {
	t.Parallel()

	for name, f := range map[string]*InputFile{
		"file ID": FileID("AgACAgIAAxkDAAO"),
		"URL":     FileURL("https://example.com/photo.jpg"),
	} {
		t.Run(name, func(t *testing.T) {
			if f.NeedsUpload() {
				t.Fatal("reference-mode file reports NeedsUpload")
			}
			if strings.HasPrefix(f.WireValue(), "attach://") {
				t.Fatalf("WireValue() = %q, want no attach:// prefix", f.WireValue())
			}
			if _, err := f.MultipartField(); !errors.Is(err, ErrNotUpload) {
				t.Fatalf("MultipartField() error = %v, want ErrNotUpload", err)
			}
		})
	}
}

func TestInputFileMarshalJSON(t *testing.T) {
	t.Parallel()

	upload := FileBytes("a.txt", []byte("a"))
	b, err := upload.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), `"`+upload.WireValue()+`"`)

	b, err = FileID("known").MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), `"known"`)
}

func TestWithMIMEType(t *testing.T) {
	t.Parallel()

	f := FileBytes("track.weird", []byte("RIFF")).WithMIMEType("audio/ogg")
	field, err := f.MultipartField()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, field.MIMEType, "audio/ogg")

	// No-op in reference mode.
	ref := FileID("known").WithMIMEType("audio/ogg")
	testutil.AssertEqual(t, ref.WireValue(), "known")
}

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		filename string
		contents []byte
		want     string
	}{
		"by extension": {filename: "cat.jpg", contents: []byte("not a jpeg"), want: "image/jpeg"},
		"by sniffing":  {filename: "cat", contents: jpegData, want: "image/jpeg"},
		"fallback":     {filename: "cat", contents: nil, want: "application/octet-stream"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, detectMIME(tc.filename, tc.contents), tc.want)
		})
	}
}
