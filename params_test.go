// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.astrophena.name/tgbot/internal/testutil"
)

func TestParamJSONValue(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		value  any
		want   string
		absent bool
	}{
		"int":        {value: 1, want: "1"},
		"string":     {value: "one", want: "one"},
		"bool":       {value: true, want: "true"},
		"nil":        {value: nil, absent: true},
		"mixed list": {value: []any{1, "1"}, want: `[1,"1"]`},
		"map":        {value: map[string]any{"true": nil}, want: `{"true":null}`},
		"zero time":  {value: time.Time{}, absent: true},
		"nil file":   {value: (*InputFile)(nil), absent: true},
		"nil slice":  {value: []string(nil), absent: true},
		"float":      {value: 1.5, want: "1.5"},
		"chat id":    {value: ChatID("@channel"), want: "@channel"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewParam("name", tc.value)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := p.JSONValue()
			testutil.AssertEqual(t, ok, !tc.absent)
			testutil.AssertEqual(t, got, tc.want)
			if tc.absent && p.MultipartData() != nil {
				t.Fatal("absent parameter has multipart data")
			}
		})
	}
}

func TestNewParamScalars(t *testing.T) {
	t.Parallel()

	// Sub-second precision is dropped when converting timestamps: the wire
	// format is whole epoch seconds.
	ts := time.Date(2019, 11, 11, 0, 26, 16, 100_000_000, time.UTC)

	cases := map[string]struct {
		value any
		want  any
	}{
		"bool":      {value: true, want: true},
		"string":    {value: "str", want: "str"},
		"enum":      {value: ChatTypePrivate, want: "private"},
		"parsemode": {value: ParseModeMarkdownV2, want: "MarkdownV2"},
		"timestamp": {value: ts, want: int64(1573431976)},
		"entity": {
			value: MessageEntity{Type: "type", Offset: 1, Length: 1},
			want:  json.RawMessage(`{"type":"type","offset":1,"length":1}`),
		},
		"mixed sequence": {
			value: []any{true, "str", MessageEntity{Type: "type", Offset: 1, Length: 1}, ChatTypePrivate, ts},
			want: []any{
				true, "str",
				json.RawMessage(`{"type":"type","offset":1,"length":1}`),
				"private", int64(1573431976),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewParam("key", tc.value)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, p.Value(), tc.want)
			if p.Files() != nil {
				t.Fatalf("want no files, got %v", p.Files())
			}
		})
	}
}

func TestNewParamInputFile(t *testing.T) {
	t.Parallel()

	upload := FileBytes("data.txt", []byte("data1"))
	ref := FileID("CAACAgIAAxkBAAI")

	p, err := NewParam("key", upload)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, p.Value(), upload.WireValue())
	assertSameFiles(t, p.Files(), []*InputFile{upload})

	md := p.MultipartData()
	testutil.AssertEqual(t, len(md), 1)
	for key, field := range md {
		testutil.AssertEqual(t, "attach://"+key, upload.WireValue())
		testutil.AssertEqual(t, string(field.Content), "data1")
	}

	p, err = NewParam("key", ref)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, p.Value(), "CAACAgIAAxkBAAI")
	if p.Files() != nil || p.MultipartData() != nil {
		t.Fatal("reference-mode file produced attachments")
	}

	p, err = NewParam("key", []*InputFile{upload, ref})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, p.Value(), []any{upload.WireValue(), "CAACAgIAAxkBAAI"})
	assertSameFiles(t, p.Files(), []*InputFile{upload})
}

func TestNewParamInputMedia(t *testing.T) {
	t.Parallel()

	photo := NewInputMediaPhoto(FileBytes("photo.jpg", jpegData))
	p, err := NewParam("key", photo)
	if err != nil {
		t.Fatal(err)
	}
	value := testutil.UnmarshalJSON[map[string]any](t, p.Value().(json.RawMessage))
	testutil.AssertEqual(t, value["type"], "photo")
	testutil.AssertEqual(t, value["media"], photo.Media.WireValue())
	assertSameFiles(t, p.Files(), []*InputFile{photo.Media})

	video := NewInputMediaVideo(FileBytes("video.mp4", []byte("mp4")))
	video.Thumbnail = FileBytes("thumb.jpg", jpegData)
	p, err = NewParam("key", video)
	if err != nil {
		t.Fatal(err)
	}
	value = testutil.UnmarshalJSON[map[string]any](t, p.Value().(json.RawMessage))
	testutil.AssertEqual(t, value["media"], video.Media.WireValue())
	testutil.AssertEqual(t, value["thumbnail"], video.Thumbnail.WireValue())
	assertSameFiles(t, p.Files(), []*InputFile{video.Media, video.Thumbnail})
	testutil.AssertEqual(t, len(p.MultipartData()), 2)
}

func TestNewParamSequenceOrder(t *testing.T) {
	t.Parallel()

	fileA := FileBytes("a.txt", []byte("a"))
	mediaB := NewInputMediaVideo(FileBytes("b.mp4", []byte("b")))
	mediaB.Thumbnail = FileID("existing-thumb") // reference mode, not uploaded

	p, err := NewParam("key", []any{fileA, mediaB, "plain"})
	if err != nil {
		t.Fatal(err)
	}

	// Attachment order follows element order; the reference-mode thumbnail
	// contributes nothing.
	assertSameFiles(t, p.Files(), []*InputFile{fileA, mediaB.Media})

	jv, ok := p.JSONValue()
	testutil.AssertEqual(t, ok, true)
	elems := testutil.UnmarshalJSON[[]any](t, []byte(jv))
	testutil.AssertEqual(t, len(elems), 3)
	testutil.AssertEqual(t, elems[0], fileA.WireValue())
	testutil.AssertEqual(t, elems[2], "plain")
	media := elems[1].(map[string]any)
	testutil.AssertEqual(t, media["media"], mediaB.Media.WireValue())
	testutil.AssertEqual(t, media["thumbnail"], "existing-thumb")
}

func TestNewParamTypedObject(t *testing.T) {
	t.Parallel()

	markup := &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{{Text: "Open", URL: "https://example.com"}}},
	}
	p, err := NewParam("reply_markup", markup)
	if err != nil {
		t.Fatal(err)
	}
	if p.Files() != nil {
		t.Fatal("typed object produced attachments")
	}
	value := testutil.UnmarshalJSON[map[string]any](t, p.Value().(json.RawMessage))
	if _, ok := value["inline_keyboard"]; !ok {
		t.Fatalf("inline_keyboard missing from %v", value)
	}
}

func TestNewParamUnsupported(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]any{
		"chan":      make(chan int),
		"func":      func() {},
		"weird map": map[[2]int]string{{1, 2}: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewParam("key", value); !errors.Is(err, ErrUnsupportedValue) {
				t.Fatalf("NewParam() error = %v, want ErrUnsupportedValue", err)
			}
		})
	}
}

func TestParamsOf(t *testing.T) {
	t.Parallel()

	params, err := paramsOf(SendMessageParams{
		SendOptions: SendOptions{ChatID: "12345"},
		Text:        "hello",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]string)
	for _, p := range params {
		v, ok := p.JSONValue()
		if !ok {
			t.Fatalf("parameter %q is absent", p.Name)
		}
		got[p.Name] = v
	}
	testutil.AssertEqual(t, got, map[string]string{
		"chat_id": "12345",
		"text":    "hello",
	})
}

func TestParamsOfNil(t *testing.T) {
	t.Parallel()

	params, err := paramsOf(nil)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(params), 0)
}

// Smallest possible JPEG-ish payload; only the sniffed type matters.
var jpegData = []byte("\xff\xd8\xff\xe0fake")

// assertSameFiles checks that got holds exactly the files of want, by
// identity. Attachments are never copied or de-duplicated, so pointer
// equality is the contract.
func assertSameFiles(t *testing.T, got, want []*InputFile) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d files, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("file %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
