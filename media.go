// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

// The Bot API's media objects share most of their fields. Instead of a type
// hierarchy, each media type is assembled from small embedded field groups:
// the groups below plus whatever is unique to the type.

// fileMeta is the field group shared by all file-backed media objects.
// FileUniqueID is the identity field: it stays the same over time and across
// bots, while FileID doesn't.
type fileMeta struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// Ident implements the [Identifier] interface.
func (m fileMeta) Ident() string { return m.FileUniqueID }

// dimensions is the field group for media with a width and height.
type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// playable is the field group for media with a duration in seconds.
type playable struct {
	Duration int `json:"duration"`
}

// fileInfo is the field group for media that report the sender-defined file
// name and MIME type.
type fileInfo struct {
	FileName string `json:"file_name,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// thumbed is the field group for media with a server-generated thumbnail.
type thumbed struct {
	Thumbnail *PhotoSize `json:"thumbnail,omitempty"`
}

// PhotoSize represents one size of a photo or a file/sticker thumbnail.
type PhotoSize struct {
	fileMeta
	dimensions

	Extra Extra `json:"-"`
}

// Audio represents an audio file to be treated as music.
type Audio struct {
	fileMeta
	playable
	fileInfo
	thumbed
	Performer string `json:"performer,omitempty"`
	Title     string `json:"title,omitempty"`

	Extra Extra `json:"-"`
}

// Document represents a general file (as opposed to photos, voice messages
// and audio files).
type Document struct {
	fileMeta
	fileInfo
	thumbed

	Extra Extra `json:"-"`
}

// Video represents a video file.
type Video struct {
	fileMeta
	dimensions
	playable
	fileInfo
	thumbed

	Extra Extra `json:"-"`
}

// Animation represents an animation file (GIF or H.264/MPEG-4 AVC video
// without sound).
type Animation struct {
	fileMeta
	dimensions
	playable
	fileInfo
	thumbed

	Extra Extra `json:"-"`
}

// Voice represents a voice note.
type Voice struct {
	fileMeta
	playable
	fileInfo

	Extra Extra `json:"-"`
}

// VideoNote represents a video message.
type VideoNote struct {
	fileMeta
	playable
	thumbed
	Length int `json:"length"` // video width and height as defined by sender

	Extra Extra `json:"-"`
}

// Sticker represents a sticker.
type Sticker struct {
	fileMeta
	dimensions
	thumbed
	Type          string `json:"type"`
	IsAnimated    bool   `json:"is_animated"`
	IsVideo       bool   `json:"is_video"`
	Emoji         string `json:"emoji,omitempty"`
	SetName       string `json:"set_name,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`

	Extra Extra `json:"-"`
}

// File represents a file ready to be downloaded via [Client.DownloadFile].
// The file can be downloaded for at least 1 hour after it is received; after
// that, request a fresh one with [Client.GetFile].
type File struct {
	fileMeta
	FilePath string `json:"file_path,omitempty"`

	Extra Extra `json:"-"`
}
