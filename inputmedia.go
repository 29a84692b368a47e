// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

// InputMedia is the content of a media message to be sent: a photo, video,
// animation, audio or document, together with its caption and metadata. It's
// implemented by [InputMediaPhoto], [InputMediaVideo], [InputMediaAnimation],
// [InputMediaAudio] and [InputMediaDocument].
//
// Construct values with the NewInputMediaX functions for fresh files, or the
// InputMediaXFrom functions to resend media the server already has. The From
// variants copy positional metadata (dimensions, duration, title) from the
// existing object; assign a field afterwards to override the copied value.
type InputMedia interface {
	// inputFiles returns the attachable file fields of the media,
	// primary file first, thumbnail (if any) second.
	inputFiles() []*InputFile
}

// inputCaption is the caption field group shared by all input media kinds.
type inputCaption struct {
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

// inputThumbnail is the thumbnail field group for input media kinds that
// accept a custom thumbnail. The server expects a fresh upload here;
// reference-mode files are passed through as-is.
type inputThumbnail struct {
	Thumbnail *InputFile `json:"thumbnail,omitempty"`
}

// InputMediaPhoto represents a photo to be sent.
type InputMediaPhoto struct {
	Type  string     `json:"type"` // always "photo"
	Media *InputFile `json:"media"`
	inputCaption
	HasSpoiler bool `json:"has_spoiler,omitempty"`
}

// NewInputMediaPhoto returns an [InputMediaPhoto] sending the given file.
func NewInputMediaPhoto(media *InputFile) *InputMediaPhoto {
	return &InputMediaPhoto{Type: "photo", Media: media}
}

// InputMediaPhotoFrom returns an [InputMediaPhoto] resending an existing
// photo by its file ID.
func InputMediaPhotoFrom(photo *PhotoSize) *InputMediaPhoto {
	return &InputMediaPhoto{Type: "photo", Media: FileID(photo.FileID)}
}

func (m *InputMediaPhoto) inputFiles() []*InputFile { return []*InputFile{m.Media} }

// InputMediaVideo represents a video to be sent.
type InputMediaVideo struct {
	Type  string     `json:"type"` // always "video"
	Media *InputFile `json:"media"`
	inputCaption
	inputThumbnail
	Width             int  `json:"width,omitempty"`
	Height            int  `json:"height,omitempty"`
	Duration          int  `json:"duration,omitempty"`
	SupportsStreaming bool `json:"supports_streaming,omitempty"`
	HasSpoiler        bool `json:"has_spoiler,omitempty"`
}

// NewInputMediaVideo returns an [InputMediaVideo] sending the given file.
func NewInputMediaVideo(media *InputFile) *InputMediaVideo {
	return &InputMediaVideo{Type: "video", Media: media}
}

// InputMediaVideoFrom returns an [InputMediaVideo] resending an existing
// video by its file ID, with its width, height and duration copied over.
func InputMediaVideoFrom(video *Video) *InputMediaVideo {
	return &InputMediaVideo{
		Type:     "video",
		Media:    FileID(video.FileID),
		Width:    video.Width,
		Height:   video.Height,
		Duration: video.Duration,
	}
}

func (m *InputMediaVideo) inputFiles() []*InputFile { return []*InputFile{m.Media, m.Thumbnail} }

// InputMediaAnimation represents an animation file (GIF or H.264/MPEG-4 AVC
// video without sound) to be sent.
type InputMediaAnimation struct {
	Type  string     `json:"type"` // always "animation"
	Media *InputFile `json:"media"`
	inputCaption
	inputThumbnail
	Width      int  `json:"width,omitempty"`
	Height     int  `json:"height,omitempty"`
	Duration   int  `json:"duration,omitempty"`
	HasSpoiler bool `json:"has_spoiler,omitempty"`
}

// NewInputMediaAnimation returns an [InputMediaAnimation] sending the given
// file.
func NewInputMediaAnimation(media *InputFile) *InputMediaAnimation {
	return &InputMediaAnimation{Type: "animation", Media: media}
}

// InputMediaAnimationFrom returns an [InputMediaAnimation] resending an
// existing animation by its file ID, with its width, height and duration
// copied over.
func InputMediaAnimationFrom(animation *Animation) *InputMediaAnimation {
	return &InputMediaAnimation{
		Type:     "animation",
		Media:    FileID(animation.FileID),
		Width:    animation.Width,
		Height:   animation.Height,
		Duration: animation.Duration,
	}
}

func (m *InputMediaAnimation) inputFiles() []*InputFile { return []*InputFile{m.Media, m.Thumbnail} }

// InputMediaAudio represents an audio file to be treated as music to be sent.
type InputMediaAudio struct {
	Type  string     `json:"type"` // always "audio"
	Media *InputFile `json:"media"`
	inputCaption
	inputThumbnail
	Duration  int    `json:"duration,omitempty"`
	Performer string `json:"performer,omitempty"`
	Title     string `json:"title,omitempty"`
}

// NewInputMediaAudio returns an [InputMediaAudio] sending the given file.
func NewInputMediaAudio(media *InputFile) *InputMediaAudio {
	return &InputMediaAudio{Type: "audio", Media: media}
}

// InputMediaAudioFrom returns an [InputMediaAudio] resending an existing
// audio file by its file ID, with its duration, performer and title copied
// over.
func InputMediaAudioFrom(audio *Audio) *InputMediaAudio {
	return &InputMediaAudio{
		Type:      "audio",
		Media:     FileID(audio.FileID),
		Duration:  audio.Duration,
		Performer: audio.Performer,
		Title:     audio.Title,
	}
}

func (m *InputMediaAudio) inputFiles() []*InputFile { return []*InputFile{m.Media, m.Thumbnail} }

// InputMediaDocument represents a general file to be sent.
type InputMediaDocument struct {
	Type  string     `json:"type"` // always "document"
	Media *InputFile `json:"media"`
	inputCaption
	inputThumbnail
	DisableContentTypeDetection bool `json:"disable_content_type_detection,omitempty"`
}

// NewInputMediaDocument returns an [InputMediaDocument] sending the given
// file.
func NewInputMediaDocument(media *InputFile) *InputMediaDocument {
	return &InputMediaDocument{Type: "document", Media: media}
}

// InputMediaDocumentFrom returns an [InputMediaDocument] resending an
// existing document by its file ID.
func InputMediaDocumentFrom(document *Document) *InputMediaDocument {
	return &InputMediaDocument{Type: "document", Media: FileID(document.FileID)}
}

func (m *InputMediaDocument) inputFiles() []*InputFile { return []*InputFile{m.Media, m.Thumbnail} }
