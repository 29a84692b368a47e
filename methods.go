// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.astrophena.name/tgbot/internal/request"
)

// ChatID identifies the target chat of a request: the unique chat ID in
// decimal form, or the @username of the target channel or supergroup.
type ChatID string

// GetMe returns basic information about the bot.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	return call[User](ctx, c, "getMe", nil)
}

// GetUpdatesParams are the parameters of [Client.GetUpdates].
type GetUpdatesParams struct {
	Offset         int64    `json:"offset,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	Timeout        int      `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates receives incoming updates using long polling.
func (c *Client) GetUpdates(ctx context.Context, params GetUpdatesParams) ([]Update, error) {
	updates, err := call[[]Update](ctx, c, "getUpdates", params)
	if err != nil || updates == nil {
		return nil, err
	}
	return *updates, nil
}

// SendOptions are the fields shared by every send method.
type SendOptions struct {
	ChatID              ChatID      `json:"chat_id"`
	MessageThreadID     int64       `json:"message_thread_id,omitempty"`
	DisableNotification bool        `json:"disable_notification,omitempty"`
	ProtectContent      bool        `json:"protect_content,omitempty"`
	ReplyToMessageID    int64       `json:"reply_to_message_id,omitempty"`
	ReplyMarkup         ReplyMarkup `json:"reply_markup,omitempty"`
}

// SendMessageParams are the parameters of [Client.SendMessage].
type SendMessageParams struct {
	SendOptions
	Text               string              `json:"text"`
	ParseMode          ParseMode           `json:"parse_mode,omitempty"`
	Entities           []MessageEntity     `json:"entities,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) (*Message, error) {
	return call[Message](ctx, c, "sendMessage", params)
}

// ForwardMessageParams are the parameters of [Client.ForwardMessage].
type ForwardMessageParams struct {
	ChatID              ChatID `json:"chat_id"`
	MessageThreadID     int64  `json:"message_thread_id,omitempty"`
	FromChatID          ChatID `json:"from_chat_id"`
	MessageID           int64  `json:"message_id"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
	ProtectContent      bool   `json:"protect_content,omitempty"`
}

// ForwardMessage forwards a message of any kind.
func (c *Client) ForwardMessage(ctx context.Context, params ForwardMessageParams) (*Message, error) {
	return call[Message](ctx, c, "forwardMessage", params)
}

// SendPhotoParams are the parameters of [Client.SendPhoto].
type SendPhotoParams struct {
	SendOptions
	Photo           *InputFile      `json:"photo"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

// SendPhoto sends a photo.
func (c *Client) SendPhoto(ctx context.Context, params SendPhotoParams) (*Message, error) {
	return call[Message](ctx, c, "sendPhoto", params)
}

// SendAudioParams are the parameters of [Client.SendAudio].
type SendAudioParams struct {
	SendOptions
	Audio           *InputFile      `json:"audio"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	Performer       string          `json:"performer,omitempty"`
	Title           string          `json:"title,omitempty"`
	Thumbnail       *InputFile      `json:"thumbnail,omitempty"`
}

// SendAudio sends an audio file to be displayed as playable music.
func (c *Client) SendAudio(ctx context.Context, params SendAudioParams) (*Message, error) {
	return call[Message](ctx, c, "sendAudio", params)
}

// SendDocumentParams are the parameters of [Client.SendDocument].
type SendDocumentParams struct {
	SendOptions
	Document                    *InputFile      `json:"document"`
	Thumbnail                   *InputFile      `json:"thumbnail,omitempty"`
	Caption                     string          `json:"caption,omitempty"`
	ParseMode                   ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities             []MessageEntity `json:"caption_entities,omitempty"`
	DisableContentTypeDetection bool            `json:"disable_content_type_detection,omitempty"`
}

// SendDocument sends a general file.
func (c *Client) SendDocument(ctx context.Context, params SendDocumentParams) (*Message, error) {
	return call[Message](ctx, c, "sendDocument", params)
}

// SendVideoParams are the parameters of [Client.SendVideo].
type SendVideoParams struct {
	SendOptions
	Video             *InputFile      `json:"video"`
	Duration          int             `json:"duration,omitempty"`
	Width             int             `json:"width,omitempty"`
	Height            int             `json:"height,omitempty"`
	Thumbnail         *InputFile      `json:"thumbnail,omitempty"`
	Caption           string          `json:"caption,omitempty"`
	ParseMode         ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities   []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler        bool            `json:"has_spoiler,omitempty"`
	SupportsStreaming bool            `json:"supports_streaming,omitempty"`
}

// SendVideo sends a video.
func (c *Client) SendVideo(ctx context.Context, params SendVideoParams) (*Message, error) {
	return call[Message](ctx, c, "sendVideo", params)
}

// SendAnimationParams are the parameters of [Client.SendAnimation].
type SendAnimationParams struct {
	SendOptions
	Animation       *InputFile      `json:"animation"`
	Duration        int             `json:"duration,omitempty"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
	Thumbnail       *InputFile      `json:"thumbnail,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

// SendAnimation sends an animation file (GIF or H.264/MPEG-4 AVC video
// without sound).
func (c *Client) SendAnimation(ctx context.Context, params SendAnimationParams) (*Message, error) {
	return call[Message](ctx, c, "sendAnimation", params)
}

// SendVoiceParams are the parameters of [Client.SendVoice].
type SendVoiceParams struct {
	SendOptions
	Voice           *InputFile      `json:"voice"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Duration        int             `json:"duration,omitempty"`
}

// SendVoice sends an audio file to be displayed as a playable voice message.
func (c *Client) SendVoice(ctx context.Context, params SendVoiceParams) (*Message, error) {
	return call[Message](ctx, c, "sendVoice", params)
}

// SendLocationParams are the parameters of [Client.SendLocation].
type SendLocationParams struct {
	SendOptions
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
	LivePeriod           int     `json:"live_period,omitempty"`
	Heading              int     `json:"heading,omitempty"`
	ProximityAlertRadius int     `json:"proximity_alert_radius,omitempty"`
}

// SendLocation sends a point on the map.
func (c *Client) SendLocation(ctx context.Context, params SendLocationParams) (*Message, error) {
	return call[Message](ctx, c, "sendLocation", params)
}

// SendVenueParams are the parameters of [Client.SendVenue].
type SendVenueParams struct {
	SendOptions
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Title           string  `json:"title"`
	Address         string  `json:"address"`
	FoursquareID    string  `json:"foursquare_id,omitempty"`
	FoursquareType  string  `json:"foursquare_type,omitempty"`
	GooglePlaceID   string  `json:"google_place_id,omitempty"`
	GooglePlaceType string  `json:"google_place_type,omitempty"`
}

// SendVenue sends information about a venue.
func (c *Client) SendVenue(ctx context.Context, params SendVenueParams) (*Message, error) {
	return call[Message](ctx, c, "sendVenue", params)
}

// SendContactParams are the parameters of [Client.SendContact].
type SendContactParams struct {
	SendOptions
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	VCard       string `json:"vcard,omitempty"`
}

// SendContact sends a phone contact.
func (c *Client) SendContact(ctx context.Context, params SendContactParams) (*Message, error) {
	return call[Message](ctx, c, "sendContact", params)
}

// SendChatActionParams are the parameters of [Client.SendChatAction].
type SendChatActionParams struct {
	ChatID          ChatID     `json:"chat_id"`
	MessageThreadID int64      `json:"message_thread_id,omitempty"`
	Action          ChatAction `json:"action"`
}

// SendChatAction tells the user that something is happening on the bot's
// side. The status is shown for 5 seconds or less.
func (c *Client) SendChatAction(ctx context.Context, params SendChatActionParams) error {
	return callBool(ctx, c, "sendChatAction", params)
}

// SendMediaGroupParams are the parameters of [Client.SendMediaGroup].
type SendMediaGroupParams struct {
	ChatID              ChatID       `json:"chat_id"`
	MessageThreadID     int64        `json:"message_thread_id,omitempty"`
	Media               []InputMedia `json:"media"`
	DisableNotification bool         `json:"disable_notification,omitempty"`
	ProtectContent      bool         `json:"protect_content,omitempty"`
	ReplyToMessageID    int64        `json:"reply_to_message_id,omitempty"`
}

// SendMediaGroup sends a group of photos, videos, documents or audios as an
// album. Documents and audios can't be mixed with media of other types.
func (c *Client) SendMediaGroup(ctx context.Context, params SendMediaGroupParams) ([]Message, error) {
	messages, err := call[[]Message](ctx, c, "sendMediaGroup", params)
	if err != nil || messages == nil {
		return nil, err
	}
	return *messages, nil
}

// EditMessageTextParams are the parameters of [Client.EditMessageText].
// Either InlineMessageID, or the ChatID and MessageID pair must be set.
type EditMessageTextParams struct {
	ChatID             ChatID              `json:"chat_id,omitempty"`
	MessageID          int64               `json:"message_id,omitempty"`
	InlineMessageID    string              `json:"inline_message_id,omitempty"`
	Text               string              `json:"text"`
	ParseMode          ParseMode           `json:"parse_mode,omitempty"`
	Entities           []MessageEntity     `json:"entities,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`
	ReplyMarkup        ReplyMarkup         `json:"reply_markup,omitempty"`
}

// EditMessageText edits the text of a message. The returned message is nil
// when editing an inline message.
func (c *Client) EditMessageText(ctx context.Context, params EditMessageTextParams) (*Message, error) {
	return callEdit(ctx, c, "editMessageText", params)
}

// EditMessageMediaParams are the parameters of [Client.EditMessageMedia].
// Either InlineMessageID, or the ChatID and MessageID pair must be set.
type EditMessageMediaParams struct {
	ChatID          ChatID      `json:"chat_id,omitempty"`
	MessageID       int64       `json:"message_id,omitempty"`
	InlineMessageID string      `json:"inline_message_id,omitempty"`
	Media           InputMedia  `json:"media"`
	ReplyMarkup     ReplyMarkup `json:"reply_markup,omitempty"`
}

// EditMessageMedia edits the media content of a message. The returned message
// is nil when editing an inline message.
func (c *Client) EditMessageMedia(ctx context.Context, params EditMessageMediaParams) (*Message, error) {
	return callEdit(ctx, c, "editMessageMedia", params)
}

// callEdit handles edit methods, whose result is either the edited message or
// the boolean true for inline messages.
func callEdit(ctx context.Context, c *Client, method string, args any) (*Message, error) {
	raw, err := c.invoke(ctx, method, args)
	if err != nil {
		return nil, err
	}
	if string(raw) == "true" {
		return nil, nil
	}
	msg, err := Decode[Message](raw)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding result: %w", method, err)
	}
	return msg, nil
}

// DeleteMessageParams are the parameters of [Client.DeleteMessage].
type DeleteMessageParams struct {
	ChatID    ChatID `json:"chat_id"`
	MessageID int64  `json:"message_id"`
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, params DeleteMessageParams) error {
	return callBool(ctx, c, "deleteMessage", params)
}

// AnswerCallbackQueryParams are the parameters of
// [Client.AnswerCallbackQuery].
type AnswerCallbackQueryParams struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

// AnswerCallbackQuery sends an answer to a callback query sent from an inline
// keyboard.
func (c *Client) AnswerCallbackQuery(ctx context.Context, params AnswerCallbackQueryParams) error {
	return callBool(ctx, c, "answerCallbackQuery", params)
}

// SetMyCommands changes the list of the bot's commands.
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	args := struct {
		Commands []BotCommand `json:"commands"`
	}{commands}
	return callBool(ctx, c, "setMyCommands", args)
}

// GetMyCommands returns the current list of the bot's commands.
func (c *Client) GetMyCommands(ctx context.Context) ([]BotCommand, error) {
	commands, err := call[[]BotCommand](ctx, c, "getMyCommands", nil)
	if err != nil || commands == nil {
		return nil, err
	}
	return *commands, nil
}

// GetFile returns basic information about a file, including the path used by
// [Client.DownloadFile] to fetch its contents.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	args := struct {
		FileID string `json:"file_id"`
	}{fileID}
	return call[File](ctx, c, "getFile", args)
}

// DownloadFile downloads the contents of a file previously looked up with
// [Client.GetFile].
func (c *Client) DownloadFile(ctx context.Context, f *File) ([]byte, error) {
	if f == nil || f.FilePath == "" {
		return nil, errors.New("downloading file: no file path, call GetFile first")
	}
	b, err := request.Make[request.Bytes](ctx, request.Params{
		Method:     http.MethodGet,
		URL:        c.baseURL() + "/file/bot" + c.Token + "/" + f.FilePath,
		HTTPClient: c.HTTPClient,
		Scrubber:   c.scrubber(),
	})
	if err != nil {
		return nil, fmt.Errorf("downloading file %q: %w", f.FileID, err)
	}
	return b, nil
}
