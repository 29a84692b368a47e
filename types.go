// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"strconv"
	"time"
)

// ParseMode selects how message text is parsed for formatting entities.
type ParseMode string

// Available parse modes.
const (
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
	ParseModeMarkdown   ParseMode = "Markdown" // legacy mode
)

// ChatType is the type of a chat.
type ChatType string

// Available chat types.
const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// ChatAction is an activity indicator shown to the other party while a
// request is in progress.
type ChatAction string

// Available chat actions.
const (
	ChatActionTyping          ChatAction = "typing"
	ChatActionUploadPhoto     ChatAction = "upload_photo"
	ChatActionRecordVideo     ChatAction = "record_video"
	ChatActionUploadVideo     ChatAction = "upload_video"
	ChatActionRecordVoice     ChatAction = "record_voice"
	ChatActionUploadVoice     ChatAction = "upload_voice"
	ChatActionUploadDocument  ChatAction = "upload_document"
	ChatActionChooseSticker   ChatAction = "choose_sticker"
	ChatActionFindLocation    ChatAction = "find_location"
	ChatActionRecordVideoNote ChatAction = "record_video_note"
	ChatActionUploadVideoNote ChatAction = "upload_video_note"
)

// User represents a Telegram user or bot.
type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (u *User) Ident() string { return strconv.FormatInt(u.ID, 10) }

// Chat represents a chat.
type Chat struct {
	ID        int64      `json:"id"`
	Type      ChatType   `json:"type"`
	Title     string     `json:"title,omitempty"`
	Username  string     `json:"username,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	IsForum   bool       `json:"is_forum,omitempty"`
	Photo     *ChatPhoto `json:"photo,omitempty"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (c *Chat) Ident() string { return strconv.FormatInt(c.ID, 10) }

// ChatPhoto represents a chat photo.
type ChatPhoto struct {
	SmallFileID       string `json:"small_file_id"`
	SmallFileUniqueID string `json:"small_file_unique_id"`
	BigFileID         string `json:"big_file_id"`
	BigFileUniqueID   string `json:"big_file_unique_id"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (p *ChatPhoto) Ident() string { return p.SmallFileUniqueID + "\x00" + p.BigFileUniqueID }

// Message represents a message.
type Message struct {
	ID              int64    `json:"message_id"`
	MessageThreadID int64    `json:"message_thread_id,omitempty"`
	From            *User    `json:"from,omitempty"`
	SenderChat      *Chat    `json:"sender_chat,omitempty"`
	Date            int64    `json:"date"`
	Chat            *Chat    `json:"chat"`
	ForwardFrom     *User    `json:"forward_from,omitempty"`
	ForwardFromChat *Chat    `json:"forward_from_chat,omitempty"`
	ForwardDate     int64    `json:"forward_date,omitempty"`
	ReplyToMessage  *Message `json:"reply_to_message,omitempty"`
	ViaBot          *User    `json:"via_bot,omitempty"`
	EditDate        int64    `json:"edit_date,omitempty"`
	MediaGroupID    string   `json:"media_group_id,omitempty"`
	AuthorSignature string   `json:"author_signature,omitempty"`

	Text               string              `json:"text,omitempty"`
	Entities           []MessageEntity     `json:"entities,omitempty"`
	LinkPreviewOptions *LinkPreviewOptions `json:"link_preview_options,omitempty"`

	Animation *Animation  `json:"animation,omitempty"`
	Audio     *Audio      `json:"audio,omitempty"`
	Document  *Document   `json:"document,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
	Sticker   *Sticker    `json:"sticker,omitempty"`
	Video     *Video      `json:"video,omitempty"`
	VideoNote *VideoNote  `json:"video_note,omitempty"`
	Voice     *Voice      `json:"voice,omitempty"`

	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`

	Contact  *Contact  `json:"contact,omitempty"`
	Location *Location `json:"location,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`

	NewChatMembers []User   `json:"new_chat_members,omitempty"`
	LeftChatMember *User    `json:"left_chat_member,omitempty"`
	PinnedMessage  *Message `json:"pinned_message,omitempty"`

	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface. A message is identified by its
// chat and message ID pair.
func (m *Message) Ident() string {
	var chat int64
	if m.Chat != nil {
		chat = m.Chat.ID
	}
	return strconv.FormatInt(chat, 10) + ":" + strconv.FormatInt(m.ID, 10)
}

// Time returns the message date as a [time.Time].
func (m *Message) Time() time.Time { return time.Unix(m.Date, 0).UTC() }

// MessageID represents a unique message identifier.
type MessageID struct {
	ID int64 `json:"message_id"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (m *MessageID) Ident() string { return strconv.FormatInt(m.ID, 10) }

// MessageEntity represents one special entity in a text message: a hashtag, a
// username, a URL and so on.
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`

	Extra Extra `json:"-"`
}

// LinkPreviewOptions describes the options used for link preview generation.
type LinkPreviewOptions struct {
	IsDisabled       bool   `json:"is_disabled,omitempty"`
	URL              string `json:"url,omitempty"`
	PreferSmallMedia bool   `json:"prefer_small_media,omitempty"`
	PreferLargeMedia bool   `json:"prefer_large_media,omitempty"`
	ShowAboveText    bool   `json:"show_above_text,omitempty"`

	Extra Extra `json:"-"`
}

// Location represents a point on the map.
type Location struct {
	Longitude            float64 `json:"longitude"`
	Latitude             float64 `json:"latitude"`
	HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
	LivePeriod           int     `json:"live_period,omitempty"`
	Heading              int     `json:"heading,omitempty"`
	ProximityAlertRadius int     `json:"proximity_alert_radius,omitempty"`

	Extra Extra `json:"-"`
}

// Venue represents a venue.
type Venue struct {
	Location        *Location `json:"location"`
	Title           string    `json:"title"`
	Address         string    `json:"address"`
	FoursquareID    string    `json:"foursquare_id,omitempty"`
	FoursquareType  string    `json:"foursquare_type,omitempty"`
	GooglePlaceID   string    `json:"google_place_id,omitempty"`
	GooglePlaceType string    `json:"google_place_type,omitempty"`

	Extra Extra `json:"-"`
}

// Contact represents a phone contact.
type Contact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	VCard       string `json:"vcard,omitempty"`

	Extra Extra `json:"-"`
}

// Birthdate describes the birthdate of a user.
type Birthdate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year,omitempty"`

	Extra Extra `json:"-"`
}

// Update represents an incoming update. At most one of the optional fields
// is present in any given update.
type Update struct {
	ID                int64          `json:"update_id"`
	Message           *Message       `json:"message,omitempty"`
	EditedMessage     *Message       `json:"edited_message,omitempty"`
	ChannelPost       *Message       `json:"channel_post,omitempty"`
	EditedChannelPost *Message       `json:"edited_channel_post,omitempty"`
	CallbackQuery     *CallbackQuery `json:"callback_query,omitempty"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (u *Update) Ident() string { return strconv.FormatInt(u.ID, 10) }

// CallbackQuery represents an incoming callback query from a callback button
// in an inline keyboard.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            *User    `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance,omitempty"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`

	Extra Extra `json:"-"`
}

// Ident implements the [Identifier] interface.
func (q *CallbackQuery) Ident() string { return q.ID }

// ReplyMarkup is implemented by the keyboard and reply control types that can
// be attached to an outgoing message: [InlineKeyboardMarkup],
// [ReplyKeyboardMarkup], [ReplyKeyboardRemove] and [ForceReply].
type ReplyMarkup interface {
	replyMarkup()
}

// InlineKeyboardMarkup represents an inline keyboard that appears right next
// to the message it belongs to.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`

	Extra Extra `json:"-"`
}

func (*InlineKeyboardMarkup) replyMarkup() {}

// InlineKeyboardButton represents one button of an inline keyboard.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`

	Extra Extra `json:"-"`
}

// KeyboardButton represents one button of a reply keyboard.
type KeyboardButton struct {
	Text            string `json:"text"`
	RequestContact  bool   `json:"request_contact,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`

	Extra Extra `json:"-"`
}

// ReplyKeyboardMarkup represents a custom keyboard with reply options.
type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	IsPersistent          bool               `json:"is_persistent,omitempty"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`

	Extra Extra `json:"-"`
}

func (*ReplyKeyboardMarkup) replyMarkup() {}

// ReplyKeyboardRemove requests clients to remove the current custom keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"` // always true
	Selective      bool `json:"selective,omitempty"`

	Extra Extra `json:"-"`
}

func (*ReplyKeyboardRemove) replyMarkup() {}

// ForceReply requests clients to display a reply interface to the user.
type ForceReply struct {
	ForceReply            bool   `json:"force_reply"` // always true
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`

	Extra Extra `json:"-"`
}

func (*ForceReply) replyMarkup() {}

// BotCommand represents a bot command.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`

	Extra Extra `json:"-"`
}

// ResponseParameters contains information about why a request was
// unsuccessful.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`

	Extra Extra `json:"-"`
}
