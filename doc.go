// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package tgbot is a typed client for the Telegram Bot API.

It mirrors the API's vocabulary as Go structs, handles the JSON and
multipart/form-data encoding of requests (including file uploads via
"attach://" references), and exposes a thin method wrapper per API call:

	c := &tgbot.Client{Token: os.Getenv("TELEGRAM_TOKEN")}
	msg, err := c.SendMessage(ctx, tgbot.SendMessageParams{
		SendOptions: tgbot.SendOptions{ChatID: "@mychannel"},
		Text:        "hello",
	})

Files are sent with [InputFile]: construct one from bytes, a reader or a
local path to upload new content, or from a file ID or URL to reference
content the server already has. A request carrying at least one upload
anywhere in its parameters is sent as multipart/form-data; everything else
goes as a JSON body.

The package doesn't dispatch updates or run webhook servers; it only makes
requests. Poll [Client.GetUpdates] or feed webhook payloads to [Decode]
yourself.
*/
package tgbot
