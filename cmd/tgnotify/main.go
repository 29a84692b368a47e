// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Tgnotify sends a Telegram message from the command line.
//
// # Usage
//
//	$ TGBOT_TOKEN=... tgnotify -chat <chat ID> <message>
//
// Messages longer than the per-message limit are split and sent in
// order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.astrophena.name/tgbot"
)

func main() {
	if err := run(os.Args[1:], os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "tgnotify: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("tgnotify", flag.ExitOnError)
	var (
		chat      = fs.String("chat", "", "send to this `chat ID` or @username")
		parseMode = fs.String("parse-mode", "", "parse message as this `mode` (MarkdownV2 or HTML)")
	)
	fs.Parse(args)

	token := os.Getenv("TGBOT_TOKEN")
	if token == "" {
		return errors.New("TGBOT_TOKEN environment variable is not set")
	}
	if *chat == "" {
		return errors.New("the -chat flag is required")
	}

	// The message comes from arguments, or from stdin when there are none.
	text := ""
	if fs.NArg() > 0 {
		for i, arg := range fs.Args() {
			if i > 0 {
				text += " "
			}
			text += arg
		}
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading message from stdin: %w", err)
		}
		text = string(b)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c := &tgbot.Client{Token: token}
	for _, chunk := range tgbot.SplitMessage(text) {
		_, err := c.SendMessage(ctx, tgbot.SendMessageParams{
			SendOptions: tgbot.SendOptions{ChatID: tgbot.ChatID(*chat)},
			Text:        chunk,
			ParseMode:   tgbot.ParseMode(*parseMode),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
