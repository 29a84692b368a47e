// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.astrophena.name/tgbot/internal/request"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	sendRetryLimit = 5 // N attempts to retry a rate-limited request
)

// Client is a Telegram Bot API client. The zero value is not usable; Token
// must be set.
type Client struct {
	// Token is the bot token used for authentication.
	Token string
	// BaseURL is the API server URL. If empty, the production server is used.
	BaseURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
	// Logger is an optional logger for request diagnostics. If not provided,
	// slog.Default will be used.
	Logger *slog.Logger
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages. If not provided, the bot token is scrubbed.
	Scrubber *strings.Replacer

	sleepFunc func(context.Context, time.Duration) bool // test seam
}

// Error is an error response of the Bot API.
type Error struct {
	// Code is the error code reported by the API.
	Code int
	// Description is the human-readable description of the error.
	Description string
	// Parameters optionally tells how to handle the error, e.g. how long to
	// wait when rate limited.
	Parameters *ResponseParameters
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("telegram: %d %s", e.Code, e.Description)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return defaultBaseURL
}

func (c *Client) slog() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) scrubber() *strings.Replacer {
	if c.Scrubber != nil {
		return c.Scrubber
	}
	return strings.NewReplacer(c.Token, "[EXPUNGED]")
}

func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	if c.sleepFunc != nil {
		return c.sleepFunc(ctx, d)
	}
	return sleep(ctx, d)
}

// envelope is the response wrapper every Bot API call returns.
type envelope struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// call makes a Bot API request and decodes the result into Response,
// retrying when rate limited. args is a params struct or nil.
func call[Response any](ctx context.Context, c *Client, method string, args any) (*Response, error) {
	raw, err := c.invoke(ctx, method, args)
	if err != nil {
		return nil, err
	}
	resp, err := Decode[Response](raw)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding result: %w", method, err)
	}
	return resp, nil
}

// callBool makes a Bot API request whose result is the boolean true on
// success.
func callBool(ctx context.Context, c *Client, method string, args any) error {
	raw, err := c.invoke(ctx, method, args)
	if err != nil {
		return err
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return fmt.Errorf("%s: decoding result: %w", method, err)
	}
	if !ok {
		return fmt.Errorf("%s: the API reported failure without an error", method)
	}
	return nil
}

func (c *Client) invoke(ctx context.Context, method string, args any) (json.RawMessage, error) {
	params, err := paramsOf(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	var (
		raw     envelope
		lastErr error
	)
	for range sendRetryLimit {
		raw, lastErr = c.makeRequest(ctx, method, params)
		if lastErr == nil {
			return raw.Result, nil
		}

		retryable, wait := isRateLimited(lastErr)
		if !retryable {
			break
		}

		c.slog().Warn("request rate limited, waiting", slog.String("method", method), slog.Duration("wait", wait))
		if !c.sleep(ctx, wait) {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%s: %w", method, toAPIError(lastErr))
}

// makeRequest sends a single request. Whenever any parameter references an
// upload, the whole request becomes multipart/form-data; otherwise it's a
// JSON body.
func (c *Client) makeRequest(ctx context.Context, method string, params []*Param) (envelope, error) {
	rp := request.Params{
		Method:     http.MethodPost,
		URL:        c.baseURL() + "/bot" + c.Token + "/" + method,
		HTTPClient: c.HTTPClient,
		Scrubber:   c.scrubber(),
	}

	var files map[string]request.File
	for _, p := range params {
		for key, f := range p.MultipartData() {
			if files == nil {
				files = make(map[string]request.File)
			}
			files[key] = request.File(f)
		}
	}

	if files == nil {
		body := make(map[string]any, len(params))
		for _, p := range params {
			body[p.Name] = p.Value()
		}
		if len(body) > 0 {
			rp.Body = body
		}
	} else {
		form := make(map[string]string, len(params))
		for _, p := range params {
			if v, ok := p.JSONValue(); ok {
				form[p.Name] = v
			}
		}
		rp.Form = form
		rp.Files = files
	}

	resp, err := request.Make[envelope](ctx, rp)
	if err != nil {
		return envelope{}, err
	}
	if !resp.OK {
		return envelope{}, &Error{
			Code:        resp.ErrorCode,
			Description: resp.Description,
			Parameters:  resp.Parameters,
		}
	}
	return resp, nil
}

// toAPIError converts a failed request into an [*Error] when the response
// body carries the API error envelope, and returns the error unchanged
// otherwise.
func toAPIError(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var statusErr *request.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	var resp envelope
	if json.Unmarshal(statusErr.Body, &resp) != nil || resp.OK || resp.ErrorCode == 0 {
		return err
	}
	return &Error{
		Code:        resp.ErrorCode,
		Description: resp.Description,
		Parameters:  resp.Parameters,
	}
}

func isRateLimited(err error) (bool, time.Duration) {
	var apiErr *Error
	if errors.As(toAPIError(err), &apiErr) &&
		apiErr.Code == http.StatusTooManyRequests &&
		apiErr.Parameters != nil && apiErr.Parameters.RetryAfter > 0 {
		return true, time.Duration(apiErr.Parameters.RetryAfter) * time.Second
	}
	return false, 0
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
