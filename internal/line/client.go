// Package line implements a minimal client for the LINE Messaging API:
// replying to webhook events and pushing messages to a user.
package line

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

type Client struct {
	httpClient *resty.Client
}

func NewClient(channelToken string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.line.me/v2/bot")
	client.SetHeader("Authorization", "Bearer "+channelToken)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{httpClient: client}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Reply sends a text reply for a webhook event's reply token.
func (client *Client) Reply(ctx context.Context, replyToken, text string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(replyRequest{
			ReplyToken: replyToken,
			Messages:   []textMessage{{Type: "text", Text: text}},
		}).
		Post("/message/reply")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return nil
}

// Push sends a text message directly to a user.
func (client *Client) Push(ctx context.Context, userID, text string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(pushRequest{
			To:       userID,
			Messages: []textMessage{{Type: "text", Text: text}},
		}).
		Post("/message/push")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return nil
}
