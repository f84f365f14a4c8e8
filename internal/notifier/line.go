// internal/notifier/line.go
package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// LINE caps a text message at 5000 characters.
const lineMaxTextRunes = 5000

// LinePusher is the part of the LINE Messaging API client the notifier uses.
type LinePusher interface {
	PushMessage(pushMessageRequest *messaging_api.PushMessageRequest, xLineRetryKey string) (*messaging_api.PushMessageResponse, error)
}

type LineNotifier struct {
	client LinePusher
	to     string
}

// NewLineNotifier builds a push client for the channel access token. An
// empty endpoint keeps the SDK default.
func NewLineNotifier(accessToken, groupID, endpoint string, httpClient *http.Client) (*LineNotifier, error) {
	opts := []messaging_api.MessagingApiAPIOption{messaging_api.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, messaging_api.WithEndpoint(endpoint))
	}

	client, err := messaging_api.NewMessagingApiAPI(accessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create LINE client: %w", err)
	}
	return NewLineNotifierWithClient(client, groupID), nil
}

func NewLineNotifierWithClient(client LinePusher, groupID string) *LineNotifier {
	return &LineNotifier{client: client, to: groupID}
}

func (n *LineNotifier) Channel() string { return "line" }

// Notify pushes the text to the group. The SDK call is synchronous and
// bounded by the HTTP client timeout, so ctx is only checked up front.
func (n *LineNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationSendFailed, err)
	}

	_, err := n.client.PushMessage(&messaging_api.PushMessageRequest{
		To: n.to,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: truncateRunes(msg.Text, lineMaxTextRunes)},
		},
	}, "")
	if err != nil {
		return fmt.Errorf("%w: line push: %v", ErrNotificationSendFailed, err)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
