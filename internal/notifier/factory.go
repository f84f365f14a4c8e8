// internal/notifier/factory.go
package notifier

import (
	"context"
	"fmt"

	awsclient "dygs-jobs/internal/common/aws"
	"dygs-jobs/internal/common/config"
	httpclient "dygs-jobs/internal/common/http"
)

// New builds the notifier for notifications.channel.
func New(ctx context.Context, cfg config.NotificationConfig) (Notifier, error) {
	switch cfg.Channel {
	case config.ChannelLINE:
		client := httpclient.NewClient(config.GetDuration(cfg.Timeout))
		line, err := NewLineNotifier(cfg.LINE.ChannelAccessToken, cfg.LINE.GroupID, cfg.LINE.Endpoint, client.HTTPClient())
		if err != nil {
			return nil, err
		}
		return line, nil

	case config.ChannelSNS:
		client, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return NewSNSNotifier(client, cfg.AWS.SNS.TopicARN), nil

	case config.ChannelSES:
		client, err := awsclient.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return NewSESNotifier(client, cfg.AWS.SES.FromEmail, cfg.AWS.SES.Recipients), nil

	case config.ChannelNone, "":
		return Noop{}, nil

	default:
		return nil, fmt.Errorf("unknown notification channel: %s", cfg.Channel)
	}
}
