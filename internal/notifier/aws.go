// internal/notifier/aws.go
package notifier

import (
	"context"
	"fmt"

	awsclient "dygs-jobs/internal/common/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSNotifier publishes the alert to a topic HR staff subscribe to.
type SNSNotifier struct {
	client   awsclient.SNSService
	topicARN string
}

func NewSNSNotifier(client awsclient.SNSService, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (n *SNSNotifier) Channel() string { return "sns" }

func (n *SNSNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(snsSubject(msg)),
		Message:  aws.String(msg.Text),
	})
	if err != nil {
		return fmt.Errorf("%w: sns publish: %v", ErrNotificationSendFailed, err)
	}
	return nil
}

// snsSubject is ASCII only; SNS rejects anything else in the subject.
func snsSubject(msg Message) string {
	return truncateRunes("DYGS new application "+msg.ApplicationID, subjectMaxRunes)
}

// SESNotifier e-mails the alert to the HR recipients.
type SESNotifier struct {
	client     awsclient.SESService
	from       string
	recipients []string
}

func NewSESNotifier(client awsclient.SESService, from string, recipients []string) *SESNotifier {
	return &SESNotifier{client: client, from: from, recipients: recipients}
}

func (n *SESNotifier) Channel() string { return "ses" }

func (n *SESNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: n.recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(n.from),
	})
	if err != nil {
		return fmt.Errorf("%w: ses send: %v", ErrNotificationSendFailed, err)
	}
	return nil
}
