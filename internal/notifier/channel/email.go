// internal/notifier/channel/email.go
package channel

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsclient "admissions-notifier/internal/common/aws"
	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/models"
)

// EmailConfig holds the email channel settings.
type EmailConfig struct {
	Enabled   bool
	FromEmail string
}

// EmailDispatcher delivers the rendered email subject and body over SES.
type EmailDispatcher struct {
	config *EmailConfig
	client awsclient.SESAPI
	logger logger.Logger
}

func NewEmailDispatcher(config *EmailConfig, client awsclient.SESAPI, log logger.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"channel": models.ChannelEmail}),
	}
}

func (d *EmailDispatcher) Channel() models.Channel {
	return models.ChannelEmail
}

func (d *EmailDispatcher) Send(ctx context.Context, n *models.Notification) models.DeliveryOutcome {
	if !d.config.Enabled {
		return failure(models.ChannelEmail, "email channel disabled")
	}
	if n.RecipientEmail == "" {
		return failure(models.ChannelEmail, "recipient has no email address")
	}

	_, err := d.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.RecipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(n.EmailSubject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(n.Message)},
			},
		},
		Source: aws.String(d.config.FromEmail),
	})
	if err != nil {
		d.logger.Error("email send failed", map[string]interface{}{
			"notificationId": n.ID,
			"recipientId":    n.RecipientID,
			"error":          err,
		})
		return failure(models.ChannelEmail, err.Error())
	}

	return success(models.ChannelEmail)
}
