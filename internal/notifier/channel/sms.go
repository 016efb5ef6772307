// internal/notifier/channel/sms.go
package channel

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	awsclient "admissions-notifier/internal/common/aws"
	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/models"
)

// SMSConfig holds the SMS channel settings.
type SMSConfig struct {
	Enabled  bool
	SenderID string
}

// SMSDispatcher delivers the rendered SMS text over SNS.
type SMSDispatcher struct {
	config *SMSConfig
	client awsclient.SNSAPI
	logger logger.Logger
}

func NewSMSDispatcher(config *SMSConfig, client awsclient.SNSAPI, log logger.Logger) *SMSDispatcher {
	return &SMSDispatcher{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"channel": models.ChannelSMS}),
	}
}

func (d *SMSDispatcher) Channel() models.Channel {
	return models.ChannelSMS
}

func (d *SMSDispatcher) Send(ctx context.Context, n *models.Notification) models.DeliveryOutcome {
	if !d.config.Enabled {
		return failure(models.ChannelSMS, "sms channel disabled")
	}
	if n.RecipientPhone == "" {
		return failure(models.ChannelSMS, "recipient has no phone number")
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(n.RecipientPhone),
		Message:     aws.String(n.SMSText),
	}
	if d.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(d.config.SenderID),
			},
		}
	}

	if _, err := d.client.Publish(ctx, input); err != nil {
		d.logger.Error("SMS send failed", map[string]interface{}{
			"notificationId": n.ID,
			"recipientId":    n.RecipientID,
			"error":          err,
		})
		return failure(models.ChannelSMS, err.Error())
	}

	return success(models.ChannelSMS)
}
