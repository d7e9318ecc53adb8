package outreach

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Mailer sends outreach email. Tests substitute a double.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESMailer sends email through AWS SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSESMailer creates a mailer using the default AWS credential chain.
func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, eris.Wrap(err, "mailer: load aws config")
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Send delivers a plain-text email via SES.
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &m.from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	})
	if err != nil {
		return eris.Wrap(err, "mailer: ses send")
	}

	zap.L().Info("mailer: email sent",
		zap.String("to", to),
		zap.Stringp("message_id", out.MessageId),
	)
	return nil
}
