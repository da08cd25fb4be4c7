package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gazetted/internal/domain"
	"gazetted/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

var subjects = map[domain.ProcessStatus]string{
	domain.ProcessStatusSuccess: "Gazette processing complete",
	domain.ProcessStatusWarning: "Gazette processing finished with warnings",
	domain.ProcessStatusError:   "Gazette processing failed",
}

func (s *sesSender) SendProcessingCompleteEmail(ctx context.Context, toEmail, toName, documentLink string, status domain.ProcessStatus) error {
	subject, ok := subjects[status]
	if !ok {
		subject = subjects[domain.ProcessStatusError]
	}

	htmlBody := buildProcessingCompleteHTML(toName, documentLink, status)
	textBody := fmt.Sprintf("Hi %s,\n\nYour gazette finished processing with status: %s.\n\nReview it here:\n%s\n\nGazette Ingestion", toName, status, documentLink)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildProcessingCompleteHTML(name, documentLink string, status domain.ProcessStatus) string {
	color := "#16A34A"
	switch status {
	case domain.ProcessStatusWarning:
		color = "#D97706"
	case domain.ProcessStatusError:
		color = "#DC2626"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Gazette processing: %s</h2>
  <p>Hi %s,</p>
  <p>Your gazette finished processing with status <strong style="color: %s;">%s</strong>.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Gazette</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Gazette Ingestion</p>
</body>
</html>`, status, name, color, status, documentLink, documentLink)
}
