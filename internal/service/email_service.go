package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional email via Amazon SES. With no from
// address configured the service is disabled and every send is a logged
// no-op, so local setups need no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "Reset Your Word Craft Arena Password"
	textBody := fmt.Sprintf(
		"Hi %s,\n\nSomeone asked to reset the password for your Word Craft Arena account. "+
			"If that was you, open the link below within the next hour:\n\n%s\n\n"+
			"If you didn't ask for this, you can ignore this email.\n",
		toName, resetLink,
	)
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Someone asked to reset the password for your Word Craft Arena account.
If that was you, click the link below within the next hour:</p>
<p><a href="%s">Reset your password</a></p>
<p>If you didn't ask for this, you can ignore this email.</p>`,
		toName, resetLink,
	)

	return s.send(ctx, toEmail, subject, textBody, htmlBody)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, textBody, htmlBody string) error {
	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}
