// Package mailer sends booking confirmations. Provider "ses" delivers through
// AWS SES, "noop" only logs.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"devEvents/internal/config"
	"devEvents/internal/lib/logger/sl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

func New(log *slog.Logger, cfg config.Mailer) (Sender, error) {
	switch cfg.Provider {
	case ProviderSES:
		if cfg.FromAddress == "" || cfg.SES.Region == "" {
			return nil, errors.New("mailer: ses requires from address and region")
		}

		awsCfg := aws.Config{
			Region: cfg.SES.Region,
		}
		if cfg.SES.AccessKeyID != "" {
			awsCfg.Credentials = aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
			)
		}

		return newSES(log, ses.NewFromConfig(awsCfg), cfg), nil
	case ProviderNoop, "":
		return &Noop{log: log}, nil
	default:
		log.Warn("unknown mail provider, using noop", slog.String("provider", cfg.Provider))
		return &Noop{log: log}, nil
	}
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SES struct {
	log    *slog.Logger
	client sesAPI
	source string
}

func newSES(log *slog.Logger, client sesAPI, cfg config.Mailer) *SES {
	source := cfg.FromAddress
	if cfg.FromName != "" {
		source = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}

	return &SES{
		log:    log,
		client: client,
		source: source,
	}
}

func (s *SES) Send(ctx context.Context, msg Message) error {
	const op = "mailer.SES.Send"

	input := &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: utf8(msg.Subject),
			Body:    &types.Body{},
		},
	}
	if msg.HTML != "" {
		input.Message.Body.Html = utf8(msg.HTML)
	}
	if msg.Text != "" {
		input.Message.Body.Text = utf8(msg.Text)
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("%s: failed to send email via SES: %w", op, err)
	}

	s.log.Debug("email sent", slog.String("op", op), slog.String("message_id", aws.ToString(out.MessageId)))

	return nil
}

func utf8(s string) *types.Content {
	return &types.Content{
		Data:    aws.String(s),
		Charset: aws.String("UTF-8"),
	}
}

type Noop struct {
	log *slog.Logger
}

func (n *Noop) Send(_ context.Context, msg Message) error {
	n.log.Info("email skipped", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}

// Notifier renders and sends booking confirmations.
type Notifier struct {
	log      *slog.Logger
	sender   Sender
	renderer *Renderer
}

func NewNotifier(log *slog.Logger, sender Sender) *Notifier {
	return &Notifier{
		log:      log,
		sender:   sender,
		renderer: NewRenderer(),
	}
}

type BookingData struct {
	Email      string
	EventTitle string
	EventSlug  string
	Date       string
	Time       string
	Venue      string
	Location   string
}

func (n *Notifier) BookingConfirmed(ctx context.Context, data BookingData) error {
	const op = "mailer.Notifier.BookingConfirmed"

	subject, html, text, err := n.renderer.Render("booking_confirmed", data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = n.sender.Send(ctx, Message{To: data.Email, Subject: subject, HTML: html, Text: text}); err != nil {
		n.log.Warn("failed to send booking confirmation", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
