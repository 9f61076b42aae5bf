package config

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"WashroomMonitor/internal/notification"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const (
	ChannelTwilio = "twilio"
	ChannelEmail  = "email"
	ChannelLog    = "log"
)

// NotifierConfig selects and configures the outbound message channel.
type NotifierConfig struct {
	Channel string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	CleanerPhone     string

	ResendAPIKey string
	FromEmail    string
	CleanerEmail string
	EmailSubject string
}

func NewNotifierConfig() *NotifierConfig {
	return &NotifierConfig{
		Channel:          strings.ToLower(getEnv("NOTIFIER_CHANNEL", ChannelTwilio)),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		CleanerPhone:     os.Getenv("CLEANER_PHONE_NUMBER"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		FromEmail:        os.Getenv("FROM_EMAIL"),
		CleanerEmail:     os.Getenv("CLEANER_EMAIL"),
		EmailSubject:     getEnv("NOTIFICATION_EMAIL_SUBJECT", "Washroom action required"),
	}
}

// NewNotifier builds the notifier for the configured channel.
func NewNotifier(cfg *NotifierConfig, log *zap.Logger) (notification.Notifier, error) {
	switch cfg.Channel {
	case ChannelTwilio:
		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFrom == "" || cfg.CleanerPhone == "" {
			return nil, errors.New("twilio notifier needs TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_WHATSAPP_NUMBER and CLEANER_PHONE_NUMBER")
		}
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
		log.Info("notifier ready", zap.String("channel", ChannelTwilio))
		return &TwilioNotifier{messages: client.Api, from: cfg.TwilioFrom, to: cfg.CleanerPhone}, nil
	case ChannelEmail:
		if cfg.ResendAPIKey == "" || cfg.FromEmail == "" || cfg.CleanerEmail == "" {
			return nil, errors.New("email notifier needs RESEND_API_KEY, FROM_EMAIL and CLEANER_EMAIL")
		}
		client := resend.NewClient(cfg.ResendAPIKey)
		log.Info("notifier ready", zap.String("channel", ChannelEmail))
		return &EmailNotifier{emails: client.Emails, from: cfg.FromEmail, to: cfg.CleanerEmail, subject: cfg.EmailSubject}, nil
	case ChannelLog:
		log.Warn("notifier writes to the log only; nothing is delivered")
		return &LogNotifier{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown NOTIFIER_CHANNEL %q", cfg.Channel)
	}
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends WhatsApp messages through Twilio.
type TwilioNotifier struct {
	messages messageCreator
	from     string
	to       string
}

func (n *TwilioNotifier) Channel() string { return ChannelTwilio }

func (n *TwilioNotifier) Send(_ context.Context, text string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(n.from)
	params.SetTo(n.to)
	params.SetBody(text)

	resp, err := n.messages.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("create twilio message: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", errors.New("twilio returned no message sid")
	}
	return *resp.Sid, nil
}

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier mails the maintenance contact through Resend.
type EmailNotifier struct {
	emails  emailSender
	from    string
	to      string
	subject string
}

func (n *EmailNotifier) Channel() string { return ChannelEmail }

func (n *EmailNotifier) Send(ctx context.Context, text string) (string, error) {
	resp, err := n.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: n.subject,
		Html:    "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>",
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	return resp.Id, nil
}

// LogNotifier only logs the message. It is meant for local development.
type LogNotifier struct {
	log *zap.Logger
}

func (n *LogNotifier) Channel() string { return ChannelLog }

func (n *LogNotifier) Send(_ context.Context, text string) (string, error) {
	id := uuid.NewString()
	n.log.Info("action message", zap.String("id", id), zap.String("text", text))
	return id, nil
}
