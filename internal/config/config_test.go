package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"WashroomMonitor/internal/cache"
	"WashroomMonitor/internal/report"

	"github.com/alicebob/miniredis/v2"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestNewAppConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CORS_ORIGINS", "DISPLAY_TIMEZONE", "STORAGE_TIMEZONE", "JWT_KEY",
		"TOKEN_TTL", "AUTH_REQUIRED", "REPORT_CACHE_TTL", "REMINDER_INTERVAL", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := NewAppConfig(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.DisplayTimezone)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	assert.Zero(t, cfg.ReminderInterval)
	assert.False(t, cfg.AuthRequired)
	assert.NotEmpty(t, cfg.JWTKey)
}

func TestNewAppConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://dash.example.com")
	t.Setenv("JWT_KEY", "k")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("REMINDER_INTERVAL", "15m")
	t.Setenv("STORAGE_TIMEZONE", "UTC")

	cfg, err := NewAppConfig(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, []byte("k"), cfg.JWTKey)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, 15*time.Minute, cfg.ReminderInterval)

	c, err := NewClock(cfg)
	require.NoError(t, err)
	assert.Equal(t, "UTC", c.Storage().String())
	assert.Equal(t, "Asia/Kuala_Lumpur", c.Display().String())
}

func TestNewAppConfigRejectsBadValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "a day")
	_, err := NewAppConfig(zap.NewNop())
	assert.ErrorContains(t, err, "TOKEN_TTL")

	t.Setenv("TOKEN_TTL", "")
	t.Setenv("AUTH_REQUIRED", "maybe")
	_, err = NewAppConfig(zap.NewNop())
	assert.ErrorContains(t, err, "AUTH_REQUIRED")

	_, err = NewClock(&AppConfig{DisplayTimezone: "Mars/Olympus", StorageTimezone: "Local"})
	assert.ErrorContains(t, err, "DISPLAY_TIMEZONE")
}

func TestNewMongoDBConfig(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	_, err := NewMongoDBConfig()
	assert.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "")
	cfg, err := NewMongoDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "washroom", cfg.Database)
}

func TestNewNotifierSelectsChannel(t *testing.T) {
	log := zap.NewNop()

	n, err := NewNotifier(&NotifierConfig{Channel: ChannelLog}, log)
	require.NoError(t, err)
	assert.Equal(t, ChannelLog, n.Channel())
	id, err := n.Send(context.Background(), "clean 1F Male")
	require.NoError(t, err)
	assert.Len(t, id, 36)

	n, err = NewNotifier(&NotifierConfig{Channel: ChannelTwilio, TwilioAccountSID: "AC1", TwilioAuthToken: "t",
		TwilioFrom: "whatsapp:+14155238886", CleanerPhone: "whatsapp:+60123456789"}, log)
	require.NoError(t, err)
	assert.IsType(t, &TwilioNotifier{}, n)

	n, err = NewNotifier(&NotifierConfig{Channel: ChannelEmail, ResendAPIKey: "re_1", FromEmail: "a@b.c", CleanerEmail: "d@e.f"}, log)
	require.NoError(t, err)
	assert.IsType(t, &EmailNotifier{}, n)

	_, err = NewNotifier(&NotifierConfig{Channel: ChannelTwilio}, log)
	assert.Error(t, err)
	_, err = NewNotifier(&NotifierConfig{Channel: ChannelEmail}, log)
	assert.Error(t, err)
	_, err = NewNotifier(&NotifierConfig{Channel: "pigeon"}, log)
	assert.Error(t, err)
}

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
	sid    *string
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &twilioApi.ApiV2010Message{Sid: f.sid}, nil
}

func TestTwilioNotifier(t *testing.T) {
	sid := "SM123"
	msgs := &fakeMessages{sid: &sid}
	n := &TwilioNotifier{messages: msgs, from: "whatsapp:+1", to: "whatsapp:+60"}

	got, err := n.Send(context.Background(), "Please clean 2F Female")
	require.NoError(t, err)
	assert.Equal(t, "SM123", got)
	assert.Equal(t, "whatsapp:+1", *msgs.params.From)
	assert.Equal(t, "whatsapp:+60", *msgs.params.To)
	assert.Equal(t, "Please clean 2F Female", *msgs.params.Body)

	msgs.sid = nil
	_, err = n.Send(context.Background(), "x")
	assert.Error(t, err)

	msgs.err = errors.New("status: 401")
	_, err = n.Send(context.Background(), "x")
	assert.ErrorContains(t, err, "401")
}

type fakeEmails struct {
	req *resend.SendEmailRequest
	err error
}

func (f *fakeEmails) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestEmailNotifier(t *testing.T) {
	emails := &fakeEmails{}
	n := &EmailNotifier{emails: emails, from: "alerts@example.com", to: "cleaner@example.com", subject: "Action"}

	id, err := n.Send(context.Background(), "line <1>\nline 2")
	require.NoError(t, err)
	assert.Equal(t, "em_1", id)
	assert.Equal(t, []string{"cleaner@example.com"}, emails.req.To)
	assert.Equal(t, "<p>line &lt;1&gt;<br>line 2</p>", emails.req.Html)

	emails.err = errors.New("rate limited")
	_, err = n.Send(context.Background(), "x")
	assert.Error(t, err)
}

func TestNewReportCache(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	c, err := NewReportCache(lc, &AppConfig{ReportCacheTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, report.NopCache{}, c)

	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	c, err = NewReportCache(lc, &AppConfig{RedisURL: "redis://" + s.Addr(), ReportCacheTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &cache.Redis{}, c)

	lc.RequireStart()
	lc.RequireStop()
}
