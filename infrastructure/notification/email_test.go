package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSendEmail(t *testing.T) {
	fake := &fakeSender{}
	sender := NewEmailSender(fake, "noreply@jado.example")

	err := sender.SendEmail(context.Background(), Mail{
		Subject:   "새 댓글",
		Body:      "<p>hello</p>",
		Recipient: "kim@example.com",
	})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)

	to, err := fake.sent[0].GetToString()
	require.NoError(t, err)
	assert.Equal(t, []string{"<kim@example.com>"}, to)
	assert.Equal(t, []string{"새 댓글"}, fake.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSendEmailFailures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		sender := NewEmailSender(&fakeSender{err: errors.New("connection refused")}, "noreply@jado.example")
		err := sender.SendEmail(context.Background(), Mail{Subject: "s", Body: "b", Recipient: "kim@example.com"})
		assert.ErrorIs(t, err, ErrMessaging)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("bad recipient", func(t *testing.T) {
		fake := &fakeSender{}
		sender := NewEmailSender(fake, "noreply@jado.example")
		err := sender.SendEmail(context.Background(), Mail{Subject: "s", Body: "b", Recipient: "not an address"})
		assert.ErrorIs(t, err, ErrMessaging)
		assert.Empty(t, fake.sent)
	})
}

func TestNewSMTPClient(t *testing.T) {
	client, err := NewSMTPClient(config.MailConfig{Host: "smtp.example.com", Port: 587, Username: "jado", Password: "pw"})
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = NewSMTPClient(config.MailConfig{Host: "", Port: 587})
	assert.ErrorIs(t, err, ErrMessaging)
}
