/*
Package notification 邮件通知。

One message per call, sent synchronously; no retry and no queue. Any
failure comes back wrapping ErrMessaging.
*/
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrMessaging = errors.New("messaging failure")

// Mail 一封 HTML 邮件
type Mail struct {
	Subject   string
	Body      string
	Recipient string
}

// Sender is implemented by *mail.Client.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type EmailSender struct {
	client Sender
	from   string
}

func NewEmailSender(client Sender, from string) *EmailSender {
	return &EmailSender{client: client, from: from}
}

// NewSMTPClient 按配置创建 SMTP 客户端；用户名为空时不做认证
func NewSMTPClient(cfg config.MailConfig) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: smtp client: %w", ErrMessaging, err)
	}
	return client, nil
}

func (s *EmailSender) SendEmail(ctx context.Context, m Mail) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("%w: from %q: %w", ErrMessaging, s.from, err)
	}
	if err := msg.To(m.Recipient); err != nil {
		return fmt.Errorf("%w: recipient %q: %w", ErrMessaging, m.Recipient, err)
	}
	msg.SetCharset(mail.CharsetUTF8)
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.Body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn("Mail send failed",
			zap.String("recipient", m.Recipient),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrMessaging, err)
	}

	logger.FromContext(ctx).Debug("Mail sent", zap.String("recipient", m.Recipient))
	return nil
}
