package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const orderSubject = "Новый заказ"

// Notifier delivers order records over SMTP. It is the only outbound
// channel for orders; delivery failure is reported to the caller and
// never retried here.
type Notifier struct {
	addr     string
	auth     smtp.Auth
	sender   string
	receiver string
}

var _ interfaces.Notifier = &Notifier{}

// Config holds SMTP connection settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Receiver string
}

func New(cfg Config) (*Notifier, error) {
	if cfg.Host == "" {
		return nil, goerr.New("SMTP host is required")
	}
	if cfg.Sender == "" || cfg.Receiver == "" {
		return nil, goerr.New("SMTP sender and receiver are required")
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Notifier{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, port),
		auth:     auth,
		sender:   cfg.Sender,
		receiver: cfg.Receiver,
	}, nil
}

// NotifyOrder sends the order as a plain-text message, one field per line.
func (x *Notifier) NotifyOrder(ctx context.Context, order model.Order) error {
	body := strings.Join(order.Lines(), "\r\n")

	var sb strings.Builder
	sb.WriteString("From: " + x.sender + "\r\n")
	sb.WriteString("To: " + x.receiver + "\r\n")
	sb.WriteString("Subject: " + orderSubject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	if err := smtp.SendMail(x.addr, x.auth, x.sender, []string{x.receiver}, []byte(sb.String())); err != nil {
		return goerr.Wrap(err, "failed to send order email", goerr.V("addr", x.addr))
	}

	logging.From(ctx).Info("order dispatched", "receiver", x.receiver)
	return nil
}
