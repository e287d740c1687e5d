package config

import (
	"log/slog"

	"github.com/hutarka-ai/hutarka/pkg/service/mail"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// SMTP holds CLI flags for order notification delivery
type SMTP struct {
	host     string
	port     int64
	username string
	password string
	sender   string
	receiver string
}

// Flags returns CLI flags for SMTP configuration
func (s *SMTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host (order notification is disabled when unset)",
			Sources:     cli.EnvVars("HUTARKA_SMTP_HOST"),
			Destination: &s.host,
		},
		&cli.Int64Flag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Value:       587,
			Sources:     cli.EnvVars("HUTARKA_SMTP_PORT"),
			Destination: &s.port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP username",
			Sources:     cli.EnvVars("HUTARKA_SMTP_USERNAME"),
			Destination: &s.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Sources:     cli.EnvVars("HUTARKA_SMTP_PASSWORD"),
			Destination: &s.password,
		},
		&cli.StringFlag{
			Name:        "smtp-sender",
			Usage:       "Sender address for order notifications",
			Sources:     cli.EnvVars("HUTARKA_SMTP_SENDER"),
			Destination: &s.sender,
		},
		&cli.StringFlag{
			Name:        "smtp-receiver",
			Usage:       "Receiver address for order notifications",
			Sources:     cli.EnvVars("HUTARKA_SMTP_RECEIVER"),
			Destination: &s.receiver,
		},
	}
}

// LogAttrs returns log attributes for the SMTP configuration. Credentials
// are never logged.
func (s *SMTP) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("host", s.host),
		slog.Int64("port", s.port),
		slog.String("receiver", s.receiver),
	}
}

// Configure creates the order notifier from the configured flags.
// Returns nil if host is not configured (order dispatch will be disabled).
func (s *SMTP) Configure() (*mail.Notifier, error) {
	if s.host == "" {
		return nil, nil
	}

	notifier, err := mail.New(mail.Config{
		Host:     s.host,
		Port:     int(s.port),
		Username: s.username,
		Password: s.password,
		Sender:   s.sender,
		Receiver: s.receiver,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize SMTP notifier")
	}

	return notifier, nil
}
