package config

import (
	"log/slog"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/service/token"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for credential signing
type Auth struct {
	jwtSecret string
	tokenTTL  time.Duration
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Secret key for signing session tokens (required)",
			Required:    true,
			Sources:     cli.EnvVars("HUTARKA_JWT_SECRET"),
			Destination: &a.jwtSecret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Usage:       "Session token lifetime",
			Value:       720 * time.Hour,
			Sources:     cli.EnvVars("HUTARKA_TOKEN_TTL"),
			Destination: &a.tokenTTL,
		},
	}
}

// LogAttrs returns log attributes for the auth configuration. The signing
// secret is never logged.
func (a *Auth) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Duration("token_ttl", a.tokenTTL),
	}
}

// Configure builds the token manager from the configured flags
func (a *Auth) Configure() (*token.Manager, error) {
	mgr, err := token.New(a.jwtSecret, a.tokenTTL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize token manager")
	}
	return mgr, nil
}
