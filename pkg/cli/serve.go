package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hutarka-ai/hutarka/pkg/cli/config"
	httpctrl "github.com/hutarka-ai/hutarka/pkg/controller/http"
	"github.com/hutarka-ai/hutarka/pkg/service/catalog"
	"github.com/hutarka-ai/hutarka/pkg/usecase"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var origins []string
	var authCfg config.Auth
	var chatCfg config.Chat
	var geminiCfg config.Gemini
	var historyCfg config.History
	var repoCfg config.Repository
	var smtpCfg config.SMTP

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("HUTARKA_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origins",
			Usage:       "CORS allowed origins (all origins when unset)",
			Sources:     cli.EnvVars("HUTARKA_ALLOWED_ORIGINS"),
			Destination: &origins,
		},
	}

	// Add shared config flags
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, chatCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, historyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, smtpCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			tokens, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure credential signing")
			}

			chatClient, err := chatCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure chat client")
			}

			historyStore, err := historyCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure history store")
			}

			ucOpts := []usecase.Option{
				usecase.WithReplyTimeout(chatCfg.Timeout()),
			}

			prompt, err := chatCfg.SystemPrompt()
			if err != nil {
				return goerr.Wrap(err, "failed to load system prompt")
			}
			if prompt != "" {
				ucOpts = append(ucOpts, usecase.WithSystemPrompt(prompt))
			}

			embeddingClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding client")
			}
			if embeddingClient != nil {
				catalogSvc, err := catalog.New(embeddingClient, repo)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize catalog service")
				}
				ucOpts = append(ucOpts, usecase.WithCatalog(catalogSvc))
				logging.Default().Info("Catalog lookup enabled")
			} else {
				logging.Default().Info("Embedding client not configured, catalog lookup disabled")
			}

			notifier, err := smtpCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure SMTP notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Order notification enabled")
			} else {
				logging.Default().Info("SMTP not configured, order notification disabled")
			}

			uc := usecase.New(repo, tokens, chatClient, historyStore, ucOpts...)

			var httpOpts []httpctrl.Options
			if len(origins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(origins))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
