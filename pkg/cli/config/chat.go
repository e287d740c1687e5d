package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/service/llm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Chat holds CLI flags for the chat completion endpoint
type Chat struct {
	apiKey     string
	baseURL    string
	model      string
	promptPath string
	timeout    time.Duration
}

// Flags returns CLI flags for chat configuration
func (c *Chat) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "chat-api-key",
			Usage:       "API key for the chat completion endpoint (required)",
			Required:    true,
			Sources:     cli.EnvVars("HUTARKA_CHAT_API_KEY"),
			Destination: &c.apiKey,
		},
		&cli.StringFlag{
			Name:        "chat-base-url",
			Usage:       "Base URL of the OpenAI-compatible chat endpoint",
			Value:       "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
			Sources:     cli.EnvVars("HUTARKA_CHAT_BASE_URL"),
			Destination: &c.baseURL,
		},
		&cli.StringFlag{
			Name:        "chat-model",
			Usage:       "Chat model name",
			Value:       "qwen-plus",
			Sources:     cli.EnvVars("HUTARKA_CHAT_MODEL"),
			Destination: &c.model,
		},
		&cli.StringFlag{
			Name:        "chat-system-prompt",
			Usage:       "Path to a file replacing the built-in system prompt",
			Sources:     cli.EnvVars("HUTARKA_CHAT_SYSTEM_PROMPT"),
			Destination: &c.promptPath,
		},
		&cli.DurationFlag{
			Name:        "chat-timeout",
			Usage:       "Per-completion timeout before the fallback reply is used",
			Value:       35 * time.Second,
			Sources:     cli.EnvVars("HUTARKA_CHAT_TIMEOUT"),
			Destination: &c.timeout,
		},
	}
}

// LogAttrs returns log attributes for the chat configuration. The API key
// is never logged.
func (c *Chat) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("base_url", c.baseURL),
		slog.String("model", c.model),
		slog.Duration("timeout", c.timeout),
	}
}

// Timeout returns the per-completion deadline
func (c *Chat) Timeout() time.Duration {
	return c.timeout
}

// SystemPrompt loads the prompt override file. Returns an empty string when
// no override is configured.
func (c *Chat) SystemPrompt() (string, error) {
	if c.promptPath == "" {
		return "", nil
	}

	data, err := os.ReadFile(c.promptPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read system prompt file", goerr.V("path", c.promptPath))
	}

	return string(data), nil
}

// Configure creates the chat completion client from the configured flags
func (c *Chat) Configure() (*llm.Client, error) {
	return llm.New(llm.Config{
		APIKey:  c.apiKey,
		BaseURL: c.baseURL,
		Model:   c.model,
	})
}
