package llm

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client talks to an OpenAI-compatible chat completion endpoint. The
// upstream model (Qwen via the DashScope compatible-mode gateway by
// default) is selected by base URL and model name.
type Client struct {
	client openai.Client
	model  string
}

var _ interfaces.ChatClient = &Client{}

// Config holds connection settings for the chat endpoint
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, goerr.New("chat API key is required")
	}
	if cfg.Model == "" {
		return nil, goerr.New("chat model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Complete sends the ordered turns to the model and returns the generated
// text. The caller bounds the call with a context deadline.
func (x *Client) Complete(ctx context.Context, msgs []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    x.model,
		Messages: convertMessages(msgs),
	}

	resp, err := x.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", goerr.Wrap(err, "chat completion failed", goerr.V("model", x.model))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("chat completion returned no choices", goerr.V("model", x.model))
	}

	return resp.Choices[0].Message.Content, nil
}

func convertMessages(msgs []model.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case types.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case types.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}
	return converted
}
