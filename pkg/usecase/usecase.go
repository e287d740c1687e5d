package usecase

import (
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/service/token"
)

// UseCases bundles the application use cases behind one constructor
type UseCases struct {
	Auth *AuthUseCase
	Chat *ChatUseCase
}

// Option is a functional option for UseCases
type Option func(*UseCases)

// WithCatalog enables the similarity lookup on the chat flow
func WithCatalog(searcher interfaces.CatalogSearcher) Option {
	return func(uc *UseCases) {
		uc.Chat.catalog = searcher
	}
}

// WithNotifier enables order dispatch on the chat flow
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.Chat.notifier = notifier
	}
}

// WithReplyTimeout bounds each model completion
func WithReplyTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		if d > 0 {
			uc.Chat.timeout = d
		}
	}
}

// WithSystemPrompt replaces the built-in persona prompt
func WithSystemPrompt(prompt string) Option {
	return func(uc *UseCases) {
		if prompt != "" {
			uc.Chat.systemPrompt = prompt
		}
	}
}

func New(repo interfaces.Repository, tokens *token.Manager, chatClient interfaces.ChatClient, history interfaces.HistoryStore, opts ...Option) *UseCases {
	uc := &UseCases{
		Auth: NewAuthUseCase(repo, tokens),
		Chat: NewChatUseCase(chatClient, history),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
