package usecase

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/system.md
var defaultSystemPrompt string

const (
	fallbackReply     = "⏰ Модель не ответила вовремя. Попробуйте чуть позже."
	nothingFound      = "(ничего не найдено)"
	orderSentSuffix   = "\n\n✅ Заказ успешно отправлен!"
	orderFailedSuffix = "\n\n❌ Ошибка при отправке заказа."

	catalogTopK         = 3
	defaultReplyTimeout = 35 * time.Second
)

// ChatUseCase orchestrates one message exchange: history assembly, model
// completion, the optional catalog second pass, and order dispatch.
type ChatUseCase struct {
	chatClient   interfaces.ChatClient
	history      interfaces.HistoryStore
	catalog      interfaces.CatalogSearcher
	notifier     interfaces.Notifier
	systemPrompt string
	timeout      time.Duration
}

func NewChatUseCase(chatClient interfaces.ChatClient, history interfaces.HistoryStore) *ChatUseCase {
	return &ChatUseCase{
		chatClient:   chatClient,
		history:      history,
		systemPrompt: defaultSystemPrompt,
		timeout:      defaultReplyTimeout,
	}
}

// Handle produces the assistant reply for one user message. The flow is
// deliberately forgiving: history load failures, catalog failures and
// notification failures degrade the reply but never fail the exchange.
// Only an empty message is rejected.
func (uc *ChatUseCase) Handle(ctx context.Context, id types.UserID, message string) (string, error) {
	logger := logging.From(ctx)

	message = strings.TrimSpace(message)
	if message == "" {
		return "", goerr.Wrap(types.ErrEmptyMessage, "message must not be empty")
	}

	hist, err := uc.history.Get(ctx, id)
	if err != nil {
		logger.Warn("failed to load history, continuing without it", "user_id", id, "error", err.Error())
		hist = nil
	}

	msgs := make([]model.Message, 0, len(hist)+2)
	msgs = append(msgs, model.NewSystemMessage(uc.systemPrompt))
	msgs = append(msgs, hist...)
	msgs = append(msgs, model.NewUserMessage(message))

	reply := uc.complete(ctx, msgs)

	if query, ok := model.ExtractVectorQuery(reply); ok {
		if uc.catalog != nil {
			reply = uc.secondPass(ctx, msgs, reply, message, query)
		} else {
			// never leak the directive to the user when lookup is disabled
			reply = strings.TrimSpace(model.StripVectorQuery(reply))
		}
	}

	if err := uc.history.Append(ctx, id, model.NewUserMessage(message), model.NewAssistantMessage(reply)); err != nil {
		logger.Warn("failed to record history", "user_id", id, "error", err.Error())
	}

	if order := model.ParseOrder(ctx, reply); order != nil && uc.notifier != nil {
		if err := uc.notifier.NotifyOrder(ctx, order); err != nil {
			logger.Error("failed to dispatch order", "user_id", id, "error", err.Error())
			reply += orderFailedSuffix
		} else {
			reply += orderSentSuffix
		}
	}

	return reply, nil
}

// complete runs one bounded model completion. On timeout or model error it
// returns the fallback reply so the conversation keeps moving.
func (uc *ChatUseCase) complete(ctx context.Context, msgs []model.Message) string {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.chatClient.Complete(ctx, msgs)
	if err != nil {
		logging.From(ctx).Warn("model completion failed, using fallback", "error", err.Error())
		return fallbackReply
	}

	return reply
}

// secondPass resolves a lookup directive: the catalog results are fed back
// to the model together with the original question, and the refined answer
// replaces the draft. The draft stays in play as an assistant turn so the
// model sees its own intermediate reasoning.
func (uc *ChatUseCase) secondPass(ctx context.Context, msgs []model.Message, draft, message, query string) string {
	logger := logging.From(ctx)
	logger.Info("resolving catalog lookup", "query", query)

	snippets, err := uc.catalog.Search(ctx, query, catalogTopK)
	if err != nil {
		logger.Warn("catalog lookup failed", "query", query, "error", err.Error())
		snippets = nil
	}

	found := nothingFound
	if len(snippets) > 0 {
		found = strings.Join(snippets, "\n")
	}

	clean := strings.TrimSpace(model.StripVectorQuery(draft))
	followUp := append(msgs,
		model.NewAssistantMessage(clean),
		model.NewUserMessage("Вот информация из базы:\n"+found+"\n\n"+message),
	)

	return uc.complete(ctx, followUp)
}
