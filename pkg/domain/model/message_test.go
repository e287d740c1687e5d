package model_test

import (
	"testing"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestTruncateMessages(t *testing.T) {
	msgs := []model.Message{
		model.NewUserMessage("1"),
		model.NewAssistantMessage("2"),
		model.NewUserMessage("3"),
		model.NewAssistantMessage("4"),
	}

	t.Run("keeps most recent entries in order", func(t *testing.T) {
		out := model.TruncateMessages(msgs, 2)
		gt.Array(t, out).Length(2)
		gt.Value(t, out[0].Content).Equal("3")
		gt.Value(t, out[1].Content).Equal("4")
	})

	t.Run("returns input unchanged within limit", func(t *testing.T) {
		out := model.TruncateMessages(msgs, 10)
		gt.Array(t, out).Length(4)
	})

	t.Run("non-positive limit disables truncation", func(t *testing.T) {
		out := model.TruncateMessages(msgs, 0)
		gt.Array(t, out).Length(4)
	})
}
