package model_test

import (
	"testing"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestExtractVectorQuery(t *testing.T) {
	t.Run("extracts payload and trims whitespace", func(t *testing.T) {
		query, ok := model.ExtractVectorQuery("Сейчас посмотрю {{VECTOR_QUERY: кофемашина }} в каталоге")
		gt.Bool(t, ok).True()
		gt.Value(t, query).Equal("кофемашина")
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		query, ok := model.ExtractVectorQuery("{{vector_query: чайник}}")
		gt.Bool(t, ok).True()
		gt.Value(t, query).Equal("чайник")
	})

	t.Run("matches across lines", func(t *testing.T) {
		query, ok := model.ExtractVectorQuery("{{VECTOR_QUERY: красный\nчайник}}")
		gt.Bool(t, ok).True()
		gt.Value(t, query).Equal("красный\nчайник")
	})

	t.Run("stops at first closing delimiter", func(t *testing.T) {
		query, ok := model.ExtractVectorQuery("{{VECTOR_QUERY: утюг}} и ещё текст }}")
		gt.Bool(t, ok).True()
		gt.Value(t, query).Equal("утюг")
	})

	t.Run("returns first directive when several are present", func(t *testing.T) {
		query, ok := model.ExtractVectorQuery("{{VECTOR_QUERY: первый}} {{VECTOR_QUERY: второй}}")
		gt.Bool(t, ok).True()
		gt.Value(t, query).Equal("первый")
	})

	t.Run("reports absence", func(t *testing.T) {
		_, ok := model.ExtractVectorQuery("обычный ответ без директивы")
		gt.Bool(t, ok).False()
	})
}

func TestStripVectorQuery(t *testing.T) {
	t.Run("removes all directives", func(t *testing.T) {
		out := model.StripVectorQuery("До {{VECTOR_QUERY: один}} середина {{VECTOR_QUERY: два}} после")
		gt.Value(t, out).Equal("До  середина  после")
	})

	t.Run("keeps text without directives unchanged", func(t *testing.T) {
		out := model.StripVectorQuery("ничего менять не нужно")
		gt.Value(t, out).Equal("ничего менять не нужно")
	})
}
