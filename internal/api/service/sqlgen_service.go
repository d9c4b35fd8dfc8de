package service

import (
	"context"

	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// FallbackQuery is the deterministic safe statement substituted when synthesis
// fails at any stage. It is valid SQL and is executed like any other output.
const FallbackQuery = "SELECT TOP 10 * FROM AdyenPaymentTransaction;"

type SQLGenService struct {
	logger zerolog.Logger
	llm    Completer
	cache  *pkg.Cache
}

func NewSQLGenService(logger zerolog.Logger, llm Completer, cache *pkg.Cache) *SQLGenService {
	return &SQLGenService{logger: logger, llm: llm, cache: cache}
}

// GenerateQuery synthesizes a summary-oriented statement in two stages: the
// question is first restated against the fixed schema (preserving every filter
// the user gave), then translated into a single read-only statement.
func (slf *SQLGenService) GenerateQuery(ctx context.Context, question string, history models.ChatHistory) models.GeneratedQuery {
	cacheKey := pkg.CacheKey("sqlgen", question, history.PromptFormat())
	var cached models.GeneratedQuery
	if slf.cache.Get(cacheKey, &cached) {
		return cached
	}

	rephrased, err := slf.llm.Complete(ctx, rephraseSystemPrompt, buildRephrasePrompt(question, history))
	if err != nil {
		slf.logger.Error().Err(err).Msg("question rephrase failed, using fallback query")
		return models.GeneratedQuery{SQL: FallbackQuery, Fallback: true}
	}

	raw, err := slf.llm.Complete(ctx, sqlSystemPrompt, buildSQLPrompt(rephrased, history))
	if err != nil {
		slf.logger.Error().Err(err).Msg("sql generation failed, using fallback query")
		return models.GeneratedQuery{SQL: FallbackQuery, Fallback: true}
	}

	result := slf.gate(raw)
	if !result.Fallback {
		slf.cache.Set(cacheKey, result)
	}
	return result
}

// GenerateListQuery synthesizes an itemized-rows statement in a single stage;
// list requests skip the summary rephrase on purpose.
func (slf *SQLGenService) GenerateListQuery(ctx context.Context, question string, history models.ChatHistory) models.GeneratedQuery {
	cacheKey := pkg.CacheKey("sqlgen-list", question, history.PromptFormat())
	var cached models.GeneratedQuery
	if slf.cache.Get(cacheKey, &cached) {
		return cached
	}

	raw, err := slf.llm.Complete(ctx, sqlSystemPrompt, buildListSQLPrompt(question, history))
	if err != nil {
		slf.logger.Error().Err(err).Msg("list sql generation failed, using fallback query")
		return models.GeneratedQuery{SQL: FallbackQuery, Fallback: true}
	}

	result := slf.gate(raw)
	if !result.Fallback {
		slf.cache.Set(cacheKey, result)
	}
	return result
}

// gate strips fence decoration and refuses anything that is not a single
// read-only SELECT, substituting the fallback statement instead.
func (slf *SQLGenService) gate(raw string) models.GeneratedQuery {
	stmt := pkg.CleanSQL(raw)
	if !pkg.IsReadOnly(stmt) {
		slf.logger.Warn().Str("sql", stmt).Msg("generated statement is not a read-only select, using fallback query")
		return models.GeneratedQuery{SQL: FallbackQuery, Fallback: true}
	}
	return models.GeneratedQuery{SQL: stmt}
}
