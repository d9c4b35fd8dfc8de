package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
)

const (
	// NoDataMessage is returned without a model call when the result is empty.
	NoDataMessage = "No data found for the prompt."
	// ComposeFailureMessage is the "always answer something" floor when the
	// composing model call itself fails.
	ComposeFailureMessage = "I apologize, but I encountered an error processing your request. Please try again or rephrase your question."

	downloadMarker = "Download URL:"
)

// AnswerService turns a tabular result into a natural-language answer. Empty
// and oversized results short-circuit to fixed messages and never reach the
// model; otherwise the model sees at most sampleRows rows plus the true total.
type AnswerService struct {
	logger     zerolog.Logger
	llm        Completer
	sampleRows int
	maxRows    int
}

func NewAnswerService(logger zerolog.Logger, llm Completer, sampleRows, maxRows int) *AnswerService {
	return &AnswerService{logger: logger, llm: llm, sampleRows: sampleRows, maxRows: maxRows}
}

func (slf *AnswerService) Compose(ctx context.Context, question string, result *models.TabularResult, sqlText string, history models.ChatHistory, exportURL string) string {
	if result == nil || result.RowCount == 0 {
		return NoDataMessage
	}
	if result.RowCount > slf.maxRows {
		return fmt.Sprintf("Too many records found for the prompt (exceeds %d records). Please refine your query.", slf.maxRows)
	}

	sample := result.Rows
	if len(sample) > slf.sampleRows {
		sample = sample[:slf.sampleRows]
	}
	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		slf.logger.Error().Err(err).Msg("failed to serialize result sample")
		return ComposeFailureMessage
	}

	prompt := buildAnswerPrompt(question, sqlText, string(sampleJSON), result.Columns, result.RowCount, history, exportURL)
	reply, err := slf.llm.Complete(ctx, answerSystemPrompt, prompt)
	if err != nil {
		slf.logger.Error().Err(err).Msg("answer composition failed")
		reply = ComposeFailureMessage
	}

	answer := strings.TrimSpace(reply)

	// The caller parses the address out of the answer, so its presence and
	// shape are guaranteed here rather than trusted to the model.
	if exportURL != "" && !strings.Contains(answer, downloadMarker) {
		answer += fmt.Sprintf("\n\n%s %s", downloadMarker, exportURL)
	}

	return answer
}

// ComposeDatabaseError explains a failed execution to the user in place of an
// answer; the error never propagates past the composer.
func (slf *AnswerService) ComposeDatabaseError(err error) string {
	return fmt.Sprintf("I encountered an error executing your query: %v", err)
}
