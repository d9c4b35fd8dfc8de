package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"reconagent/internal/api/models"
)

func newTestAnswer(llm *stubCompleter) *AnswerService {
	return NewAnswerService(zerolog.Nop(), llm, 50, 10000)
}

func TestCompose_EmptyResultShortCircuits(t *testing.T) {
	llm := &stubCompleter{reply: "should never be used"}
	svc := newTestAnswer(llm)

	got := svc.Compose(context.Background(), "settled today?", &models.TabularResult{}, "SELECT 1", nil, "")
	assert.Equal(t, NoDataMessage, got)
	assert.Zero(t, llm.callCount)

	got = svc.Compose(context.Background(), "settled today?", nil, "SELECT 1", nil, "")
	assert.Equal(t, NoDataMessage, got)
	assert.Zero(t, llm.callCount)
}

func TestCompose_OversizedResultShortCircuits(t *testing.T) {
	llm := &stubCompleter{reply: "should never be used"}
	svc := newTestAnswer(llm)

	got := svc.Compose(context.Background(), "everything", &models.TabularResult{RowCount: 10001}, "SELECT 1", nil, "")
	assert.Equal(t, "Too many records found for the prompt (exceeds 10000 records). Please refine your query.", got)
	assert.Zero(t, llm.callCount)
}

func TestCompose_AppendsDownloadURL(t *testing.T) {
	llm := &stubCompleter{reply: "There were 3 settled transactions."}
	svc := newTestAnswer(llm)

	result := &models.TabularResult{
		Columns:  []string{"AMOUNT"},
		Rows:     []map[string]any{{"AMOUNT": 1.0}, {"AMOUNT": 2.0}, {"AMOUNT": 3.0}},
		RowCount: 3,
	}
	got := svc.Compose(context.Background(), "settled today?", result, "SELECT AMOUNT FROM AdyenPaymentTransaction", nil, "https://blob/exports/results.csv")
	assert.Equal(t, "There were 3 settled transactions.\n\nDownload URL: https://blob/exports/results.csv", got)
}

func TestCompose_KeepsModelDownloadURL(t *testing.T) {
	llm := &stubCompleter{reply: "Here are your results.\n\nDownload URL: https://blob/exports/results.csv"}
	svc := newTestAnswer(llm)

	result := &models.TabularResult{
		Columns:  []string{"AMOUNT"},
		Rows:     []map[string]any{{"AMOUNT": 1.0}},
		RowCount: 1,
	}
	got := svc.Compose(context.Background(), "list amounts", result, "SELECT AMOUNT FROM AdyenPaymentTransaction", nil, "https://blob/exports/results.csv")
	assert.Equal(t, "Here are your results.\n\nDownload URL: https://blob/exports/results.csv", got)
}

func TestCompose_ModelFailureStillAnswers(t *testing.T) {
	llm := &stubCompleter{err: errors.New("timeout")}
	svc := newTestAnswer(llm)

	result := &models.TabularResult{
		Columns:  []string{"AMOUNT"},
		Rows:     []map[string]any{{"AMOUNT": 1.0}},
		RowCount: 1,
	}
	got := svc.Compose(context.Background(), "amounts?", result, "SELECT 1", nil, "")
	assert.Equal(t, ComposeFailureMessage, got)
}

func TestComposeDatabaseError(t *testing.T) {
	svc := newTestAnswer(&stubCompleter{})

	got := svc.ComposeDatabaseError(errors.New("login failed for user 'sa'"))
	assert.Equal(t, "I encountered an error executing your query: login failed for user 'sa'", got)
}
