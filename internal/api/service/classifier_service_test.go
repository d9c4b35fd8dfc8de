package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// stubCompleter scripts model replies for service tests.
type stubCompleter struct {
	reply     string
	err       error
	replies   []string
	callCount int
}

func (s *stubCompleter) next() (string, error) {
	s.callCount++
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) > 0 {
		reply := s.replies[0]
		if len(s.replies) > 1 {
			s.replies = s.replies[1:]
		}
		return reply, nil
	}
	return s.reply, nil
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return s.next()
}

func (s *stubCompleter) CompleteJSON(_ context.Context, _, _ string) (string, error) {
	return s.next()
}

func newTestClassifier(llm Completer) *ClassifierService {
	return NewClassifierService(zerolog.Nop(), llm, pkg.NewCache(nil, 0))
}

func TestClassify_RelevantListRequest(t *testing.T) {
	llm := &stubCompleter{reply: `{"is_relevant": true, "response": "", "is_list_request": true}`}
	svc := newTestClassifier(llm)

	got := svc.Classify(context.Background(), "List all transactions from yesterday", nil, "")
	assert.True(t, got.Relevant)
	assert.True(t, got.ListRequest)
	assert.Empty(t, got.FallbackReason)
}

func TestClassify_FencedReply(t *testing.T) {
	llm := &stubCompleter{reply: "```json\n{\"is_relevant\": true, \"response\": \"\", \"is_list_request\": false}\n```"}
	svc := newTestClassifier(llm)

	got := svc.Classify(context.Background(), "How many settled transactions?", nil, "")
	assert.True(t, got.Relevant)
	assert.False(t, got.ListRequest)
	assert.Empty(t, got.FallbackReason)
}

func TestClassify_ModelFailure_FailsOpen(t *testing.T) {
	llm := &stubCompleter{err: errors.New("deployment unavailable")}
	svc := newTestClassifier(llm)

	got := svc.Classify(context.Background(), "Show settlements last week", nil, "")
	assert.True(t, got.Relevant)
	assert.False(t, got.ListRequest)
	assert.Equal(t, "model call failed", got.FallbackReason)
}

func TestClassify_UnparseableReply_FailsOpen(t *testing.T) {
	llm := &stubCompleter{reply: "I cannot answer that in JSON"}
	svc := newTestClassifier(llm)

	got := svc.Classify(context.Background(), "Compare Adyen and Bank amounts", nil, "")
	assert.True(t, got.Relevant)
	assert.Equal(t, "unparseable model reply", got.FallbackReason)
}

func TestClassify_Irrelevant_UsesModelGreeting(t *testing.T) {
	llm := &stubCompleter{reply: `{"is_relevant": false, "response": "Hi! Ask me about payment transactions.", "is_list_request": false}`}
	svc := newTestClassifier(llm)

	got := svc.Classify(context.Background(), "hello", nil, "")
	assert.False(t, got.Relevant)
	assert.Equal(t, "Hi! Ask me about payment transactions.", got.Greeting)
}

func TestClassify_Irrelevant_PersonalizedFromHistory(t *testing.T) {
	llm := &stubCompleter{reply: `{"is_relevant": false, "response": "Hello!", "is_list_request": false}`}
	svc := newTestClassifier(llm)

	history := models.ChatHistory{
		{Question: "settled transactions from Monday?", Answer: "There were 17."},
	}
	got := svc.Classify(context.Background(), "hi again", history, "Dana")
	assert.False(t, got.Relevant)
	assert.Contains(t, got.Greeting, "Hi, Dana!")
	assert.Contains(t, got.Greeting, "settled transactions from Monday?")
}

func TestClassify_Irrelevant_UnansweredHistoryKeepsModelGreeting(t *testing.T) {
	llm := &stubCompleter{reply: `{"is_relevant": false, "response": "Hello there!", "is_list_request": false}`}
	svc := newTestClassifier(llm)

	history := models.ChatHistory{{Question: "pending question", Answer: ""}}
	got := svc.Classify(context.Background(), "hello", history, "Dana")
	assert.Equal(t, "Hello there!", got.Greeting)
}
