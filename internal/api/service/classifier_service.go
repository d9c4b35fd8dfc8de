package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// Completer is the slice of the model client the services need. The concrete
// implementation is pkg.LLMClient; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// GenericGreeting is the answer for out-of-domain queries when neither the
// model nor the history produced anything better.
const GenericGreeting = "Hi! I'm your Financial Reconciliation Agent. Ask me about Adyen and Bank payment transactions, settlements, or reconciliation."

type ClassifierService struct {
	logger zerolog.Logger
	llm    Completer
	cache  *pkg.Cache
}

func NewClassifierService(logger zerolog.Logger, llm Completer, cache *pkg.Cache) *ClassifierService {
	return &ClassifierService{logger: logger, llm: llm, cache: cache}
}

type classifyReply struct {
	IsRelevant    bool   `json:"is_relevant"`
	Response      string `json:"response"`
	IsListRequest bool   `json:"is_list_request"`
}

// Classify decides whether the question is in-domain and whether it asks for
// an itemized list. It fails open: any model or parse failure yields
// "relevant, not a list" with a tagged FallbackReason, so a legitimate
// financial question is never dropped by a flaky classification call.
func (slf *ClassifierService) Classify(ctx context.Context, question string, history models.ChatHistory, requesterName string) models.Classification {
	cacheKey := pkg.CacheKey("classify", requesterName, question, history.PromptFormat())
	var cached models.Classification
	if slf.cache.Get(cacheKey, &cached) {
		return cached
	}

	reply, err := slf.llm.CompleteJSON(ctx, classifySystemPrompt, buildClassifyPrompt(question, history))
	if err != nil {
		slf.logger.Error().Err(err).Msg("relevance check failed, defaulting to relevant")
		return models.Classification{Relevant: true, FallbackReason: "model call failed"}
	}

	var parsed classifyReply
	if err := json.Unmarshal([]byte(pkg.CleanSQL(reply)), &parsed); err != nil {
		slf.logger.Error().Err(err).Str("reply", reply).Msg("unparseable relevance reply, defaulting to relevant")
		return models.Classification{Relevant: true, FallbackReason: "unparseable model reply"}
	}

	result := models.Classification{
		Relevant:    parsed.IsRelevant,
		ListRequest: parsed.IsListRequest,
		Greeting:    strings.TrimSpace(parsed.Response),
	}

	// A prior answered interaction beats whatever greeting the model composed.
	if !result.Relevant {
		if last := history.LastAnswered(); last != nil {
			result.Greeting = personalizedGreeting(requesterName, last.Question)
		}
	}

	slf.cache.Set(cacheKey, result)
	return result
}

func personalizedGreeting(requesterName, lastQuestion string) string {
	namePart := ""
	if strings.TrimSpace(requesterName) != "" {
		namePart = ", " + strings.TrimSpace(requesterName)
	}
	return fmt.Sprintf("Hi%s! I'm your Financial Reconciliation Agent. In our previous conversation, you asked about %s How can I help you with your financial data analysis today?", namePart, lastQuestion)
}
