package models

import "strings"

// ChatTurn is one prior question/answer exchange. History arrives with the
// request, oldest first, and is never persisted server-side.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ChatHistory []ChatTurn

// PromptFormat renders the history as User:/Assistant: lines for prompt context.
func (h ChatHistory) PromptFormat() string {
	if len(h) == 0 {
		return "No previous conversation."
	}

	var b strings.Builder
	for _, turn := range h {
		if turn.Question != "" {
			b.WriteString("User: " + turn.Question + "\n")
		}
		if turn.Answer != "" {
			b.WriteString("Assistant: " + turn.Answer + "\n")
		}
	}
	if b.Len() == 0 {
		return "No previous conversation."
	}
	return b.String()
}

// LastAnswered returns the most recent turn that has both a question and an
// answer, or nil. Only such turns are eligible for greeting personalization.
func (h ChatHistory) LastAnswered() *ChatTurn {
	for i := len(h) - 1; i >= 0; i-- {
		turn := h[i]
		if strings.TrimSpace(turn.Question) != "" && strings.TrimSpace(turn.Answer) != "" {
			return &ChatTurn{
				Question: strings.TrimSpace(turn.Question),
				Answer:   strings.TrimSpace(turn.Answer),
			}
		}
	}
	return nil
}

// ChatRequest is the immutable inbound request after DTO mapping.
type ChatRequest struct {
	Question      string
	History       ChatHistory
	RequesterName string
}

// Classification is the classifier verdict. FallbackReason is non-empty when
// the model call failed and the fail-open defaults (relevant, not a list) were
// substituted, so callers and tests can tell a verdict from a default.
type Classification struct {
	Relevant       bool   `json:"relevant"`
	ListRequest    bool   `json:"listRequest"`
	Greeting       string `json:"greeting"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// GeneratedQuery is SQL produced by the synthesizer. Fallback marks the
// deterministic safe statement substituted after a synthesis failure; it is
// still valid SQL and must be executed, not treated as an error.
type GeneratedQuery struct {
	SQL      string `json:"sql"`
	Fallback bool   `json:"fallback,omitempty"`
}

// TabularResult is one executed result set. Values are scalars or nil;
// anything the driver returns outside that set has been coerced to text.
type TabularResult struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"rowCount"`
}

type SizeCheck struct {
	TooLarge bool   `json:"tooLarge"`
	Message  string `json:"message"`
}

// ExportArtifact points at an uploaded CSV. The local file behind it is gone
// by the time the artifact exists.
type ExportArtifact struct {
	URL      string `json:"url"`
	RowCount int    `json:"rowCount"`
}

// Envelope is the terminal per-request artifact returned to the caller.
type Envelope struct {
	Answer    string
	ExportURL *string
}
