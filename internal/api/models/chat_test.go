package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHistory_PromptFormat_Empty(t *testing.T) {
	assert.Equal(t, "No previous conversation.", ChatHistory{}.PromptFormat())
	assert.Equal(t, "No previous conversation.", ChatHistory(nil).PromptFormat())
	assert.Equal(t, "No previous conversation.", ChatHistory{{Question: "", Answer: ""}}.PromptFormat())
}

func TestChatHistory_PromptFormat(t *testing.T) {
	h := ChatHistory{
		{Question: "How many settled transactions today?", Answer: "There were 42 settled transactions."},
		{Question: "And refused ones?"},
	}

	got := h.PromptFormat()
	assert.Equal(t, "User: How many settled transactions today?\nAssistant: There were 42 settled transactions.\nUser: And refused ones?\n", got)
}

func TestChatHistory_LastAnswered(t *testing.T) {
	h := ChatHistory{
		{Question: "first question", Answer: "first answer"},
		{Question: "  second question  ", Answer: " second answer "},
		{Question: "pending question", Answer: ""},
	}

	last := h.LastAnswered()
	require.NotNil(t, last)
	assert.Equal(t, "second question", last.Question)
	assert.Equal(t, "second answer", last.Answer)
}

func TestChatHistory_LastAnswered_NoneComplete(t *testing.T) {
	assert.Nil(t, ChatHistory{}.LastAnswered())
	assert.Nil(t, ChatHistory{{Question: "only a question"}}.LastAnswered())
	assert.Nil(t, ChatHistory{{Answer: "only an answer"}, {Question: "   "}}.LastAnswered())
}
