package request

type ChatRequest struct {
	ChatInput   string            `json:"chat_input" validate:"required"`
	ChatHistory []ChatTurnPayload `json:"chat_history"`
	UserName    string            `json:"user_name"`
}

type ChatTurnPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
