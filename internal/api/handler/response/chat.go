package response

type ChatResponse struct {
	ChatOutput string  `json:"chat_output"`
	CsvURL     *string `json:"csv_url"`
}
