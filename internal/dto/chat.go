package dto

type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type ChatResponse struct {
	TraceID        string `json:"traceId"`
	ConversationID string `json:"conversationId"`
	Response       string `json:"response"`
	State          string `json:"state"`
	Ended          bool   `json:"ended"`
}
