package models

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply envelope of POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ContentResponse is the envelope of GET /api/docs/content.
type ContentResponse struct {
	Content string `json:"content"`
}

// APIError is the FastAPI-style error envelope returned on failures.
type APIError struct {
	Detail string `json:"detail"`
}

// HealthResponse is the envelope of GET /.
type HealthResponse struct {
	Status string `json:"status"`
}
