package utils

// Response is the standardized error/status envelope. Success payloads use
// endpoint-specific shapes; errors always come back in this form.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// NewErrorResponse creates an error Response with no data.
func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    nil,
	}
}

// Message is a bare confirmation payload for delete endpoints.
type Message struct {
	Message string `json:"message"`
}
