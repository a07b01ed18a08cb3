package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Response is the envelope every successful endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// List wraps a collection and reports its size.
func List(data interface{}, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Error builds a failed envelope.
func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
