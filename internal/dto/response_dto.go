package dto

// ErrorResponse is the 400-level error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServerErrorResponse is the 500-level error payload.
type ServerErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
