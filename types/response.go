package types

// ErrorResponse is the JSON body of every 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a write that returns no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}
