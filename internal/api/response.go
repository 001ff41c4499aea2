package api

// Response is the envelope every JSON endpoint returns
type Response struct {
	Status     string `json:"status"` // "success" or "error"
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Success wraps data in a success envelope
func Success(statusCode int, data any) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps a message in an error envelope
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
