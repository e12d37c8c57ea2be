package httpdto

// ErrorResponse is the uniform failure envelope: every error surfaces
// as {success:false, message} with a matching HTTP status code.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// OKResponse is the bare success envelope for operations with no data.
type OKResponse struct {
	Success bool `json:"success"`
}

func NewOKResponse() OKResponse {
	return OKResponse{Success: true}
}
