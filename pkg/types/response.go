package types

// SuccessEnvelope is the body shape of every 2xx response: the domain payload
// under a single "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing failure record. Details is only populated for
// codes whose metadata allows structured detail exposure.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an "error" key so clients can branch
// on the top-level key alone.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewSuccess wraps a payload in the success envelope.
func NewSuccess(data any) SuccessEnvelope {
	return SuccessEnvelope{Data: data}
}

// NewError builds the failure envelope from its parts.
func NewError(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Message: message, Details: details}}
}
