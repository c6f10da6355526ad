// internal/models/response.go
package models

// DataResponse wraps collection reads: {"data": [...]}.
type DataResponse struct {
	Data []Product `json:"data"`
}

// APIResult is the success envelope for create/update/delete.
type APIResult struct {
	Message string   `json:"message"`
	Data    *Product `json:"data,omitempty"`
}

// FieldViolation mirrors the per-property validation detail carried in the
// 400 envelope.
type FieldViolation struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints"`
}

// APIError is the structured error envelope returned on 400/404 responses.
// It implements error so it can travel through the client unchanged.
type APIError struct {
	Name    string           `json:"name"`
	Message string           `json:"message"`
	Errors  []FieldViolation `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

const (
	ErrNameValidation = "ValidationError"
	ErrNameNotFound   = "NotFoundError"
	ErrNameBadRequest = "BadRequestError"
)
