package adminsdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error codes returned by the service. They mirror the server's taxonomy.
const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeConflict   = "conflict_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeForbidden  = "forbidden"
	ErrorCodeExpired    = "expired"
	ErrorCodeInternal   = "internal_error"
)

// APIError is a classified error returned by the service. It implements the
// error interface so SDK callers can branch on Code.
type APIError struct {
	// StatusCode is the HTTP status the server answered with.
	StatusCode int `json:"-"`

	// Code is the error class (e.g. "validation_error").
	Code string `json:"code"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}

// parseAPIError reads an error body off a non-2xx response.
func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("adminsdk: reading error response: %w", err)
	}

	var e APIError
	if err := json.Unmarshal(body, &e); err != nil || e.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       ErrorCodeInternal,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	e.StatusCode = resp.StatusCode
	return &e
}
