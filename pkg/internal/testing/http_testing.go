package testing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// HTTPErrorPayload is a json payload of a router.HTTPError
type HTTPErrorPayload struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"error"`
	Message    string `json:"message"`
}

// NewHTTPErrorPayload builds expected error payload
func NewHTTPErrorPayload(statusCode int, message string) HTTPErrorPayload {
	return HTTPErrorPayload{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Message:    message,
	}
}

// AssertHTTPErrorResponse asserts status and error payload of the recorded response
func AssertHTTPErrorResponse(t *testing.T, want HTTPErrorPayload, recorder *httptest.ResponseRecorder) bool {
	if !assert.Equal(t, want.StatusCode, recorder.Code) {
		return false
	}
	assert.Equal(t, "application/json", recorder.Header().Get("content-type"))
	var got HTTPErrorPayload
	if !JSONUnmarshalReader(t, recorder.Body, &got) {
		return false
	}
	return assert.Equal(t, want, got)
}
