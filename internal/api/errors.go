package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransportError is returned when the backend answered with a non-2xx status.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server responded %d %s", e.Status, http.StatusText(e.Status))
}

// NetworkError is returned when no usable response was received.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func newTransportError(status int, body []byte) *TransportError {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		// non-JSON error pages just leave Message empty
		_ = json.Unmarshal(body, &payload)
	}
	return &TransportError{
		Status:  status,
		Message: strings.TrimSpace(payload.Message),
	}
}

// ServerMessage extracts the backend-provided message from err, if any.
func ServerMessage(err error) (string, bool) {
	var te *TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Status == http.StatusNotFound
}
