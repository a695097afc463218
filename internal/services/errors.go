package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnavailable        = errors.New("service unavailable")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrConfiguration      = errors.New("configuration error")
)

// Wrap builds an error message that includes service context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, service, operation, message string, err error) error {
	detail := buildDetail(service, operation, message)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// MarkerForStatus classifies a non-2xx HTTP status code.
func MarkerForStatus(code int) error {
	switch {
	case code == 401 || code == 403:
		return ErrUnauthorized
	case code >= 500:
		return ErrUnavailable
	default:
		return ErrUnexpectedResponse
	}
}

// Hint returns the operator-facing next step for a wrapped service error.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "check the api_key configured for this server"
	case errors.Is(err, ErrConfiguration):
		return "run 'postermatch config validate'"
	case errors.Is(err, ErrUnexpectedResponse):
		return "check the server version and url path"
	default:
		return "check that the server is reachable"
	}
}

func buildDetail(service, operation, message string) string {
	parts := make([]string, 0, 3)
	if service = strings.TrimSpace(service); service != "" {
		parts = append(parts, service)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
