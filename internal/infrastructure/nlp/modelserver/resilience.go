package modelserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "model server status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("model server %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("model server %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

func classifyModelError(err error) resilience.Outcome {
	if err == nil {
		return resilience.Outcome{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Outcome{Retry: false, CountsAsFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.Outcome{Retry: true, CountsAsFailure: true}
		}
		return resilience.Outcome{Retry: false, CountsAsFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}

	return resilience.Outcome{Retry: false, CountsAsFailure: true}
}

// wrapTemporaryIfNeeded marks retryable failures so callers can tell a
// transient model outage from a permanent rejection.
func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}

	if classifyModelError(err).Retry || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
