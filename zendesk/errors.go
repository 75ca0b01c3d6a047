package zendesk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is matched by every *ConfigError.
var ErrNotConfigured = errors.New("zendesk credentials not configured")

// ConfigError reports missing credentials.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Zendesk configuration error: missing %s", strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool { return target == ErrNotConfigured }

// UpstreamError is returned for any non-2xx response.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return fmt.Sprintf("Zendesk API error: %s", status)
	}
	return fmt.Sprintf("Zendesk API error: %s: %s", status, e.Body)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == 404
}
